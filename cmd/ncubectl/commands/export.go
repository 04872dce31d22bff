// SPDX-License-Identifier: MIT
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncube/jsonio"
	"github.com/katalvlaran/ncube/persist"
)

func newExportCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export <appID> <name>",
		Short: "Load a persisted cube and print it as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, name := args[0], args[1]
			p, err := persist.Open(cfg.Driver, cfg.DSN)
			if err != nil {
				return fmt.Errorf("ncubectl export: %w", err)
			}
			defer p.Close()

			c, err := p.LoadByName(context.Background(), appID, name)
			if err != nil {
				return fmt.Errorf("ncubectl export: %w", err)
			}
			data, err := jsonio.Marshal(c)
			if err != nil {
				return fmt.Errorf("ncubectl export: %w", err)
			}
			if outPath != "" {
				return writeFile(outPath, data)
			}
			fmt.Println(string(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	return cmd
}
