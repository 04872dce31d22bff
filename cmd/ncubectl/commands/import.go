// SPDX-License-Identifier: MIT
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncube/jsonio"
	"github.com/katalvlaran/ncube/persist"
)

func newImportCommand() *cobra.Command {
	var appID string
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Parse a cube document and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if appID == "" {
				appID = cfg.DefaultApp
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("ncubectl import: %w", err)
			}
			c, err := jsonio.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("ncubectl import: %w", err)
			}
			p, err := persist.Open(cfg.Driver, cfg.DSN)
			if err != nil {
				return fmt.Errorf("ncubectl import: %w", err)
			}
			defer p.Close()

			rec, err := p.Create(context.Background(), appID, c)
			if err != nil {
				return fmt.Errorf("ncubectl import: %w", err)
			}
			fmt.Printf("imported %q (app %q) version %d sha1 %s\n", c.Name(), appID, rec.Version, rec.SHA1)
			return nil
		},
	}
	cmd.Flags().StringVar(&appID, "app", "", "application id (default from config)")
	return cmd
}
