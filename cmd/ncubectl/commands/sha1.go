// SPDX-License-Identifier: MIT
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncube/persist"
)

func newSHA1Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sha1 <appID> <name>",
		Short: "Print a persisted cube's content hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, name := args[0], args[1]
			p, err := persist.Open(cfg.Driver, cfg.DSN)
			if err != nil {
				return fmt.Errorf("ncubectl sha1: %w", err)
			}
			defer p.Close()

			c, err := p.LoadByName(context.Background(), appID, name)
			if err != nil {
				return fmt.Errorf("ncubectl sha1: %w", err)
			}
			fmt.Println(c.SHA1())
			return nil
		},
	}
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
