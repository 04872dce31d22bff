// SPDX-License-Identifier: MIT
package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncube/exec"
	"github.com/katalvlaran/ncube/persist"
)

func newGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <appID> <name> [key=val ...]",
		Short: "Resolve a coordinate against a persisted cube and print the result",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, name := args[0], args[1]
			input, err := parseCoordinate(args[2:])
			if err != nil {
				return fmt.Errorf("ncubectl get: %w", err)
			}

			p, err := persist.Open(cfg.Driver, cfg.DSN)
			if err != nil {
				return fmt.Errorf("ncubectl get: %w", err)
			}
			defer p.Close()

			c, err := p.LoadByName(context.Background(), appID, name)
			if err != nil {
				return fmt.Errorf("ncubectl get: %w", err)
			}

			ctx := &exec.Ctx{
				Input:  input,
				Output: make(map[string]interface{}),
				Cube:   c,
				AppID:  appID,
				Stack:  exec.NewStack(),
			}
			result, err := c.GetCell(ctx, input)
			if err != nil {
				return fmt.Errorf("ncubectl get: %w", err)
			}
			fmt.Println(result)
			return nil
		},
	}
	return cmd
}

// parseCoordinate turns ["key=val", ...] into a map, attempting a numeric
// parse before falling back to string, so axes bound on LONG/DOUBLE accept
// plain command-line arguments without quoting.
func parseCoordinate(kvs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid key=val argument %q", kv)
		}
		key, raw := parts[0], parts[1]
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			out[key] = n
		} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
			out[key] = f
		} else {
			out[key] = raw
		}
	}
	return out, nil
}
