// SPDX-License-Identifier: MIT
//
// root.go — the command tree and the shared --config flag. Config is read
// eagerly in PersistentPreRunE so every subcommand can assume cfg is
// populated without re-reading the file itself.
package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is ncubectl's YAML configuration file shape: the database DSN and
// the application id subcommands default to when --app is omitted.
type Config struct {
	Driver     string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	DefaultApp string `yaml:"defaultApp"`
}

var (
	cfgPath string
	cfg     = Config{Driver: "sqlite3", DSN: "ncubectl.db", DefaultApp: "default"}
)

// NewRootCommand builds the ncubectl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ncubectl",
		Short:         "Inspect and manage multi-dimensional decision cubes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to ncubectl.yaml (optional)")
	root.PersistentFlags().SetNormalizeFunc(normalizeFlagName)

	root.AddCommand(newImportCommand())
	root.AddCommand(newExportCommand())
	root.AddCommand(newGetCommand())
	root.AddCommand(newSHA1Command())
	return root
}

// normalizeFlagName accepts underscore-spelled flag names as aliases for
// their dash-spelled forms. It is installed on the root command's
// persistent flags only.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func loadConfig(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &cfg)
}
