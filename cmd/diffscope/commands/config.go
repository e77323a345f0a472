package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nasheedyasin/diffscope/internal/config"
)

// configFileName is the scaffolded config file written by config init.
const configFileName = ".diffscope.yaml"

// configFilePerm is the file mode for the scaffolded config.
const configFilePerm = 0o644

// ErrConfigExists is returned when config init would overwrite an existing file.
var ErrConfigExists = errors.New("config file already exists")

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage diffscope configuration",
	}

	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file to the current directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(configFileName); err == nil {
					return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, configFileName)
				}
			}

			scaffold, err := config.Scaffold()
			if err != nil {
				return err
			}

			err = os.WriteFile(configFileName, []byte(scaffold), configFilePerm)
			if err != nil {
				return fmt.Errorf("write config file: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Wrote %s\n", configFileName)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
