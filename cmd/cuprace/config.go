package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after files, environment and flags are applied.

Search order: --config, ~/.cuprace/config.yaml, ./configs/cuprace.yaml,
then the built-in defaults. CUPRACE_* environment variables (also read
from ./.env) override file values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, src, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("cannot encode config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "# source: %s\n", src)
		_, err = os.Stdout.Write(out)
		return err
	},
}
