package cli

import (
	"fmt"

	"github.com/banachtech/digicall/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files for the pricer.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  digicall config init --output digicall.yaml
  digicall config validate --file digicall.yaml`,
		// config files are the subject here, not the input
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created default configuration: %s\n", output)
			fmt.Fprintf(out, "Run with:\n  digicall --config %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "digicall.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			p := cfg.Pricing
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Monte Carlo: %d trials, %d workers, %s shocks\n", p.Trials, p.Workers, p.Shock)
			fmt.Fprintf(out, "  FEM: %d steps, %d paths\n", p.Steps, p.Paths)
			fmt.Fprintf(out, "  BSM: %s formula, %s CDF\n", p.Formula, p.ClosedFormLaw)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("file")

	configCmd.AddCommand(initCmd, validateCmd)
	return configCmd
}
