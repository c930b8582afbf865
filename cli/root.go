// Package cli implements the digicall command line.
package cli

import (
	"fmt"

	"github.com/banachtech/digicall/config"
	"github.com/banachtech/digicall/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App holds what every command needs once flags are parsed.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Progress bool
}

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the interactive console pricer.
func NewRootCmd() *cobra.Command {
	app := &App{Logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "digicall",
		Short: "Price a digital call option",
		Long: `digicall prices a cash-or-nothing digital call paying one unit when the
underlying finishes above a barrier.

Three methods are available:
  Monte Carlo  average of many terminal prices under geometric Brownian motion
  FEM          one simulated price path (single-sample estimate)
  BSM          closed-form Black-Scholes-Merton formula

Run without arguments for the interactive console, or use 'digicall serve'
to expose the pricer over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
		RunE: runPrice(app),
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (YAML, JSON or TOML)")
	flags.Bool("debug", false, "enable debug logging on stderr")
	flags.Int("trials", 0, "Monte Carlo trial count")
	flags.Int("steps", 0, "steps of the single-path simulation")
	flags.Int("paths", 0, "paths averaged by the single-path method (1 keeps a single sample)")
	flags.Int("workers", 0, "goroutines sharing the Monte Carlo trials")
	flags.Uint64("seed", 0, "random seed (0 draws a fresh seed)")
	flags.String("shock", "", "shock law: uniform or normal")
	flags.String("formula", "", "closed-form d2: log-ratio or reference")
	flags.String("closed-form-law", "", "CDF used by the closed form: normal or uniform")
	flags.BoolVar(&app.Progress, "progress", false, "show a progress bar for Monte Carlo runs")

	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the config file, applies flag overrides and builds the logger.
func (app *App) load(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	p := &cfg.Pricing
	if flags.Changed("trials") {
		p.Trials, _ = flags.GetInt("trials")
	}
	if flags.Changed("steps") {
		p.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("paths") {
		p.Paths, _ = flags.GetInt("paths")
	}
	if flags.Changed("workers") {
		p.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		p.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("shock") {
		p.Shock, _ = flags.GetString("shock")
	}
	if flags.Changed("formula") {
		p.Formula, _ = flags.GetString("formula")
	}
	if flags.Changed("closed-form-law") {
		p.ClosedFormLaw, _ = flags.GetString("closed-form-law")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Level = "debug"
		cfg.Log.Console = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	app.Config = cfg
	app.Logger = logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	return nil
}
