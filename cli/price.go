package cli

import (
	"fmt"

	"github.com/banachtech/digicall/mc"
	"github.com/banachtech/digicall/pricer"
	"github.com/spf13/cobra"
)

const methodPrompt = "Choose the pricing method (Monte Carlo/FEM/BSM):"

func newPriceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "Price a digital call interactively",
		Long: `Prompt for the underlying, strike and barrier prices, the implied
volatility, the time to maturity and the risk-free rate, then for a pricing
method (Monte Carlo, FEM or BSM, case-sensitive), and print the price.

Example:
  printf '100\n100\n100\n0.2\n1\n0.05\nBSM\n' | digicall price`,
		Args: cobra.NoArgs,
		RunE: runPrice(app),
	}
}

func runPrice(app *App) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		prompt := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		opt, err := prompt.Digital()
		if err != nil {
			return err
		}
		label, err := prompt.Line(methodPrompt)
		if err != nil {
			return err
		}
		method, err := pricer.ParseMethod(label)
		if err != nil {
			return err
		}

		var opts []pricer.Option
		if app.Progress && method == pricer.MethodMonteCarlo {
			opts = append(opts, pricer.WithProgress(func(total int) mc.Counter {
				return progressBar(total, cmd.ErrOrStderr())
			}))
		}
		engine, err := pricer.New(app.Config.Pricing, app.Logger, opts...)
		if err != nil {
			return err
		}

		price, err := engine.Price(opt, method)
		if err != nil {
			return err
		}
		// %v is Go's shortest round-trip form: tiny prices print as 1e-05
		// where the legacy console printed plain decimals.
		fmt.Fprintf(cmd.OutOrStdout(), "The price of the digital call option is: %v\n", price)
		return nil
	}
}
