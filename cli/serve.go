package cli

import (
	"github.com/banachtech/digicall/api"
	"github.com/banachtech/digicall/pricer"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pricer over HTTP",
		Long: `Start an HTTP server exposing

  GET  /healthz
  POST /v1/pricer

The listen address comes from server.address in the config file unless
--address is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				app.Config.Server.Address = address
			}
			engine, err := pricer.New(app.Config.Pricing, app.Logger)
			if err != nil {
				return err
			}
			server := api.NewServer(engine, app.Logger)
			app.Logger.Info().Str("address", app.Config.Server.Address).Msg("serving pricer")
			return server.Start(app.Config.Server.Address)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address, e.g. :8080")
	return cmd
}
