package cli

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/pkg/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the field renderer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			handler, err := a.handler()
			if err != nil {
				return err
			}
			return server.ListenAndServe(ctx, addr, handler, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	return cmd
}

func (a *app) handler() (http.Handler, error) {
	engine, err := a.engine()
	if err != nil {
		return nil, err
	}
	options := []server.Option{server.WithEngine(engine)}
	if a.registry != nil {
		options = append(options, server.WithMetrics(a.registry))
	}
	return server.NewHandler(a.resolver, a.logger, options...), nil
}
