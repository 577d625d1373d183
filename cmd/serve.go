package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/server"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *studio.Service, styles *studio.StyleStore) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.WithAttrs(ctx, slog.String("component", "serve"))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		// Style profile edits apply without a restart.
		if err := styles.Watch(ctx); err != nil {
			logging.Warn(ctx, "style profile watching disabled", slog.Any("err", errs.Loggable(err)))
		}

		addr := app.Config.Server.Addr
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(svc, styles).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- srv.ListenAndServe()
		}()
		logging.Info(ctx, "http server listening", slog.String("addr", addr))

		select {
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errs.Wrap(err, "serve http")
			}
			return nil
		case <-ctx.Done():
		}

		logging.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
