package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"topbooks/internal/response"
	"topbooks/internal/server"
	"topbooks/internal/validation"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	debug := debugMode

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Loads the dataset once and serves the dashboard: a sidebar with year,
plot type and author count controls, the table of the chosen year and the chart.`,
		Example: `  # Serve on the default address
  topbooks serve

  # Serve another file on port 3000
  topbooks serve --data books.csv --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load()
			if err != nil {
				return err
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)

			r.Mount("/", server.Handler(ds, validation.New(), &response.Responder{DebugMode: debug}))

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("dashboard available", slog.String("addr", addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				slog.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return nil
			case err := <-serverErr:
				slog.Error("aborting: " + err.Error())
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", bindAddr, "Address to listen on (BIND_ADDR)")
	cmd.Flags().BoolVar(&debug, "debug", debug, "Expose error messages in responses (DEBUG_MODE)")

	return cmd
}
