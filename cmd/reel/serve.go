package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/reel"
	httpAdapter "github.com/aretw0/reel/pkg/adapters/http"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview HTTP server",
	Long: `Serves POST /render and POST /timeline. Posted scripts are rendered in memory:
they never write files, open viewers or assemble animations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		maxFrames, _ := cmd.Flags().GetInt("max-frames")
		handler, err := newServeHandler(s, maxFrames)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			s.logger.Info("server_start", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			s.logger.Info("server_shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				return srv.Close()
			}
			s.logger.Info("server_stopped")
			return nil
		}
	},
}

// newServeHandler wires an in-memory engine, its metrics and the preview routes.
func newServeHandler(s *settings, maxFrames int) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	parts := &engineParts{store: memory.NewStore()}
	engine := reel.New(engineOptions(s, parts, observability.Combine(
		metrics.Hooks(),
		observability.LoggingHooks(s.logger),
	))...)

	return httpAdapter.NewHandler(engine,
		httpAdapter.WithLogger(s.logger),
		httpAdapter.WithMaxFrames(maxFrames),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Int("max-frames", httpAdapter.DefaultMaxFrames, "Largest frame count a posted script may declare")
}
