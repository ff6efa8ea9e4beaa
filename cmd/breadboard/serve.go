package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/cli"
	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/internal/observability"
	"github.com/veldtlabs/breadboard/pkg/adapters/httpapi"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor HTTP server",
	Long: `Starts the editor as an HTTP service. Each session holds a live board
document; events posted to a session drive its placement tool exactly like
local input would. Configuration comes from BREADBOARD_* environment
variables; flags set explicitly take precedence.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := cli.LoadServeConfig()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogDir, _ = cmd.Flags().GetString("catalog")
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis-url") {
			cfg.RedisURL, _ = cmd.Flags().GetString("redis-url")
		}
		if cmd.Flags().Changed("max-sessions") {
			cfg.MaxSessions, _ = cmd.Flags().GetInt("max-sessions")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		cat, err := cli.BuildCatalog(cfg.CatalogDir, cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			fmt.Printf("Error opening catalog: %v\n", err)
			os.Exit(1)
		}

		var hooks domain.Hooks
		handlerOpts := []httpapi.Option{
			httpapi.WithLogger(logger),
			httpapi.WithVersion(breadboard.Version),
		}
		managerOpts := []session.Option{
			session.WithLogger(logger),
			session.WithMaxSessions(cfg.MaxSessions),
		}

		if cfg.Metrics {
			metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
			hooks = metrics.Hooks()
			handlerOpts = append(handlerOpts, httpapi.WithMetricsHandler(promhttp.Handler()))
			managerOpts = append(managerOpts, session.WithLifecycle(metrics.SessionOpened, metrics.SessionClosed))
		}

		factory := func(id uuid.UUID) (*breadboard.Editor, error) {
			return breadboard.New(cat,
				breadboard.WithLogger(logger),
				breadboard.WithHooks(hooks),
				breadboard.WithDocumentName("session-"+id.String()[:8]))
		}
		sessions := session.NewManager(factory, managerOpts...)

		handler := httpapi.NewHandler(sessions, cat, handlerOpts...)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Breadboard Server on %s\n", srv.Addr)
			fmt.Printf("Serving catalog from: %s\n", cfg.CatalogDir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Breadboard Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis-url", "", "Redis URL for catalog caching (optional)")
	serveCmd.Flags().Int("max-sessions", 64, "Maximum number of live sessions (0 = unlimited)")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
}
