package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avral/tessera"
	"github.com/avral/tessera/internal/logging"
	"github.com/avral/tessera/pkg/adapters/httpd"
	"github.com/avral/tessera/pkg/adapters/memory"
	"github.com/avral/tessera/pkg/adapters/redis"
	"github.com/avral/tessera/pkg/observability"
	"github.com/avral/tessera/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the manifest over HTTP with a Prometheus metrics endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		manifestPath, _ := cmd.Flags().GetString("manifest")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		logger := logging.New(slog.LevelInfo)

		m, err := demoManifest(manifestPath, logger)
		if err != nil {
			fmt.Printf("Error building manifest: %v\n", err)
			os.Exit(1)
		}

		var cache ports.Cache = memory.NewCache()
		if redisAddr != "" {
			cache = redis.New(redisAddr, "", 0)
		}

		metrics := observability.NewMetrics()
		app := tessera.New(m,
			tessera.WithCache(cache),
			tessera.WithLogger(logger),
			tessera.WithLifecycleHooks(metrics.Hooks()),
		)

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.Handle("/", httpd.NewHandler(app.Dispatcher(), httpd.WithLogger(logger)))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Tessera Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Tessera Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the response cache (default: in-memory)")
}
