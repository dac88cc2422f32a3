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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/internal/logging"
	"github.com/aretw0/formwork/pkg/adapters/httpform"
	"github.com/aretw0/formwork/pkg/formdef"
	"github.com/aretw0/formwork/pkg/observability"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve <definition>",
	Short: "Host a form over a JSON HTTP API",
	Long:  `Loads the given form definition and exposes it over HTTP: clients set values, touch fields, validate, and submit. Prometheus metrics are served under /metrics.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		levelName, _ := cmd.Flags().GetString("log-level")
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			levelName = "debug"
		}

		level, err := logging.ParseLevel(levelName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if err := runServe(args[0], port, level); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(path, port string, level slog.Level) error {
	logger := logging.New(level)

	def, err := formdef.Load(path)
	if err != nil {
		return fmt.Errorf("load definition: %w", err)
	}
	fields, err := def.Compile()
	if err != nil {
		return fmt.Errorf("compile definition: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	form := formwork.New(
		formwork.WithLogger(logger),
		formwork.WithLifecycleHooks(metrics.Hooks()),
	)
	if err := formdef.Apply(form, fields); err != nil {
		return err
	}

	handler := httpform.NewHandler(form,
		httpform.WithLogger(logger),
		httpform.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)

	go func() {
		fmt.Printf("Starting Formwork Server on %s\n", srv.Addr)
		fmt.Printf("Serving form: %s\n", def.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		fmt.Println("Formwork Server stopped gracefully")
	}
	return nil
}
