package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-registry/internal/config"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/router"

	"github.com/spf13/cobra"
)

// @title Pet Registry API
// @version 1.0
// @description Registro de mascotas con auth por key estática y fotos.
// @BasePath /
func main() {
	var (
		hostFlag string
		portFlag int
	)

	rootCmd := &cobra.Command{
		Use:           "api",
		Short:         "Pet registry HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			// Flags explícitos pisan el entorno.
			if cmd.Flags().Changed("host") {
				cfg.Host = hostFlag
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = portFlag
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	rootCmd.Flags().StringVar(&hostFlag, "host", "0.0.0.0", "Listen host (overrides PETS_HOST)")
	rootCmd.Flags().IntVar(&portFlag, "port", 8000, "Listen port (overrides PETS_PORT)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	log.Info("Configuration loaded", cfg.Fields())

	table, err := config.LoadCredentials(cfg.CredentialsFile)
	if err != nil {
		log.Error("credentials unavailable", map[string]any{"error": err})
		return err
	}

	h, err := router.NewRouter(router.Options{
		Logger:          log,
		UploadDir:       cfg.UploadDir,
		Credentials:     table,
		MaxRequestBytes: cfg.MaxRequestBytes,
	})
	if err != nil {
		log.Error("router setup failed", map[string]any{"error": err})
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down server", nil)
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			log.Error("server forced to shutdown", map[string]any{"error": err})
			return err
		}
		log.Info("server exited", nil)
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		log.Error("server error", map[string]any{"error": err})
		return err
	}
}
