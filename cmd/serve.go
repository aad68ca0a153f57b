package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lsb-steganography/config"
	"lsb-steganography/handlers"
	"lsb-steganography/logging"
	"lsb-steganography/service"
)

const shutdownTimeout = 10 * time.Second

var (
	serveConfigFile string
	serveListen     string
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `serve exposes embedding, extraction and capacity queries over HTTP.

Settings are read from the config file given with --config and from
STEGANO_* environment variables. Flags take precedence over both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigFile)
		if err != nil {
			return err
		}

		// Ensure cli args are higher priority than the config file.
		if cmd.Flags().Changed("listen") {
			cfg.Listen = serveListen
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		stegoHandler := handlers.NewStegoHandler(service.New(logger), logger, cfg.MaxUploadBytes)
		router, err := handlers.NewRouter(cfg, stegoHandler, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, router, logger)
	},
}

func serve(ctx context.Context, cfg *config.Config, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("listen", cfg.Listen),
			zap.Strings("allow_origins", cfg.AllowOrigins),
			zap.Int64("max_upload_bytes", cfg.MaxUploadBytes),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "path to a YAML, TOML or JSON config file")
	serveCmd.Flags().StringVar(&serveListen, "listen", config.DefaultListen, "address to listen on")
}
