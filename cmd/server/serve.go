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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/application/payment"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/merchant"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/config"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/metrics"
	httpapi "github.com/rcarvalho-pb/payment_acquirer-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infrastructure/issuer"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infrastructure/persistence/inmemory"
)

const (
	logTag          = "Main"
	shutdownTimeout = 10 * time.Second
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP authorization API",
		Long: `Start the HTTP authorization API.

Settings come from the optional YAML file and ACQUIRER_* environment
variables, for example ACQUIRER_HTTP_PORT=9090 or ACQUIRER_ISSUER_MODE=http.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Environment)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := loadRegistry(cfg.Merchants.File)
	if err != nil {
		return err
	}

	counters := &metrics.Counters{}
	service := &payment.Service{
		Repo:             inmemory.NewTransactionRepository(),
		Issuer:           newIssuer(cfg.Issuer, logger),
		Merchants:        registry,
		Logger:           logger,
		Metrics:          counters,
		DefaultMaxAmount: cfg.Payments.DefaultMaxAmount,
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(&httpapi.PaymentHandler{Service: service, Metrics: counters}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(gctx, "HTTP server running on port :"+cfg.HTTP.Port, logTag, map[string]any{
			"issuerMode": cfg.Issuer.Mode,
			"merchants":  len(registry.IDs()),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "Shutting down gracefully", logTag, nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadRegistry(path string) (*merchant.Registry, error) {
	if path == "" {
		return merchant.DefaultRegistry(), nil
	}
	registry, err := merchant.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load merchants: %w", err)
	}
	return registry, nil
}

func newIssuer(cfg config.IssuerConfig, logger logging.Logger) contracts.Issuer {
	if cfg.Mode == config.IssuerModeHTTP {
		return issuer.NewHTTPClient(cfg.BaseURL, cfg.Timeout, logger)
	}
	return issuer.NewSimulated(logger)
}
