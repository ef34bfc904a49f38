package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zhima-Mochi/minishop-market/internal/bootstrap"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/config"
	"github.com/Zhima-Mochi/minishop-market/internal/pkg/logging"
	"github.com/Zhima-Mochi/minishop-market/internal/presentation/menu"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "minishop-market",
		Usage: "text-menu market simulation: one market owner, sequential customers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "zap level (debug, info, warn, error)"},
			&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve /metrics, /health, /products and /journal on this address"},
			&cli.StringFlag{Name: "market-balance", Usage: "market opening balance"},
			&cli.StringFlag{Name: "customer-balance", Usage: "customer opening balance"},
			&cli.StringFlag{Name: "margin", Usage: "initial profit margin, e.g. 0.20"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(c, &cfg); err != nil {
		return err
	}

	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	market := bootstrap.New(cfg, baseLogger)
	market.Start(ctx)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		market.Close(shutdownCtx)
	}()

	if cfg.MetricsAddr != "" {
		server := &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: market.OpsHandler().Router(),
		}
		go func() {
			systemLogger.Info("http_server_start",
				zap.String("addr", server.Addr),
			)
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				systemLogger.Error("http_server_error",
					zap.Error(err),
				)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				systemLogger.Error("http_server_shutdown_error",
					zap.Error(err),
				)
			} else {
				systemLogger.Info("http_server_stopped")
			}
		}()
	}

	m := menu.New(os.Stdin, os.Stdout, market.Owner, market.Shopping, market.Tel.Logger())
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// applyFlags lets command-line flags override the environment.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}
	for flag, dst := range map[string]*decimal.Decimal{
		"market-balance":   &cfg.MarketOpeningBalance,
		"customer-balance": &cfg.CustomerOpeningBalance,
		"margin":           &cfg.DefaultMargin,
	} {
		if !c.IsSet(flag) {
			continue
		}
		v, err := decimal.NewFromString(c.String(flag))
		if err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
		*dst = v
	}
	return cfg.Validate()
}
