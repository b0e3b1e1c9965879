package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/internal/config"
	"github.com/iwvelando/mf-returns/internal/navstore"
	"github.com/iwvelando/mf-returns/internal/server"
	"github.com/iwvelando/mf-returns/pkg/constants"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	app          *app
	serverConfig string
	address      string
	maxBodySize  string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the returns API over HTTP" }
func (*serveCmd) Usage() string {
	return `mf-returns serve [-server-config <file>] [-address <host:port>] [-max-body-size <size>]

  Serves the SIP, lumpsum, tax, analyze and NAV history endpoints until
  interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	f.StringVar(&c.address, "address", "", "listen address override")
	f.StringVar(&c.maxBodySize, "max-body-size", "", "request body limit override (e.g. 512K, 2M)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := server.LoadConfig(c.serverConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading server configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.address != "" {
		cfg.Address = c.address
	}
	if c.maxBodySize != "" {
		size, err := server.ParseSize(c.maxBodySize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -max-body-size: %v\n", err)
			return subcommands.ExitUsageError
		}
		cfg.SetBodySizeBytes(size)
	}

	logger := c.app.logger
	if cfg.Logging != (config.LoggingConfig{}) {
		if logger, err = initializeLogger(cfg.Logging, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing server logger: %v\n", err)
			return subcommands.ExitFailure
		}
		defer func() {
			_ = logger.Sync()
		}()
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = c.app.conf.DataDir
	}

	handler := server.NewHandler(logger, server.Services{
		Store:      navstore.New(logger, dataDir, cfg.CacheTTLDuration()),
		Calculator: c.app.calc,
		Analyzer:   analysis.NewAnalyzer(logger, c.app.calc, c.app.conf.Batch.Concurrency),
	}, cfg.BodySizeBytes(), version)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving returns API",
			zap.String("op", "main.serveCmd"),
			zap.String("address", cfg.Address),
			zap.String("dataDir", dataDir),
			zap.Int64("maxBodySize", cfg.BodySizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.String("op", "main.serveCmd"), zap.Error(err))
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("op", "main.serveCmd"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.String("op", "main.serveCmd"), zap.Error(err))
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
