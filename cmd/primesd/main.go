// Command primesd serves prime number queries over HTTP.
//
//	primesd -config ./config.yml
//
// Settings come from config.yml and may be overridden by PRIMES_* environment
// variables, for example PRIMES_SERVER_PORT=9090 or PRIMES_PRIMES_GENERATOR=naive.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"

	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/prime"
	"github.com/kbukum/primekit/server"
	"github.com/kbukum/primekit/service"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: search the usual locations)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		stop()
		os.Exit(1)
	}
}

// run starts primesd and blocks until ctx is done, then shuts down.
func run(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger.Init(&cfg.Logging)
	logger.RegisterDefaults(prime.LoggerNames...)
	log := logger.GetGlobalLogger()

	tel, err := startTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}

	svc, err := service.New(cfg.Primes,
		service.WithLogger(log),
		service.WithServiceName(cfg.Name),
		service.WithMetrics(tel.metrics),
		service.WithPrimeMetrics(tel.primeMetrics),
	)
	if err != nil {
		return multierr.Append(err, tel.shutdown(context.Background()))
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, cfg.Version, map[string]any{
		"environment": cfg.Environment,
		"generator":   string(svc.Kind()),
	}, svc)
	srv.RegisterPrimes(svc)

	if err := srv.Start(ctx); err != nil {
		return multierr.Append(err, tel.shutdown(context.Background()))
	}
	log.Info("primesd ready", logger.Fields(
		"addr", srv.Addr(),
		logger.FieldGenerator, string(svc.Kind()),
		"version", cfg.Version,
	))

	<-ctx.Done()
	log.Info("shutdown signal received")

	// ctx is already done; shutdown gets a fresh deadline
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return multierr.Combine(
		srv.Stop(shutdownCtx),
		tel.shutdown(shutdownCtx),
	)
}
