package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"surveymatch/internal/platform/config"
	"surveymatch/internal/platform/httpserver"
	"surveymatch/internal/platform/logger"
	"surveymatch/internal/platform/postgres"
	"surveymatch/internal/platform/redis"
	"surveymatch/internal/reference"
	"surveymatch/internal/reference/source"
	"surveymatch/internal/survey/handler"
	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
	"surveymatch/internal/survey/service"
	httptransport "surveymatch/internal/transport/http"
	dErrors "surveymatch/pkg/domain-errors"
)

const (
	startupTimeout  = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	configPath := flag.String("config", os.Getenv("SURVEYMATCH_CONFIG"), "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("surveymatch stopped", "error", err, "code", dErrors.CodeOf(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	rc, err := bootstrap(ctx, cfg, log, m)
	if err != nil {
		return err
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithSimilarLimit(cfg.Match.SimilarLimit),
	}
	if len(cfg.Match.MatchOn) > 0 {
		matchOn, err := models.ParseAttributes(cfg.Match.MatchOn)
		if err != nil {
			return fmt.Errorf("match_on: %w", err)
		}
		opts = append(opts, service.WithMatchOn(matchOn))
	}
	svc, err := service.New(rc, opts...)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Gatherer: reg,
		Health: map[string]httptransport.HealthCheck{
			"reference": func(context.Context) error {
				if rc.Population().Len() == 0 {
					return errors.New("reference population is empty")
				}
				return nil
			},
		},
		Modules: []httptransport.Registrar{handler.New(svc, log)},
	})

	log.Info("starting surveymatch", "addr", cfg.Addr)
	return httpserver.Serve(ctx, httpserver.New(cfg.Addr, router), shutdownTimeout)
}

// bootstrap opens the configured backends, builds the match context and
// releases the backends again; the reference data is held in memory for the
// life of the process.
func bootstrap(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Metrics) (*service.Context, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	var (
		population reference.PopulationSource
		catalog    reference.CatalogSource
	)

	if dsn := cfg.Population.PostgresDSN; dsn != "" {
		db, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeDataUnavailable, "connect population database")
		}
		defer closeDB(db, log)
		population = source.NewPostgres(db, cfg.Population.Table, "")
	} else {
		population = source.NewCSVFile(cfg.Population.Path, cfg.Population.DelimiterRune())
	}

	if key := cfg.Catalog.RedisKey; key != "" {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeDataUnavailable, "connect catalog redis")
		}
		defer client.Close()
		catalog = source.NewRedisCatalog(client, key)
	} else {
		catalog = source.NewCatalogFile(cfg.Catalog.Path)
	}

	return service.Bootstrap(ctx, service.Deps{
		ModelDir:   cfg.Model.Dir,
		ModelName:  cfg.Model.Name,
		Population: population,
		Catalog:    catalog,
		Logger:     log,
		Metrics:    m,
	})
}

func closeDB(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close population database", "error", err)
	}
}
