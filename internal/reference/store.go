// Package reference owns the labeled reference population and the cluster
// catalog for the lifetime of the process.
package reference

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
	dErrors "surveymatch/pkg/domain-errors"
)

// PopulationSource yields the raw reference records in a stable order.
type PopulationSource interface {
	People(ctx context.Context) ([]models.Person, error)
}

// CatalogSource yields the raw cluster catalog.
type CatalogSource interface {
	Catalog(ctx context.Context) (map[string]models.ClusterInfo, error)
}

// Labeler assigns cluster ids to a batch of records.
type Labeler interface {
	AssignAll(people []models.Person) []models.LabeledPerson
}

// Store loads the population and catalog once and serves the cached values
// thereafter. There is no invalidation path.
type Store struct {
	people  PopulationSource
	catalog CatalogSource
	labeler Labeler
	logger  *slog.Logger
	metrics *metrics.Metrics

	once       sync.Once
	population *models.Population
	clusters   *models.Catalog
	err        error
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New constructs a Store. Nothing is read until Load is called.
func New(people PopulationSource, catalog CatalogSource, labeler Labeler, opts ...Option) (*Store, error) {
	if people == nil {
		return nil, errors.New("population source is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog source is required")
	}
	if labeler == nil {
		return nil, errors.New("labeler is required")
	}
	s := &Store{people: people, catalog: catalog, labeler: labeler, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads, labels and caches the reference data on first use. Later calls
// return the identical cached values, or the identical error, without touching
// the backing storage again. Failures carry CodeDataUnavailable.
func (s *Store) Load(ctx context.Context) (*models.Population, *models.Catalog, error) {
	s.once.Do(func() {
		ctx, span := otel.Tracer("surveymatch/reference").Start(ctx, "reference.Load")
		defer span.End()

		s.population, s.clusters, s.err = s.load(ctx)
		if s.err != nil {
			span.RecordError(s.err)
			span.SetStatus(codes.Error, "reference load failed")
			return
		}
		span.SetAttributes(
			attribute.Int("population", s.population.Len()),
			attribute.Int("clusters", s.clusters.Len()),
		)
	})
	return s.population, s.clusters, s.err
}

func (s *Store) load(ctx context.Context) (*models.Population, *models.Catalog, error) {
	start := time.Now()

	// The catalog and the population come from independent backends.
	var (
		raw    map[string]models.ClusterInfo
		people []models.Person
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if raw, err = s.catalog.Catalog(gctx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeDataUnavailable, "load cluster catalog")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if people, err = s.people.People(gctx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeDataUnavailable, "load reference population")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	catalog, err := models.NewCatalog(raw)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeDataUnavailable, "load cluster catalog")
	}
	if len(people) == 0 {
		return nil, nil, dErrors.New(dErrors.CodeDataUnavailable, "reference population is empty")
	}

	population := models.NewPopulation(s.labeler.AssignAll(people))
	s.metrics.SetPopulationSize(population.Len())

	// A label the catalog does not know means the model and catalog versions
	// disagree. Rows keep their label; lookups for it fail with
	// CodeUnknownCluster.
	if missing := population.Uncatalogued(catalog); len(missing) > 0 {
		s.metrics.AddUnknownClusters(len(missing))
		s.logger.ErrorContext(ctx, "population labels missing from cluster catalog",
			"error", dErrors.Newf(dErrors.CodeUnknownCluster, "%d cluster ids have no catalog entry", len(missing)),
			"cluster_ids", missing,
		)
	}

	s.logger.InfoContext(ctx, "reference data loaded",
		"rows", population.Len(),
		"clusters", catalog.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return population, catalog, nil
}
