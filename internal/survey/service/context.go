package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"surveymatch/internal/classifier"
	"surveymatch/internal/reference"
	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
	dErrors "surveymatch/pkg/domain-errors"
)

// Assigner maps one Person to a cluster id.
type Assigner interface {
	Assign(p models.Person) models.ClusterID
}

// ReferenceLoader yields the labeled population and the cluster catalog.
// Implementations load once and return the same values on every call.
type ReferenceLoader interface {
	Load(ctx context.Context) (*models.Population, *models.Catalog, error)
}

// Context is the read-only state every match pass shares: the classifier,
// the labeled population, and the catalog. It is built once at startup and
// never mutated, so it is safe for concurrent use.
type Context struct {
	assigner   Assigner
	population *models.Population
	catalog    *models.Catalog
}

// NewContext resolves the reference data and freezes it alongside assigner.
func NewContext(ctx context.Context, assigner Assigner, ref ReferenceLoader) (*Context, error) {
	if assigner == nil {
		return nil, errors.New("assigner is required")
	}
	if ref == nil {
		return nil, errors.New("reference loader is required")
	}
	population, catalog, err := ref.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Context{assigner: assigner, population: population, catalog: catalog}, nil
}

// Population returns the labeled reference population.
func (c *Context) Population() *models.Population { return c.population }

// Catalog returns the cluster catalog.
func (c *Context) Catalog() *models.Catalog { return c.catalog }

// Deps names the collaborators Bootstrap wires together.
type Deps struct {
	ModelDir   string
	ModelName  string
	Population reference.PopulationSource
	Catalog    reference.CatalogSource
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// Bootstrap loads the model artifact, labels the reference population with
// it, and returns the resulting Context. Any failure is fatal to startup and
// carries CodeModelUnavailable or CodeDataUnavailable.
func Bootstrap(ctx context.Context, deps Deps) (_ *Context, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.Bootstrap")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "bootstrap failed")
		}
		span.End()
	}()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	model, err := classifier.LoadModel(deps.ModelDir, deps.ModelName)
	if err != nil {
		return nil, err
	}
	clf, err := classifier.New(model,
		classifier.WithLogger(logger),
		classifier.WithMetrics(deps.Metrics),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeModelUnavailable, "build classifier")
	}

	store, err := reference.New(deps.Population, deps.Catalog, clf,
		reference.WithLogger(logger),
		reference.WithMetrics(deps.Metrics),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDataUnavailable, "build reference store")
	}

	rc, err := NewContext(ctx, clf, store)
	if err != nil {
		return nil, err
	}

	var undescribed []models.ClusterID
	for _, id := range clf.Labels() {
		if !rc.catalog.Has(id) {
			undescribed = append(undescribed, id)
		}
	}
	if len(undescribed) > 0 {
		logger.WarnContext(ctx, "model clusters missing from catalog",
			"model", clf.ModelName(),
			"cluster_ids", undescribed,
		)
	}

	span.SetAttributes(
		attribute.String("model", clf.ModelName()),
		attribute.Int("clusters", rc.catalog.Len()),
		attribute.Int("population", rc.population.Len()),
	)
	logger.InfoContext(ctx, "match context ready",
		"model", clf.ModelName(),
		"clusters", rc.catalog.Len(),
		"population", rc.population.Len(),
	)
	return rc, nil
}
