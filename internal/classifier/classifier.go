// Package classifier wraps a pre-fitted clustering model behind a single
// assignment capability.
package classifier

import (
	"errors"
	"log/slog"
	"time"

	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
)

// Classifier assigns records to clusters. It is safe for concurrent use: the
// model is immutable after construction.
type Classifier struct {
	model   *Model
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Classifier)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Classifier) {
		c.metrics = m
	}
}

// New constructs a Classifier around a compiled model.
func New(model *Model, opts ...Option) (*Classifier, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	c := &Classifier{model: model}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Assign returns the cluster for one record. It is a pure function of p.
func (c *Classifier) Assign(p models.Person) models.ClusterID {
	start := time.Now()
	id := c.model.Predict(p)
	c.metrics.ObserveAssignment(id.String(), time.Since(start))
	return id
}

// AssignAll labels every record with the same prediction Assign would make
// for it in isolation. Output order matches input order.
func (c *Classifier) AssignAll(people []models.Person) []models.LabeledPerson {
	out := make([]models.LabeledPerson, len(people))
	for i, p := range people {
		out[i] = models.LabeledPerson{Person: p, ClusterID: c.model.Predict(p)}
	}
	c.logger.Debug("labeled records", "model", c.model.Name(), "records", len(out))
	return out
}

// Labels returns the model's label space.
func (c *Classifier) Labels() []models.ClusterID {
	return c.model.Labels()
}

// ModelName returns the loaded artifact name.
func (c *Classifier) ModelName() string {
	return c.model.Name()
}
