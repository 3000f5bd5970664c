package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"surveymatch/internal/cohort"
	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
	dErrors "surveymatch/pkg/domain-errors"
)

const tracerName = "surveymatch/service"

const (
	outcomeOK       = "ok"
	outcomeDegraded = "degraded"
	outcomeError    = "error"
)

// Service answers match and cohort queries over a shared Context. It holds no
// mutable state of its own.
type Service struct {
	rc           *Context
	aggregator   *cohort.Aggregator
	logger       *slog.Logger
	metrics      *metrics.Metrics
	similarLimit int
	matchOn      []models.Attribute
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSimilarLimit caps similar-person suggestions. Non-positive values keep
// the default.
func WithSimilarLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.similarLimit = n
		}
	}
}

// WithMatchOn replaces the attributes similar persons must share.
func WithMatchOn(attrs []models.Attribute) Option {
	return func(s *Service) {
		if len(attrs) > 0 {
			s.matchOn = append([]models.Attribute(nil), attrs...)
		}
	}
}

func New(rc *Context, opts ...Option) (*Service, error) {
	if rc == nil {
		return nil, errors.New("match context is required")
	}
	s := &Service{
		rc:           rc,
		aggregator:   cohort.NewAggregator(),
		similarLimit: cohort.DefaultSimilarLimit,
		matchOn:      cohort.DefaultMatchOn,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Match assigns req.Person to a cluster, then summarizes that cohort,
// compares it with another one, and lists people like req.Person.
func (s *Service) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.Match")
	defer span.End()

	start := time.Now()
	result, err := s.match(ctx, req)
	s.metrics.ObserveMatchLatency(time.Since(start))

	switch {
	case err != nil:
		s.metrics.IncrementOutcome(outcomeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "match failed")
		return nil, err
	case result.Degraded:
		s.metrics.IncrementOutcome(outcomeDegraded)
	default:
		s.metrics.IncrementOutcome(outcomeOK)
	}
	span.SetAttributes(
		attribute.String("cluster_id", result.ClusterID.String()),
		attribute.String("compare_with", result.Comparison.Target.ID.String()),
		attribute.Int("cohort_size", result.Cohort.Size),
		attribute.Bool("degraded", result.Degraded),
	)
	return result, nil
}

func (s *Service) match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	if err := req.Person.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid person")
	}

	pop := s.rc.population
	id := s.rc.assigner.Assign(req.Person)
	result := &MatchResult{ClusterID: id}

	info, err := s.rc.catalog.Lookup(id)
	switch {
	case err == nil:
		result.Cluster = &info
	case dErrors.HasCode(err, dErrors.CodeUnknownCluster):
		result.Degraded = true
		result.Notice = fmt.Sprintf("cluster %s has no description; statistics are shown without one", id)
		s.logger.ErrorContext(ctx, "assigned cluster missing from catalog",
			"error", err,
			"cluster_id", id,
		)
	default:
		return nil, err
	}

	target, err := s.compareTarget(id, req.CompareWith)
	if err != nil {
		return nil, err
	}
	own, other := s.aggregator.Compare(pop, id, target.ID)
	target.Size = other.Size

	result.Cohort = own
	result.Comparison = Comparison{
		Attributes: cohort.CompareAttributes,
		Target:     target,
		Own:        own,
		Other:      other,
	}

	similar := s.aggregator.FindSimilar(pop, id, s.matchOn, req.Person, s.similarLimit)
	result.Similar = make([]models.Person, len(similar))
	for i, row := range similar {
		result.Similar[i] = row.Person
	}

	s.logger.DebugContext(ctx, "match complete",
		"cluster_id", id,
		"cohort_size", own.Size,
		"compare_with", target.ID,
		"similar", len(result.Similar),
		"degraded", result.Degraded,
	)
	return result, nil
}

// compareTarget resolves ref, or picks a default when ref is empty.
func (s *Service) compareTarget(assigned models.ClusterID, ref string) (ClusterOverview, error) {
	catalog := s.rc.catalog
	var id models.ClusterID
	if ref != "" {
		resolved, err := catalog.Resolve(ref)
		if err != nil {
			return ClusterOverview{}, err
		}
		id = resolved
	} else {
		ids := catalog.IDs()
		id = ids[0]
		for _, candidate := range ids {
			if candidate != assigned {
				id = candidate
				break
			}
		}
	}
	info, err := catalog.Lookup(id)
	if err != nil {
		return ClusterOverview{}, err
	}
	return ClusterOverview{ID: id, Info: info}, nil
}

// Clusters lists every catalogued cluster with its cohort size, by id.
func (s *Service) Clusters(ctx context.Context) []ClusterOverview {
	ids := s.rc.catalog.IDs()
	summaries := s.aggregator.SummarizeAll(s.rc.population, ids)
	out := make([]ClusterOverview, 0, len(ids))
	for _, id := range ids {
		info, _ := s.rc.catalog.Lookup(id)
		out = append(out, ClusterOverview{ID: id, Info: info, Size: summaries[id].Size})
	}
	return out
}

// Summary returns the full statistics of the cluster named by ref, which may
// be an id or a display name.
func (s *Service) Summary(ctx context.Context, ref string) (*ClusterSummary, error) {
	id, err := s.rc.catalog.Resolve(ref)
	if err != nil {
		return nil, err
	}
	info, err := s.rc.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	summary := s.aggregator.Summarize(s.rc.population, id)
	if summary.Empty() {
		s.logger.InfoContext(ctx, "cluster has no reference rows", "cluster_id", id)
	}
	return &ClusterSummary{
		ClusterOverview: ClusterOverview{ID: id, Info: info, Size: summary.Size},
		Summary:         summary,
	}, nil
}
