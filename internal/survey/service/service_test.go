package service

//go:generate mockgen -source=context.go -destination=mocks/mocks.go -package=mocks Assigner,ReferenceLoader

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
	"surveymatch/internal/survey/service/mocks"
	dErrors "surveymatch/pkg/domain-errors"
	"surveymatch/pkg/platform/sentinel"
)

// =============================================================================
// Match Service Test Suite
// =============================================================================
// Justification for unit tests: compare-target selection, the degraded path
// for an uncatalogued cluster, and outcome metrics are decided here and only
// partly visible through HTTP responses.

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	assigner *mocks.MockAssigner
	loader   *mocks.MockReferenceLoader
	metrics  *metrics.Metrics
	logs     *bytes.Buffer
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.assigner = mocks.NewMockAssigner(s.ctrl)
	s.loader = mocks.NewMockReferenceLoader(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.logs = &bytes.Buffer{}

	s.loader.EXPECT().Load(gomock.Any()).Return(fixturePopulation(), fixtureCatalog(s.T()), nil)
	rc, err := NewContext(context.Background(), s.assigner, s.loader)
	s.Require().NoError(err)

	s.service, err = New(rc,
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

var (
	forestWoman = models.Person{Age: models.Age25To34, EduLevel: models.EduHigher, FavAnimals: models.AnimalsDogs, FavPlace: models.PlaceForest, Gender: models.GenderFemale}
	seaMan      = models.Person{Age: models.Age45To54, EduLevel: models.EduBasic, FavAnimals: models.AnimalsDogs, FavPlace: models.PlaceByWater, Gender: models.GenderMale}
)

func fixturePopulation() *models.Population {
	rows := []models.LabeledPerson{
		{Person: forestWoman, ClusterID: "A"},
		{Person: seaMan, ClusterID: "B"},
		{Person: models.Person{Age: models.Age25To34, EduLevel: models.EduSecondary, FavAnimals: models.AnimalsCats, FavPlace: models.PlaceForest, Gender: models.GenderFemale}, ClusterID: "A"},
		{Person: models.Person{Age: models.Age65AndOver, EduLevel: models.EduSecondary, FavAnimals: models.AnimalsNone, FavPlace: models.PlaceByWater, Gender: models.GenderMale}, ClusterID: "B"},
		{Person: models.Person{Age: models.Age18To24, EduLevel: models.EduHigher, FavAnimals: models.AnimalsDogs, FavPlace: models.PlaceForest, Gender: models.GenderFemale}, ClusterID: "A"},
		{Person: models.Person{Age: models.Age45To54, EduLevel: models.EduHigher, FavAnimals: models.AnimalsOther, FavPlace: models.PlaceByWater, Gender: models.GenderMale}, ClusterID: "B"},
	}
	return models.NewPopulation(rows)
}

func fixtureCatalog(t *testing.T) *models.Catalog {
	catalog, err := models.NewCatalog(map[string]models.ClusterInfo{
		"A": {Name: "Forest folk", Description: "Prefer trees"},
		"B": {Name: "Sea folk", Description: "Prefer water"},
		"C": {Name: "Mountain folk", Description: "Nobody answered like this"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return catalog
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *ServiceSuite) TestNewContext() {
	s.Run("nil assigner returns error", func() {
		_, err := NewContext(context.Background(), nil, s.loader)
		s.Error(err)
		s.Contains(err.Error(), "assigner is required")
	})

	s.Run("nil loader returns error", func() {
		_, err := NewContext(context.Background(), s.assigner, nil)
		s.Error(err)
		s.Contains(err.Error(), "reference loader is required")
	})

	s.Run("load failure is returned unchanged", func() {
		failure := dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeDataUnavailable, "load reference population")
		s.loader.EXPECT().Load(gomock.Any()).Return(nil, nil, failure)

		_, err := NewContext(context.Background(), s.assigner, s.loader)
		s.Same(failure, err)
	})
}

func (s *ServiceSuite) TestNew() {
	_, err := New(nil)
	s.Error(err)
	s.Contains(err.Error(), "match context is required")
}

// =============================================================================
// Match Tests
// =============================================================================

func (s *ServiceSuite) TestMatch() {
	ctx := context.Background()

	s.Run("assigns, summarizes, compares and suggests", func() {
		s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("A"))

		res, err := s.service.Match(ctx, MatchRequest{Person: forestWoman})
		s.Require().NoError(err)

		s.Equal(models.ClusterID("A"), res.ClusterID)
		s.Require().NotNil(res.Cluster)
		s.Equal("Forest folk", res.Cluster.Name)
		s.False(res.Degraded)
		s.Empty(res.Notice)

		s.Equal(3, res.Cohort.Size)
		s.Equal(3, res.Cohort.Table(models.AttrFavPlace).Count("forest"))
		s.Equal(2, res.Cohort.Table(models.AttrFavAnimals).Count("dogs"))
		s.Equal(2, res.Cohort.Table(models.AttrAge).Count("25-34"))

		s.Equal(models.ClusterID("B"), res.Comparison.Target.ID, "first other catalogued cluster")
		s.Equal("Sea folk", res.Comparison.Target.Info.Name)
		s.Equal(3, res.Comparison.Target.Size)
		s.Equal(6, res.Comparison.Own.Size+res.Comparison.Other.Size)
		s.Equal([]models.Attribute{models.AttrAge, models.AttrFavAnimals}, res.Comparison.Attributes)

		s.Require().Len(res.Similar, 3)
		s.Equal(forestWoman, res.Similar[0])
		for _, p := range res.Similar {
			s.Equal(models.PlaceForest, p.FavPlace)
			s.Equal(models.GenderFemale, p.Gender)
		}

		s.Equal(1.0, testutil.ToFloat64(s.metrics.MatchOutcome.WithLabelValues("ok")))
	})

	s.Run("default comparison from the second cluster is the first", func() {
		s.assigner.EXPECT().Assign(seaMan).Return(models.ClusterID("B"))

		res, err := s.service.Match(ctx, MatchRequest{Person: seaMan})
		s.Require().NoError(err)
		s.Equal(models.ClusterID("A"), res.Comparison.Target.ID)
	})

	s.Run("compare_with accepts a display name", func() {
		s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("A"))

		res, err := s.service.Match(ctx, MatchRequest{Person: forestWoman, CompareWith: "Mountain folk"})
		s.Require().NoError(err)
		s.Equal(models.ClusterID("C"), res.Comparison.Target.ID)
		s.True(res.Comparison.Other.Empty())
		s.Equal(0, res.Comparison.Other.Table(models.AttrAge).Total())
	})

	s.Run("compare_with accepts an id", func() {
		s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("A"))

		res, err := s.service.Match(ctx, MatchRequest{Person: forestWoman, CompareWith: "A"})
		s.Require().NoError(err)
		s.Equal(models.ClusterID("A"), res.Comparison.Target.ID)
		s.Equal(res.Comparison.Own, res.Comparison.Other)
	})

	s.Run("unknown compare_with is an unknown cluster error", func() {
		s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("A"))

		res, err := s.service.Match(ctx, MatchRequest{Person: forestWoman, CompareWith: "Desert folk"})
		s.Nil(res)
		s.True(dErrors.HasCode(err, dErrors.CodeUnknownCluster))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.MatchOutcome.WithLabelValues("error")))
	})
}

func (s *ServiceSuite) TestMatchUncataloguedClusterDegrades() {
	s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("Z"))

	res, err := s.service.Match(context.Background(), MatchRequest{Person: forestWoman})
	s.Require().NoError(err)

	s.True(res.Degraded)
	s.Nil(res.Cluster)
	s.Contains(res.Notice, "Z")
	s.Equal(0, res.Cohort.Size)
	s.Empty(res.Similar)
	s.Equal(models.ClusterID("A"), res.Comparison.Target.ID)
	s.Contains(s.logs.String(), "assigned cluster missing from catalog")
	s.Contains(s.logs.String(), "level=ERROR")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.MatchOutcome.WithLabelValues("degraded")))
}

func (s *ServiceSuite) TestMatchRejectsInvalidPerson() {
	res, err := s.service.Match(context.Background(), MatchRequest{Person: models.Person{}})
	s.Nil(res)
	s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.MatchOutcome.WithLabelValues("error")))
}

func (s *ServiceSuite) TestMatchOptions() {
	s.Run("similar limit", func() {
		svc, err := New(s.service.rc, WithSimilarLimit(2))
		s.Require().NoError(err)
		s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("A"))

		res, err := svc.Match(context.Background(), MatchRequest{Person: forestWoman})
		s.Require().NoError(err)
		s.Len(res.Similar, 2)
	})

	s.Run("match on", func() {
		svc, err := New(s.service.rc, WithMatchOn([]models.Attribute{models.AttrFavAnimals}))
		s.Require().NoError(err)
		s.assigner.EXPECT().Assign(forestWoman).Return(models.ClusterID("A"))

		res, err := svc.Match(context.Background(), MatchRequest{Person: forestWoman})
		s.Require().NoError(err)
		s.Len(res.Similar, 2)
		for _, p := range res.Similar {
			s.Equal(models.AnimalsDogs, p.FavAnimals)
		}
	})

	s.Run("non-positive limit keeps the default", func() {
		svc, err := New(s.service.rc, WithSimilarLimit(0))
		s.Require().NoError(err)
		s.Equal(5, svc.similarLimit)
	})
}

// =============================================================================
// Catalog Query Tests
// =============================================================================

func (s *ServiceSuite) TestClusters() {
	got := s.service.Clusters(context.Background())
	s.Require().Len(got, 3)
	s.Equal(ClusterOverview{ID: "A", Info: models.ClusterInfo{Name: "Forest folk", Description: "Prefer trees"}, Size: 3}, got[0])
	s.Equal(models.ClusterID("B"), got[1].ID)
	s.Equal(3, got[1].Size)
	s.Equal(models.ClusterID("C"), got[2].ID)
	s.Equal(0, got[2].Size)
}

func (s *ServiceSuite) TestSummary() {
	ctx := context.Background()

	s.Run("by id", func() {
		got, err := s.service.Summary(ctx, "B")
		s.Require().NoError(err)
		s.Equal("Sea folk", got.Info.Name)
		s.Equal(3, got.Size)
		s.Equal(2, got.Summary.Table(models.AttrAge).Count("45-54"))
	})

	s.Run("by name", func() {
		got, err := s.service.Summary(ctx, "Sea folk")
		s.Require().NoError(err)
		s.Equal(models.ClusterID("B"), got.ID)
	})

	s.Run("empty cohort is not an error", func() {
		got, err := s.service.Summary(ctx, "C")
		s.Require().NoError(err)
		s.True(got.Summary.Empty())
	})

	s.Run("unknown cluster", func() {
		_, err := s.service.Summary(ctx, "Z")
		s.True(dErrors.HasCode(err, dErrors.CodeUnknownCluster))
	})
}
