package classifier

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"surveymatch/internal/survey/metrics"
	"surveymatch/internal/survey/models"
	dErrors "surveymatch/pkg/domain-errors"
	"surveymatch/pkg/platform/sentinel"
)

// =============================================================================
// Classifier Test Suite
// =============================================================================
// Justification for unit tests: assignment must be deterministic and identical
// between single-record and bulk labeling. Those properties are cheapest to pin
// down against a hand-computable model.

type ClassifierSuite struct {
	suite.Suite
	metrics    *metrics.Metrics
	classifier *Classifier
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupTest() {
	model, err := LoadModel("testdata", "two_clusters")
	s.Require().NoError(err)

	s.metrics = metrics.New(prometheus.NewRegistry())
	s.classifier, err = New(model,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func person(age models.AgeRange, place models.FavPlace, gender models.Gender) models.Person {
	return models.Person{
		Age:        age,
		EduLevel:   models.EduHigher,
		FavAnimals: models.AnimalsDogs,
		FavPlace:   place,
		Gender:     gender,
	}
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ClassifierSuite) TestNew() {
	s.Run("nil model returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "model is required")
	})
}

// =============================================================================
// Assignment Tests
// =============================================================================

func (s *ClassifierSuite) TestAssign() {
	s.Run("nearest centroid wins", func() {
		s.Equal(models.ClusterID("A"), s.classifier.Assign(person(models.Age25To34, models.PlaceForest, models.GenderFemale)))
		s.Equal(models.ClusterID("B"), s.classifier.Assign(person(models.Age25To34, models.PlaceByWater, models.GenderMale)))
	})

	s.Run("ties go to the first cluster in the artifact", func() {
		s.Equal(models.ClusterID("A"), s.classifier.Assign(person(models.Age25To34, models.PlaceForest, models.GenderMale)))
		s.Equal(models.ClusterID("A"), s.classifier.Assign(person(models.Age25To34, models.PlaceByWater, models.GenderFemale)))
	})

	s.Run("repeated calls return the same id", func() {
		p := person(models.AgeUnknown, models.PlaceMountains, models.GenderMale)
		first := s.classifier.Assign(p)
		for i := 0; i < 50; i++ {
			s.Equal(first, s.classifier.Assign(p))
		}
	})

	s.Run("single assignments are counted per cluster", func() {
		before := testutil.ToFloat64(s.metrics.Assignments.WithLabelValues("B"))
		s.classifier.Assign(person(models.Age18To24, models.PlaceByWater, models.GenderMale))
		s.Equal(before+1, testutil.ToFloat64(s.metrics.Assignments.WithLabelValues("B")))
	})
}

func (s *ClassifierSuite) TestAssignAllMatchesAssign() {
	var people []models.Person
	for _, age := range models.AttrAge.Domain() {
		for _, place := range models.AttrFavPlace.Domain() {
			for _, gender := range models.AttrGender.Domain() {
				people = append(people, person(models.AgeRange(age), models.FavPlace(place), models.Gender(gender)))
			}
		}
	}

	labeled := s.classifier.AssignAll(people)
	s.Require().Len(labeled, len(people))
	for i, row := range labeled {
		s.Equal(people[i], row.Person, "order must be preserved")
		s.Equal(s.classifier.Assign(row.Person), row.ClusterID)
	}
}

func (s *ClassifierSuite) TestLabels() {
	s.Equal([]models.ClusterID{"A", "B"}, s.classifier.Labels())
	s.Equal("two_clusters", s.classifier.ModelName())
}

// =============================================================================
// Artifact Loading Tests
// =============================================================================

func (s *ClassifierSuite) TestLoadModel() {
	s.Run("missing artifact is model unavailable", func() {
		_, err := LoadModel("testdata", "does_not_exist")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeModelUnavailable))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("corrupt artifact is model unavailable", func() {
		_, err := LoadModel("testdata", "broken")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeModelUnavailable))
		s.ErrorIs(err, sentinel.ErrMalformed)
	})

	s.Run("empty name is rejected", func() {
		_, err := LoadModel("testdata", " ")
		s.True(dErrors.HasCode(err, dErrors.CodeModelUnavailable))
	})
}

func (s *ClassifierSuite) TestCompile() {
	full := map[string]string{"age": "25-34", "edu_level": "higher", "fav_animals": "dogs", "fav_place": "forest", "gender": "female"}

	cases := []struct {
		name     string
		artifact Artifact
		contains string
	}{
		{"no clusters", Artifact{}, "model has no clusters"},
		{"unsupported algorithm", Artifact{Algorithm: "dbscan", Clusters: []ArtifactCluster{{ID: "A"}}}, "unsupported algorithm"},
		{"duplicate ids", Artifact{Clusters: []ArtifactCluster{
			{ID: "A", Centroid: map[string]float64{"gender=male": 1}},
			{ID: "A", Centroid: map[string]float64{"gender=female": 1}},
		}}, "duplicate cluster id"},
		{"empty id", Artifact{Clusters: []ArtifactCluster{{ID: " ", Centroid: map[string]float64{"gender=male": 1}}}}, "empty id"},
		{"unknown attribute", Artifact{Clusters: []ArtifactCluster{{ID: "A", Centroid: map[string]float64{"height=tall": 1}}}}, "unknown attribute"},
		{"value outside domain", Artifact{Clusters: []ArtifactCluster{{ID: "A", Centroid: map[string]float64{"gender=other": 1}}}}, "invalid gender"},
		{"malformed feature", Artifact{Clusters: []ArtifactCluster{{ID: "A", Centroid: map[string]float64{"gender": 1}}}}, "not attr=value"},
		{"kmodes missing mode", Artifact{Algorithm: AlgorithmKModes, Clusters: []ArtifactCluster{{ID: "A", Modes: map[string]string{"age": "25-34"}}}}, "missing mode"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := Compile(tc.artifact)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeModelUnavailable))
			s.Contains(err.Error(), tc.contains)
		})
	}

	s.Run("kmodes counts mismatching attributes", func() {
		other := map[string]string{"age": "<18", "edu_level": "basic", "fav_animals": "cats", "fav_place": "mountains", "gender": "male"}
		m, err := Compile(Artifact{Algorithm: AlgorithmKModes, Clusters: []ArtifactCluster{
			{ID: "young", Modes: other},
			{ID: "grown", Modes: full},
		}})
		s.Require().NoError(err)

		s.Equal(models.ClusterID("grown"), m.Predict(person(models.Age25To34, models.PlaceForest, models.GenderFemale)))
		s.Equal(models.ClusterID("young"), m.Predict(models.Person{
			Age: models.AgeUnder18, EduLevel: models.EduBasic, FavAnimals: models.AnimalsCats,
			FavPlace: models.PlaceForest, Gender: models.GenderFemale,
		}))
	})
}
