package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"surveymatch/internal/survey/models"
	dErrors "surveymatch/pkg/domain-errors"
	"surveymatch/pkg/platform/sentinel"
)

// Algorithm selects how distances to cluster centres are computed.
type Algorithm string

const (
	// AlgorithmKMeans one-hot encodes records as "attr=value" features and
	// uses squared Euclidean distance to each centroid.
	AlgorithmKMeans Algorithm = "kmeans"
	// AlgorithmKModes counts attributes whose value differs from the
	// cluster's mode.
	AlgorithmKModes Algorithm = "kmodes"
)

// Artifact is the on-disk form of a fitted model.
type Artifact struct {
	Name      string            `json:"name"`
	Algorithm Algorithm         `json:"algorithm"`
	Clusters  []ArtifactCluster `json:"clusters"`
}

// ArtifactCluster is one cluster centre. Centroid is used by kmeans, Modes by
// kmodes. Feature keys and mode values may use canonical codes or survey
// labels.
type ArtifactCluster struct {
	ID       string             `json:"id"`
	Centroid map[string]float64 `json:"centroid,omitempty"`
	Modes    map[string]string  `json:"modes,omitempty"`
}

type feature struct {
	attr  models.Attribute
	value string
}

type centre struct {
	id      models.ClusterID
	weights map[feature]float64
	sqNorm  float64
	modes   map[models.Attribute]string
}

// Model is a compiled, immutable clustering model.
type Model struct {
	name      string
	algorithm Algorithm
	centres   []centre
}

// LoadModel reads <dir>/<name>.json. Every failure is reported as
// CodeModelUnavailable.
func LoadModel(dir, name string) (*Model, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeModelUnavailable, "model name is required")
	}
	path := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%s: %w", path, sentinel.ErrNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeModelUnavailable, "load model artifact")
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, err
	}
	if m.name == "" {
		m.name = name
	}
	return m, nil
}

// ParseModel decodes and compiles an artifact.
func ParseModel(data []byte) (*Model, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, dErrors.Wrap(fmt.Errorf("%w: %v", sentinel.ErrMalformed, err), dErrors.CodeModelUnavailable, "decode model artifact")
	}
	return Compile(a)
}

// Compile validates an artifact and builds a Model.
//
// Invariants:
//   - at least one cluster
//   - cluster ids are non-empty and unique
//   - every feature names a known attribute and a value in its domain
//   - kmodes clusters define a mode for every attribute
func Compile(a Artifact) (*Model, error) {
	if a.Algorithm == "" {
		a.Algorithm = AlgorithmKMeans
	}
	if a.Algorithm != AlgorithmKMeans && a.Algorithm != AlgorithmKModes {
		return nil, invalid("unsupported algorithm %q", a.Algorithm)
	}
	if len(a.Clusters) == 0 {
		return nil, invalid("model has no clusters")
	}

	m := &Model{name: a.Name, algorithm: a.Algorithm, centres: make([]centre, 0, len(a.Clusters))}
	seen := make(map[models.ClusterID]struct{}, len(a.Clusters))
	for i, ac := range a.Clusters {
		id, err := models.ParseClusterID(ac.ID)
		if err != nil {
			return nil, invalid("cluster %d: empty id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, invalid("duplicate cluster id %q", id)
		}
		seen[id] = struct{}{}

		c := centre{id: id}
		switch a.Algorithm {
		case AlgorithmKMeans:
			if c.weights, c.sqNorm, err = compileCentroid(ac.Centroid); err != nil {
				return nil, invalid("cluster %q: %v", id, err)
			}
		case AlgorithmKModes:
			if c.modes, err = compileModes(ac.Modes); err != nil {
				return nil, invalid("cluster %q: %v", id, err)
			}
		}
		m.centres = append(m.centres, c)
	}
	return m, nil
}

func compileCentroid(raw map[string]float64) (map[feature]float64, float64, error) {
	if len(raw) == 0 {
		return nil, 0, errors.New("empty centroid")
	}
	weights := make(map[feature]float64, len(raw))
	var sqNorm float64
	for key, w := range raw {
		attrName, value, ok := strings.Cut(key, "=")
		if !ok {
			return nil, 0, fmt.Errorf("feature %q is not attr=value", key)
		}
		attr, err := models.ParseAttribute(strings.TrimSpace(attrName))
		if err != nil {
			return nil, 0, err
		}
		code, err := attr.Normalize(value)
		if err != nil {
			return nil, 0, err
		}
		f := feature{attr: attr, value: code}
		if _, dup := weights[f]; dup {
			return nil, 0, fmt.Errorf("feature %q listed twice", key)
		}
		weights[f] = w
		sqNorm += w * w
	}
	return weights, sqNorm, nil
}

func compileModes(raw map[string]string) (map[models.Attribute]string, error) {
	modes := make(map[models.Attribute]string, len(models.Attributes))
	for name, value := range raw {
		attr, err := models.ParseAttribute(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		code, err := attr.Normalize(value)
		if err != nil {
			return nil, err
		}
		modes[attr] = code
	}
	for _, attr := range models.Attributes {
		if _, ok := modes[attr]; !ok {
			return nil, fmt.Errorf("missing mode for %s", attr)
		}
	}
	return modes, nil
}

func invalid(format string, args ...any) error {
	return dErrors.Wrap(fmt.Errorf("%w: %s", sentinel.ErrMalformed, fmt.Sprintf(format, args...)),
		dErrors.CodeModelUnavailable, "invalid model artifact")
}

// Name returns the artifact name.
func (m *Model) Name() string { return m.name }

// Algorithm returns the distance algorithm.
func (m *Model) Algorithm() Algorithm { return m.algorithm }

// Labels returns the model's label space in artifact order.
func (m *Model) Labels() []models.ClusterID {
	out := make([]models.ClusterID, len(m.centres))
	for i, c := range m.centres {
		out[i] = c.id
	}
	return out
}

// Predict returns the nearest cluster for p. Ties go to the cluster listed
// first in the artifact.
func (m *Model) Predict(p models.Person) models.ClusterID {
	best := 0
	bestDist := m.distance(m.centres[0], p)
	for i := 1; i < len(m.centres); i++ {
		if d := m.distance(m.centres[i], p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return m.centres[best].id
}

func (m *Model) distance(c centre, p models.Person) float64 {
	if m.algorithm == AlgorithmKModes {
		mismatches := 0
		for _, attr := range models.Attributes {
			if c.modes[attr] != p.Value(attr) {
				mismatches++
			}
		}
		return float64(mismatches)
	}
	// ||x - c||^2 with x one-hot: every centroid weight contributes w^2, and
	// each of the record's active features turns w^2 into (1-w)^2.
	d := c.sqNorm
	for _, attr := range models.Attributes {
		w := c.weights[feature{attr: attr, value: p.Value(attr)}]
		d += 1 - 2*w
	}
	return d
}
