package models

import (
	"sort"
	"strings"

	dErrors "surveymatch/pkg/domain-errors"
)

// ClusterID is a label from the fitted model's label space, e.g. "Cluster 0".
// Invariant: non-empty after trimming.
type ClusterID string

// ParseClusterID constructs a ClusterID from external input.
func ParseClusterID(s string) (ClusterID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "cluster id cannot be empty")
	}
	return ClusterID(s), nil
}

func (c ClusterID) String() string { return string(c) }

// ClusterInfo is the human-facing description of a cluster.
type ClusterInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Catalog maps cluster ids to their descriptions. It is read-only once built.
type Catalog struct {
	entries map[ClusterID]ClusterInfo
	ids     []ClusterID
}

// NewCatalog validates raw entries and builds a Catalog.
//
// Invariants:
//   - at least one entry
//   - keys are non-empty and unique after trimming
func NewCatalog(raw map[string]ClusterInfo) (*Catalog, error) {
	if len(raw) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "cluster catalog is empty")
	}
	c := &Catalog{entries: make(map[ClusterID]ClusterInfo, len(raw))}
	for k, info := range raw {
		id, err := ParseClusterID(k)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "invalid catalog key")
		}
		if _, dup := c.entries[id]; dup {
			return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "duplicate catalog key %q", id)
		}
		c.entries[id] = info
		c.ids = append(c.ids, id)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

// Lookup returns the description of id. A miss means the model and the
// catalog disagree and is reported as CodeUnknownCluster.
func (c *Catalog) Lookup(id ClusterID) (ClusterInfo, error) {
	info, ok := c.entries[id]
	if !ok {
		return ClusterInfo{}, dErrors.Newf(dErrors.CodeUnknownCluster, "cluster %q has no catalog entry", id)
	}
	return info, nil
}

// Has reports whether id has an entry.
func (c *Catalog) Has(id ClusterID) bool {
	_, ok := c.entries[id]
	return ok
}

// IDByName resolves a display name to a cluster id. When several clusters
// share a name the smallest id wins.
func (c *Catalog) IDByName(name string) (ClusterID, bool) {
	name = strings.TrimSpace(name)
	for _, id := range c.ids {
		if c.entries[id].Name == name {
			return id, true
		}
	}
	return "", false
}

// Resolve accepts either a cluster id or a display name.
func (c *Catalog) Resolve(ref string) (ClusterID, error) {
	ref = strings.TrimSpace(ref)
	if c.Has(ClusterID(ref)) {
		return ClusterID(ref), nil
	}
	if id, ok := c.IDByName(ref); ok {
		return id, nil
	}
	return "", dErrors.Newf(dErrors.CodeUnknownCluster, "no cluster with id or name %q", ref)
}

// IDs returns every id in ascending order.
func (c *Catalog) IDs() []ClusterID {
	return append([]ClusterID(nil), c.ids...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.ids)
}
