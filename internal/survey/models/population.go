package models

import "sort"

// Population is the labeled reference dataset. Rows keep the order in which
// they were loaded and are never mutated.
type Population struct {
	rows []LabeledPerson
}

// NewPopulation copies rows into a read-only Population.
func NewPopulation(rows []LabeledPerson) *Population {
	return &Population{rows: append([]LabeledPerson(nil), rows...)}
}

// Len returns the number of rows.
func (p *Population) Len() int {
	if p == nil {
		return 0
	}
	return len(p.rows)
}

// At returns row i.
func (p *Population) At(i int) LabeledPerson {
	return p.rows[i]
}

// Each calls fn for every row in load order until fn returns false.
func (p *Population) Each(fn func(i int, row LabeledPerson) bool) {
	if p == nil {
		return
	}
	for i, row := range p.rows {
		if !fn(i, row) {
			return
		}
	}
}

// Labels returns the distinct cluster ids present, sorted.
func (p *Population) Labels() []ClusterID {
	seen := make(map[ClusterID]struct{})
	var out []ClusterID
	p.Each(func(_ int, row LabeledPerson) bool {
		if _, ok := seen[row.ClusterID]; !ok {
			seen[row.ClusterID] = struct{}{}
			out = append(out, row.ClusterID)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Uncatalogued returns labels present in p that have no entry in c.
func (p *Population) Uncatalogued(c *Catalog) []ClusterID {
	var missing []ClusterID
	for _, id := range p.Labels() {
		if !c.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
