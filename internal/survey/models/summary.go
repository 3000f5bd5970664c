package models

import "sort"

// ValueCount is one row of a frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyTable maps attribute values to occurrence counts. Only observed
// values are present; rows are ordered by the attribute's domain.
type FrequencyTable struct {
	Attribute Attribute    `json:"attribute"`
	Rows      []ValueCount `json:"rows"`
}

// NewFrequencyTable builds an ordered table from raw counts. Zero counts are
// dropped.
func NewFrequencyTable(attr Attribute, counts map[string]int) FrequencyTable {
	rows := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		if n > 0 {
			rows = append(rows, ValueCount{Value: v, Count: n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := attr.rank(rows[i].Value), attr.rank(rows[j].Value)
		if ri != rj {
			return ri < rj
		}
		return rows[i].Value < rows[j].Value
	})
	return FrequencyTable{Attribute: attr, Rows: rows}
}

// Count returns the count recorded for value, zero when unobserved.
func (t FrequencyTable) Count(value string) int {
	for _, r := range t.Rows {
		if r.Value == value {
			return r.Count
		}
	}
	return 0
}

// Total sums every count.
func (t FrequencyTable) Total() int {
	total := 0
	for _, r := range t.Rows {
		total += r.Count
	}
	return total
}

// Filled returns one row per domain value, in domain order, with zeros for
// values that were not observed.
func (t FrequencyTable) Filled() []ValueCount {
	domain := t.Attribute.Domain()
	out := make([]ValueCount, len(domain))
	for i, v := range domain {
		out[i] = ValueCount{Value: v, Count: t.Count(v)}
	}
	return out
}

// CohortSummary describes the rows sharing one cluster id.
type CohortSummary struct {
	ClusterID ClusterID                    `json:"cluster_id"`
	Size      int                          `json:"size"`
	Tables    map[Attribute]FrequencyTable `json:"tables"`
}

// Empty reports whether no row carried the cluster id. An empty cohort is a
// valid state, not an error.
func (s CohortSummary) Empty() bool {
	return s.Size == 0
}

// Table returns the frequency table for attr. Missing tables are empty.
func (s CohortSummary) Table(attr Attribute) FrequencyTable {
	if t, ok := s.Tables[attr]; ok {
		return t
	}
	return FrequencyTable{Attribute: attr}
}
