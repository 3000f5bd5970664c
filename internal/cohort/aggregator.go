// Package cohort computes descriptive statistics over the rows of the
// reference population that share a cluster id.
package cohort

import (
	"surveymatch/internal/survey/models"
)

// DefaultSimilarLimit caps similar-person suggestions.
const DefaultSimilarLimit = 5

var (
	// DefaultMatchOn is the predicate used for similar-person suggestions.
	DefaultMatchOn = []models.Attribute{models.AttrFavPlace, models.AttrGender}

	// CompareAttributes are the tables shown when two cohorts are compared.
	CompareAttributes = []models.Attribute{models.AttrAge, models.AttrFavAnimals}
)

// Aggregator is stateless; every method is a pure function of its inputs and
// safe for concurrent use over a shared, read-only Population.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Summarize counts the rows labeled clusterID and tallies each attribute. An
// id with no rows yields Size 0 and empty tables; that is not an error.
func (a *Aggregator) Summarize(pop *models.Population, clusterID models.ClusterID) models.CohortSummary {
	counts := make(map[models.Attribute]map[string]int, len(models.Attributes))
	for _, attr := range models.Attributes {
		counts[attr] = make(map[string]int)
	}

	size := 0
	pop.Each(func(_ int, row models.LabeledPerson) bool {
		if row.ClusterID != clusterID {
			return true
		}
		size++
		for _, attr := range models.Attributes {
			counts[attr][row.Value(attr)]++
		}
		return true
	})

	tables := make(map[models.Attribute]models.FrequencyTable, len(models.Attributes))
	for _, attr := range models.Attributes {
		tables[attr] = models.NewFrequencyTable(attr, counts[attr])
	}
	return models.CohortSummary{ClusterID: clusterID, Size: size, Tables: tables}
}

// Compare summarizes two cohorts independently.
func (a *Aggregator) Compare(pop *models.Population, idA, idB models.ClusterID) (models.CohortSummary, models.CohortSummary) {
	return a.Summarize(pop, idA), a.Summarize(pop, idB)
}

// SummarizeAll summarizes every id in ids, keyed by id.
func (a *Aggregator) SummarizeAll(pop *models.Population, ids []models.ClusterID) map[models.ClusterID]models.CohortSummary {
	out := make(map[models.ClusterID]models.CohortSummary, len(ids))
	for _, id := range ids {
		out[id] = a.Summarize(pop, id)
	}
	return out
}

// FindSimilar returns up to limit rows labeled clusterID that agree with
// reference on every attribute in matchOn, in population order. An empty
// matchOn matches every row of the cohort; limit <= 0 returns nothing.
func (a *Aggregator) FindSimilar(pop *models.Population, clusterID models.ClusterID, matchOn []models.Attribute, reference models.Person, limit int) []models.LabeledPerson {
	if limit <= 0 {
		return nil
	}
	var out []models.LabeledPerson
	pop.Each(func(_ int, row models.LabeledPerson) bool {
		if row.ClusterID == clusterID && row.Matches(reference, matchOn) {
			out = append(out, row)
		}
		return len(out) < limit
	})
	return out
}
