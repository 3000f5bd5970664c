package service

import (
	"surveymatch/internal/survey/models"
)

// MatchRequest is one query against the reference data.
type MatchRequest struct {
	Person models.Person

	// CompareWith selects the comparison cohort by id or display name. Empty
	// selects the first catalogued cluster other than the assigned one.
	CompareWith string
}

// MatchResult is everything one match pass produces.
//
// When Degraded is set the assigned cluster has no catalog entry: Cluster is
// nil and Notice explains why, but the statistics are still filled in.
type MatchResult struct {
	ClusterID  models.ClusterID
	Cluster    *models.ClusterInfo
	Degraded   bool
	Notice     string
	Cohort     models.CohortSummary
	Comparison Comparison
	Similar    []models.Person
}

// Comparison pairs the assigned cohort with another one over Attributes.
type Comparison struct {
	Attributes []models.Attribute
	Target     ClusterOverview
	Own        models.CohortSummary
	Other      models.CohortSummary
}

// ClusterOverview is a catalog entry with its cohort size.
type ClusterOverview struct {
	ID   models.ClusterID
	Info models.ClusterInfo
	Size int
}

// ClusterSummary is a catalog entry with its full cohort statistics.
type ClusterSummary struct {
	ClusterOverview
	Summary models.CohortSummary
}
