package handler

import (
	"surveymatch/internal/survey/models"
	"surveymatch/internal/survey/service"
)

// ClusterResponse describes one cluster.
type ClusterResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Size        int    `json:"size"`
}

// RowResponse is one bar of a frequency chart.
type RowResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TableResponse is the frequency table of one attribute. Rows cover the whole
// domain in survey order, zero counts included.
type TableResponse struct {
	Attribute string        `json:"attribute"`
	Rows      []RowResponse `json:"rows"`
}

// CohortResponse is a cohort summary. NoData marks a cohort without rows;
// its tables are omitted.
type CohortResponse struct {
	ClusterID string          `json:"cluster_id"`
	Size      int             `json:"size"`
	NoData    bool            `json:"no_data,omitempty"`
	Tables    []TableResponse `json:"tables,omitempty"`
}

// ComparisonResponse pairs the assigned cohort with the chosen one.
type ComparisonResponse struct {
	Target ClusterResponse `json:"target"`
	Own    CohortResponse  `json:"own"`
	Other  CohortResponse  `json:"other"`
}

// MatchResponse is the HTTP response for POST /v1/match.
type MatchResponse struct {
	Cluster    ClusterResponse    `json:"cluster"`
	Degraded   bool               `json:"degraded,omitempty"`
	Notice     string             `json:"notice,omitempty"`
	Cohort     CohortResponse     `json:"cohort"`
	Comparison ComparisonResponse `json:"comparison"`
	Similar    []models.Person    `json:"similar"`
}

// ClustersResponse is the HTTP response for GET /v1/clusters.
type ClustersResponse struct {
	Clusters []ClusterResponse `json:"clusters"`
}

// SummaryResponse is the HTTP response for GET /v1/clusters/{clusterID}/summary.
type SummaryResponse struct {
	Cluster ClusterResponse `json:"cluster"`
	Cohort  CohortResponse  `json:"cohort"`
}

// FromMatchResult converts a match result to an HTTP response.
func FromMatchResult(res *service.MatchResult) *MatchResponse {
	cluster := ClusterResponse{ID: res.ClusterID.String(), Size: res.Cohort.Size}
	if res.Cluster != nil {
		cluster.Name = res.Cluster.Name
		cluster.Description = res.Cluster.Description
	}
	similar := res.Similar
	if similar == nil {
		similar = []models.Person{}
	}
	return &MatchResponse{
		Cluster:  cluster,
		Degraded: res.Degraded,
		Notice:   res.Notice,
		Cohort:   fromSummary(res.Cohort, models.Attributes),
		Comparison: ComparisonResponse{
			Target: fromOverview(res.Comparison.Target),
			Own:    fromSummary(res.Comparison.Own, res.Comparison.Attributes),
			Other:  fromSummary(res.Comparison.Other, res.Comparison.Attributes),
		},
		Similar: similar,
	}
}

// FromClusters converts the catalog listing to an HTTP response.
func FromClusters(clusters []service.ClusterOverview) *ClustersResponse {
	out := make([]ClusterResponse, len(clusters))
	for i, c := range clusters {
		out[i] = fromOverview(c)
	}
	return &ClustersResponse{Clusters: out}
}

// FromClusterSummary converts one cluster summary to an HTTP response.
func FromClusterSummary(s *service.ClusterSummary) *SummaryResponse {
	return &SummaryResponse{
		Cluster: fromOverview(s.ClusterOverview),
		Cohort:  fromSummary(s.Summary, models.Attributes),
	}
}

func fromOverview(c service.ClusterOverview) ClusterResponse {
	return ClusterResponse{
		ID:          c.ID.String(),
		Name:        c.Info.Name,
		Description: c.Info.Description,
		Size:        c.Size,
	}
}

func fromSummary(s models.CohortSummary, attrs []models.Attribute) CohortResponse {
	resp := CohortResponse{ClusterID: s.ClusterID.String(), Size: s.Size}
	if s.Empty() {
		resp.NoData = true
		return resp
	}
	resp.Tables = make([]TableResponse, 0, len(attrs))
	for _, attr := range attrs {
		filled := s.Table(attr).Filled()
		rows := make([]RowResponse, len(filled))
		for i, vc := range filled {
			rows[i] = RowResponse{Value: vc.Value, Label: attr.Label(vc.Value), Count: vc.Count}
		}
		resp.Tables = append(resp.Tables, TableResponse{Attribute: attr.String(), Rows: rows})
	}
	return resp
}
