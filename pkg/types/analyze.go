// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QueryType classifies the user's intent. The pipeline only executes
// broad semantic searches itself; the other types exist so a caller can
// route specific lookups elsewhere.
type QueryType string

const (
	QueryBroadSemantic   QueryType = "BROAD_SEMANTIC"
	QuerySpecificByTitle QueryType = "SPECIFIC_BY_TITLE"
	QuerySpecificByName  QueryType = "SPECIFIC_BY_NAME"
	QueryPureMetadata    QueryType = "PURE_METADATA"
	QueryCitingPapers    QueryType = "CITING_PAPERS"
)

// Criterion is one weighted relevance sub-criterion. Weight is in [0,1];
// a criteria list is guidance for the oracle and need not sum to 1.
type Criterion struct {
	Description string  `json:"description" yaml:"description"`
	Weight      float64 `json:"weight" yaml:"weight"`
}

// YearRange is an optional publication year filter extracted from the query.
type YearRange struct {
	StartYear int `json:"start_year,omitempty" yaml:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty" yaml:"end_year,omitempty"`
}

// AnalyzedQuery is the structured intent descriptor produced by the query
// analyzer: the semantic topic stripped of metadata filters, weighted
// relevance criteria, extracted filters, and sorting preferences.
type AnalyzedQuery struct {
	QueryType    QueryType   `json:"query_type" yaml:"query_type"`
	ContentQuery string      `json:"content_query" yaml:"content_query"`
	Criteria     []Criterion `json:"criteria" yaml:"criteria"`

	TimeRange *YearRange `json:"time_range,omitempty" yaml:"time_range,omitempty"`
	Venues    []string   `json:"venues,omitempty" yaml:"venues,omitempty"`
	Authors   []string   `json:"authors,omitempty" yaml:"authors,omitempty"`
	Domains   []string   `json:"domains,omitempty" yaml:"domains,omitempty"`

	// Sorting preferences detected in the query ("latest" vs "seminal").
	RecentFirst  bool `json:"recent_first" yaml:"recent_first"`
	CentralFirst bool `json:"central_first" yaml:"central_first"`
}
