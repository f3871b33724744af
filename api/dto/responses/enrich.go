// ABOUTME: Response DTOs for the enrichment and health endpoints
// ABOUTME: The responses array keeps the legacy client contract

package responses

// SourceResponse is one search result an answer was drawn from
type SourceResponse struct {
	Title string `json:"title" doc:"Result title"`
	URL   string `json:"url" doc:"Result URL"`
}

// OutcomeResponse is the result for one entity.
// Success and failure fields are mutually exclusive.
type OutcomeResponse struct {
	Entity string `json:"entity" doc:"Entity value from the selected column"`
	Row    int    `json:"row" doc:"1-based data row where the entity was first seen"`
	Status string `json:"status" enum:"success,failure" doc:"Outcome variant"`

	Info       string           `json:"info,omitempty" doc:"Extracted answer or 'Not enough information'"`
	Sufficient *bool            `json:"sufficient,omitempty" doc:"False when the search context did not contain the answer"`
	Emails     []string         `json:"emails,omitempty"`
	Phones     []string         `json:"phones,omitempty"`
	Sources    []SourceResponse `json:"sources,omitempty"`

	Stage string `json:"stage,omitempty" enum:"search,extract" doc:"Step the entity failed in"`
	Error string `json:"error,omitempty" doc:"Failure message"`
}

// EnrichResponse is the body of a successful enrichment run
type EnrichResponse struct {
	RunID         string            `json:"run_id" doc:"Unique run identifier"`
	Template      string            `json:"template" doc:"Search query template with the {entity} placeholder"`
	TotalEntities int               `json:"total_entities" doc:"Distinct entities found before the cap"`
	Processed     int               `json:"processed" doc:"Entities processed in this run"`
	Truncated     bool              `json:"truncated" doc:"True when the cap dropped entities"`
	DurationMs    int64             `json:"duration_ms"`
	Responses     []OutcomeResponse `json:"responses" doc:"One entry per processed entity, in input order"`
}

// HealthResponse reports service readiness and configuration
type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	LLMProvider   string `json:"llm_provider"`
	SearchBackend string `json:"search_backend"`
	MaxEntities   int    `json:"max_entities"`
}
