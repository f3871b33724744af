// ABOUTME: Mappers for converting pipeline runs to API DTOs
// ABOUTME: Keeps the wire format independent of the domain model

package mappers

import (
	"enrichment-app-api/api/dto/responses"
	"enrichment-app-api/core/domain"
	"github.com/jinzhu/copier"
)

// ToEnrichResponse converts a finished run to the response DTO
func ToEnrichResponse(run *domain.PipelineRun) *responses.EnrichResponse {
	if run == nil {
		return nil
	}

	response := &responses.EnrichResponse{
		RunID:         run.ID,
		Template:      run.Template.String(),
		TotalEntities: run.TotalEntities,
		Processed:     len(run.Outcomes),
		Truncated:     run.Truncated(),
		DurationMs:    run.Duration().Milliseconds(),
		Responses:     make([]responses.OutcomeResponse, 0, len(run.Outcomes)),
	}

	for _, outcome := range run.Outcomes {
		response.Responses = append(response.Responses, ToOutcomeResponse(outcome))
	}

	return response
}

// ToOutcomeResponse converts one entity outcome
func ToOutcomeResponse(outcome domain.Outcome) responses.OutcomeResponse {
	out := responses.OutcomeResponse{
		Entity: outcome.Entity.Value,
		Row:    outcome.Entity.Row,
		Status: string(outcome.Status),
	}

	if !outcome.Succeeded() {
		out.Stage = string(outcome.Stage)
		out.Error = outcome.Error
		return out
	}

	if ext := outcome.Extraction; ext != nil {
		sufficient := ext.Sufficient
		out.Info = ext.Answer
		out.Sufficient = &sufficient
		out.Emails = ext.Emails
		out.Phones = ext.Phones
	}
	out.Sources = ToSourceResponses(outcome.Sources)
	return out
}

// ToSourceResponses copies search results into source DTOs
func ToSourceResponses(results []domain.SearchResult) []responses.SourceResponse {
	if len(results) == 0 {
		return nil
	}
	sources := make([]responses.SourceResponse, 0, len(results))
	if err := copier.Copy(&sources, &results); err != nil || len(sources) != len(results) {
		return sourcesByField(results)
	}
	return sources
}

func sourcesByField(results []domain.SearchResult) []responses.SourceResponse {
	sources := make([]responses.SourceResponse, len(results))
	for i, r := range results {
		sources[i] = responses.SourceResponse{Title: r.Title, URL: r.URL}
	}
	return sources
}
