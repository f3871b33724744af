// ABOUTME: Pipeline run model scoped to a single request
// ABOUTME: Owns the entity list, the query template and the accumulated outcomes

package domain

import "time"

// PipelineRun is the ephemeral state and result of one enrichment run
type PipelineRun struct {
	ID       string
	Query    string
	Column   string
	Template QueryTemplate

	// TotalEntities is the number of distinct entities before the cap
	TotalEntities int

	// Entities is the capped, ordered list that was processed
	Entities []Entity

	Outcomes []Outcome

	StartedAt  time.Time
	FinishedAt time.Time
}

// Truncated reports whether the cap dropped any entities
func (r *PipelineRun) Truncated() bool {
	return r.TotalEntities > len(r.Entities)
}

// Counts returns the number of success and failure outcomes
func (r *PipelineRun) Counts() (succeeded, failed int) {
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Duration returns the wall time of the run
func (r *PipelineRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
