// ABOUTME: Metrics hooks emitted by the pipeline orchestrator
// ABOUTME: The default recorder discards everything; the server wires prometheus

package pipeline

import (
	"time"

	"enrichment-app-api/core/domain"
)

// Run results reported to RunFinished
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
	RunCancelled = "cancelled"
)

// Recorder receives pipeline metrics
type Recorder interface {
	// RunFinished is called once per run with its result and duration
	RunFinished(result string, duration time.Duration)

	// EntitiesTruncated is called with the number of entities skipped by the cap
	EntitiesTruncated(skipped int)

	// EntityProcessed is called once per processed entity
	EntityProcessed(status domain.OutcomeStatus, stage domain.FailureStage, duration time.Duration)

	// SearchResults is called with the number of results kept for an entity
	SearchResults(count int)
}

// NopRecorder discards all metrics
type NopRecorder struct{}

func (NopRecorder) RunFinished(string, time.Duration)                                        {}
func (NopRecorder) EntitiesTruncated(int)                                                    {}
func (NopRecorder) EntityProcessed(domain.OutcomeStatus, domain.FailureStage, time.Duration) {}
func (NopRecorder) SearchResults(int)                                                        {}
