// ABOUTME: Per-entity outcome and processing state models
// ABOUTME: An outcome is either a success payload or a structured failure, never both

package domain

// EntityState is the processing state of one entity within a run
type EntityState string

const (
	StatePending    EntityState = "pending"
	StateSearching  EntityState = "searching"
	StateExtracting EntityState = "extracting"
	StateDone       EntityState = "done"
	StateFailed     EntityState = "failed"
)

var transitions = map[EntityState][]EntityState{
	StatePending:    {StateSearching},
	StateSearching:  {StateExtracting, StateFailed},
	StateExtracting: {StateDone, StateFailed},
}

// Terminal reports whether no further transition is allowed
func (s EntityState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether moving from s to next is allowed
func (s EntityState) CanTransition(next EntityState) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OutcomeStatus tags which variant of an Outcome is populated
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// FailureStage names the step an entity failed in
type FailureStage string

const (
	StageSearch  FailureStage = "search"
	StageExtract FailureStage = "extract"
)

// Extraction is the information extracted for one entity
type Extraction struct {
	// Answer is the LLM answer or the not-enough-information sentinel
	Answer string

	// Sufficient is false when the context did not contain the answer
	Sufficient bool

	// Emails found in the answer
	Emails []string

	// Phones found in the answer
	Phones []string
}

// Outcome is the result for one processed entity
type Outcome struct {
	Entity Entity
	Status OutcomeStatus

	// Success fields
	Extraction *Extraction
	Sources    []SearchResult

	// Failure fields
	Stage FailureStage
	Error string
}

// NewSuccess builds a success outcome
func NewSuccess(entity Entity, extraction Extraction, sources []SearchResult) Outcome {
	return Outcome{
		Entity:     entity,
		Status:     OutcomeSuccess,
		Extraction: &extraction,
		Sources:    sources,
	}
}

// NewFailure builds a failure outcome
func NewFailure(entity Entity, stage FailureStage, err error) Outcome {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Outcome{
		Entity: entity,
		Status: OutcomeFailure,
		Stage:  stage,
		Error:  msg,
	}
}

// Succeeded reports whether the success variant is populated
func (o Outcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}
