// ABOUTME: Pipeline orchestrator drives template generation, search and extraction per entity
// ABOUTME: Per-entity failures are recorded as outcomes; failures above the entity boundary abort the run

package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/entities"
	apperrors "enrichment-app-api/core/errors"
	"enrichment-app-api/core/extraction"
	"enrichment-app-api/core/interfaces"
	"github.com/google/uuid"
)

// DefaultMaxEntities is the per-run entity cap
const DefaultMaxEntities = 27

// QueryTemplater builds the per-run query template
type QueryTemplater interface {
	Generate(ctx context.Context, query string) (domain.QueryTemplate, error)
}

// WebSearcher runs one cleaned search
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// InformationExtractor answers one entity from its search results
type InformationExtractor interface {
	Extract(ctx context.Context, req extraction.Request) (domain.Extraction, error)
}

// Config holds orchestrator settings. It is fixed at construction.
type Config struct {
	// MaxEntities caps the entities processed per run; entities at
	// positions MaxEntities and beyond are not processed
	MaxEntities int
}

// Request is one pipeline invocation
type Request struct {
	Source   io.Reader
	Filename string
	Query    string
	Column   string
}

// Orchestrator runs the enrichment pipeline
type Orchestrator struct {
	cfg       Config
	templater QueryTemplater
	searcher  WebSearcher
	extractor InformationExtractor
	recorder  Recorder
	logger    interfaces.Logger
	now       func() time.Time
}

// New creates an orchestrator. A nil recorder or logger discards output.
func New(cfg Config, templater QueryTemplater, searcher WebSearcher, extractor InformationExtractor, recorder Recorder, logger interfaces.Logger) *Orchestrator {
	if cfg.MaxEntities <= 0 {
		cfg.MaxEntities = DefaultMaxEntities
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Orchestrator{
		cfg:       cfg,
		templater: templater,
		searcher:  searcher,
		extractor: extractor,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// MaxEntities returns the configured cap
func (o *Orchestrator) MaxEntities() int {
	return o.cfg.MaxEntities
}

// Run executes one pipeline run.
// Input, column and template errors abort the run before any search is made.
// A cancelled context aborts the run and discards partial outcomes.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*domain.PipelineRun, error) {
	started := o.now()

	run, err := o.run(ctx, req, started)

	result := RunCompleted
	switch {
	case err != nil && ctx.Err() != nil:
		result = RunCancelled
	case err != nil:
		result = RunFailed
	}
	o.recorder.RunFinished(result, o.now().Sub(started))

	if err != nil {
		o.logger.Warn("Pipeline run aborted", map[string]interface{}{
			"query":  req.Query,
			"column": req.Column,
			"error":  err.Error(),
		})
		return nil, err
	}

	return run, nil
}

func (o *Orchestrator) run(ctx context.Context, req Request, started time.Time) (*domain.PipelineRun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	table, err := entities.ParseTable(req.Source, req.Filename)
	if err != nil {
		return nil, err
	}

	all, err := entities.Extract(table, req.Column)
	if err != nil {
		return nil, err
	}

	capped := domain.CapEntities(all, o.cfg.MaxEntities)
	if skipped := len(all) - len(capped); skipped > 0 {
		o.recorder.EntitiesTruncated(skipped)
		o.logger.Info("Entity list truncated", map[string]interface{}{
			"total": len(all),
			"cap":   o.cfg.MaxEntities,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpl, err := o.templater.Generate(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	run := &domain.PipelineRun{
		ID:            uuid.NewString(),
		Query:         req.Query,
		Column:        req.Column,
		Template:      tmpl,
		TotalEntities: len(all),
		Entities:      capped,
		Outcomes:      make([]domain.Outcome, 0, len(capped)),
		StartedAt:     started,
	}

	o.logger.Info("Pipeline run started", map[string]interface{}{
		"run_id":   run.ID,
		"template": tmpl.String(),
		"entities": len(capped),
		"total":    len(all),
	})

	for _, entity := range capped {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome, err := o.processEntity(ctx, run, entity)
		if err != nil {
			return nil, err
		}
		run.Outcomes = append(run.Outcomes, outcome)
	}

	run.FinishedAt = o.now()

	success, failure := run.Counts()
	o.logger.Info("Pipeline run completed", map[string]interface{}{
		"run_id":      run.ID,
		"succeeded":   success,
		"failed":      failure,
		"duration_ms": run.Duration().Milliseconds(),
	})

	return run, nil
}

// processEntity runs search and extraction for one entity. It only returns
// an error when the run itself must stop.
func (o *Orchestrator) processEntity(ctx context.Context, run *domain.PipelineRun, entity domain.Entity) (domain.Outcome, error) {
	started := o.now()
	state := newTracker()

	if err := state.to(domain.StateSearching); err != nil {
		return domain.Outcome{}, err
	}

	query := run.Template.Render(entity.Value)
	results, err := o.searcher.Search(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Outcome{}, ctx.Err()
		}
		return o.fail(run, state, entity, domain.StageSearch, err, started)
	}
	o.recorder.SearchResults(len(results))

	if err := state.to(domain.StateExtracting); err != nil {
		return domain.Outcome{}, err
	}

	info, err := o.extractor.Extract(ctx, extraction.Request{
		Entity:  entity.Value,
		Query:   query,
		Task:    run.Query,
		Results: results,
	})
	if err != nil {
		if ctx.Err() != nil {
			return domain.Outcome{}, ctx.Err()
		}
		return o.fail(run, state, entity, domain.StageExtract, err, started)
	}

	if err := state.to(domain.StateDone); err != nil {
		return domain.Outcome{}, err
	}

	o.recorder.EntityProcessed(domain.OutcomeSuccess, "", o.now().Sub(started))

	return domain.NewSuccess(entity, info, results), nil
}

func (o *Orchestrator) fail(run *domain.PipelineRun, state *tracker, entity domain.Entity, stage domain.FailureStage, cause error, started time.Time) (domain.Outcome, error) {
	if err := state.to(domain.StateFailed); err != nil {
		return domain.Outcome{}, err
	}

	o.recorder.EntityProcessed(domain.OutcomeFailure, stage, o.now().Sub(started))
	o.logger.Warn("Entity failed", map[string]interface{}{
		"run_id": run.ID,
		"entity": entity.Value,
		"row":    entity.Row,
		"stage":  string(stage),
		"error":  cause.Error(),
	})

	return domain.NewFailure(entity, stage, cause), nil
}

func validate(req Request) error {
	if req.Source == nil {
		return &apperrors.ValidationError{Field: "file", Message: "file is required"}
	}
	if strings.TrimSpace(req.Query) == "" {
		return &apperrors.ValidationError{Field: "query", Message: "query is required"}
	}
	if strings.TrimSpace(req.Column) == "" {
		return &apperrors.ValidationError{Field: "selectedColumn", Message: "column is required"}
	}
	return nil
}

// tracker enforces the per-entity state machine
type tracker struct {
	state domain.EntityState
}

func newTracker() *tracker {
	return &tracker{state: domain.StatePending}
}

func (t *tracker) to(next domain.EntityState) error {
	if !t.state.CanTransition(next) {
		return fmt.Errorf("invalid entity state transition %s -> %s", t.state, next)
	}
	t.state = next
	return nil
}
