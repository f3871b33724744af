// ABOUTME: Prometheus collectors for enrichment runs, LLM calls and HTTP traffic
// ABOUTME: Implements the pipeline recorder on a private registry exposed at /metrics

package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"enrichment-app-api/core/domain"
	"enrichment-app-api/core/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "enrichment"

// Metrics owns a registry and every collector the service exports
type Metrics struct {
	registry *prometheus.Registry

	runs            *prometheus.CounterVec
	runDuration     prometheus.Histogram
	entities        *prometheus.CounterVec
	entityDuration  prometheus.Histogram
	entitiesSkipped prometheus.Counter
	searchResults   prometheus.Histogram
	llmRequests     *prometheus.CounterVec
	llmDuration     *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Enrichment runs by result",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of enrichment runs",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_total",
			Help:      "Processed entities by outcome status and failure stage",
		}, []string{"status", "stage"}),
		entityDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "entity_duration_seconds",
			Help:      "Time spent searching and extracting one entity",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
		entitiesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_truncated_total",
			Help:      "Entities dropped by the per-run cap",
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Search results kept per entity after cleaning",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM calls by provider and result",
		}, []string{"provider", "result"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.runs, m.runDuration,
		m.entities, m.entityDuration, m.entitiesSkipped,
		m.searchResults,
		m.llmRequests, m.llmDuration,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RunFinished records one completed, failed or cancelled run
func (m *Metrics) RunFinished(result string, duration time.Duration) {
	m.runs.WithLabelValues(result).Inc()
	m.runDuration.Observe(duration.Seconds())
}

// EntitiesTruncated counts entities skipped by the cap
func (m *Metrics) EntitiesTruncated(skipped int) {
	if skipped > 0 {
		m.entitiesSkipped.Add(float64(skipped))
	}
}

// EntityProcessed records one entity outcome
func (m *Metrics) EntityProcessed(status domain.OutcomeStatus, stage domain.FailureStage, duration time.Duration) {
	stageLabel := string(stage)
	if stageLabel == "" {
		stageLabel = "none"
	}
	m.entities.WithLabelValues(string(status), stageLabel).Inc()
	m.entityDuration.Observe(duration.Seconds())
}

// SearchResults records how many results an entity kept
func (m *Metrics) SearchResults(count int) {
	m.searchResults.Observe(float64(count))
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// InstrumentGenerator wraps a text generator so every call is counted
func (m *Metrics) InstrumentGenerator(provider string, next interfaces.TextGenerator) interfaces.TextGenerator {
	return &instrumentedGenerator{metrics: m, provider: provider, next: next}
}

type instrumentedGenerator struct {
	metrics  *Metrics
	provider string
	next     interfaces.TextGenerator
}

func (g *instrumentedGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.next.GenerateText(ctx, prompt)

	result := "success"
	if err != nil {
		result = "error"
	}
	g.metrics.llmRequests.WithLabelValues(g.provider, result).Inc()
	g.metrics.llmDuration.WithLabelValues(g.provider).Observe(time.Since(start).Seconds())
	return text, err
}
