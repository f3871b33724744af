// ABOUTME: Query templater turns a free-form user request into a reusable search query
// ABOUTME: Makes exactly one LLM call per run; failure aborts the whole run

package templater

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"text/template"

	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
	"enrichment-app-api/core/interfaces"
)

const promptTemplate = `You turn research requests into web search queries.

Request: {{.Query}}

Rewrite the request as one short, effective web search query that will be run
once for every entity in a list (for example company names). Put the literal
placeholder {{.Placeholder}} exactly once where the entity name belongs.
Reply with the search query only, on a single line, without quotes or explanation.`

var (
	prompt = template.Must(template.New("query-template").Parse(promptTemplate))

	// Labels some models put in front of the query
	labelPattern = regexp.MustCompile(`(?i)^(search\s+query|query)\s*:\s*`)
)

// Templater generates the per-run query template
type Templater struct {
	generator interfaces.TextGenerator
	logger    interfaces.Logger
}

// New creates a templater backed by the given text generator
func New(generator interfaces.TextGenerator, logger interfaces.Logger) *Templater {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Templater{
		generator: generator,
		logger:    logger,
	}
}

// Generate builds the query template for a user request
func (t *Templater) Generate(ctx context.Context, query string) (domain.QueryTemplate, error) {
	var buf bytes.Buffer
	if err := prompt.Execute(&buf, struct {
		Query       string
		Placeholder string
	}{
		Query:       strings.TrimSpace(query),
		Placeholder: domain.EntityPlaceholder,
	}); err != nil {
		return domain.QueryTemplate{}, &apperrors.TemplateGenerationError{Query: query, Cause: err}
	}

	text, err := t.generator.GenerateText(ctx, buf.String())
	if err != nil {
		return domain.QueryTemplate{}, &apperrors.TemplateGenerationError{Query: query, Cause: err}
	}

	line := FirstLine(text)
	if line == "" {
		return domain.QueryTemplate{}, &apperrors.TemplateGenerationError{
			Query: query,
			Cause: errors.New("model returned an empty query"),
		}
	}

	tmpl, err := domain.NewQueryTemplate(line)
	if err != nil {
		return domain.QueryTemplate{}, &apperrors.TemplateGenerationError{Query: query, Cause: err}
	}

	t.logger.Info("Query template generated", map[string]interface{}{
		"query":    query,
		"template": tmpl.String(),
	})

	return tmpl, nil
}

// FirstLine returns the first non-empty line of an LLM reply,
// stripped of quotes, code fences and a leading "Search query:" label
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		line = labelPattern.ReplaceAllString(line, "")
		line = strings.Trim(line, "\"'`“”")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
