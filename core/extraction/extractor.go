// ABOUTME: Information extractor asks the LLM to answer from search results only
// ABOUTME: Produces a sufficient answer or the not-enough-information sentinel, plus contact details

package extraction

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"text/template"

	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
	"enrichment-app-api/core/interfaces"
)

// NotEnoughInformation is the reply the model gives when the context is insufficient
const NotEnoughInformation = "Not enough information"

const promptTemplate = `You are a research assistant extracting facts about "{{.Entity}}".

Task: {{.Task}}
Search query used: {{.Query}}

Answer strictly from the search results below. Do not use prior knowledge.
If the results do not contain the answer, reply exactly: {{.Sentinel}}
Keep the answer short and factual.

Search results:
{{- if not .Results}}
(no results)
{{- end}}
{{- range $i, $r := .Results}}
{{inc $i}}. {{$r.Title}}
   {{$r.Snippet}}
   Source: {{$r.URL}}
{{- end}}
`

var prompt = template.Must(template.New("extraction").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(promptTemplate))

// Request is the input for one entity
type Request struct {
	Entity  string
	Query   string
	Task    string
	Results []domain.SearchResult
}

// Extractor turns search results into an answer for one entity
type Extractor struct {
	generator      interfaces.TextGenerator
	extractContact bool
	logger         interfaces.Logger
}

// New creates an extractor. When extractContact is set, emails and phone
// numbers are pulled out of sufficient answers.
func New(generator interfaces.TextGenerator, extractContact bool, logger interfaces.Logger) *Extractor {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Extractor{
		generator:      generator,
		extractContact: extractContact,
		logger:         logger,
	}
}

// BuildPrompt renders the extraction prompt
func BuildPrompt(req Request) (string, error) {
	task := strings.TrimSpace(req.Task)
	if task == "" {
		task = req.Query
	}

	var buf bytes.Buffer
	err := prompt.Execute(&buf, struct {
		Request
		Sentinel string
	}{
		Request: Request{
			Entity:  req.Entity,
			Query:   req.Query,
			Task:    task,
			Results: req.Results,
		},
		Sentinel: NotEnoughInformation,
	})
	return buf.String(), err
}

// Extract makes exactly one LLM call for the entity
func (e *Extractor) Extract(ctx context.Context, req Request) (domain.Extraction, error) {
	text, err := BuildPrompt(req)
	if err != nil {
		return domain.Extraction{}, &apperrors.ExtractionError{Entity: req.Entity, Cause: err}
	}

	answer, err := e.generator.GenerateText(ctx, text)
	if err != nil {
		return domain.Extraction{}, &apperrors.ExtractionError{Entity: req.Entity, Cause: err}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return domain.Extraction{}, &apperrors.ExtractionError{
			Entity: req.Entity,
			Cause:  errors.New("model returned an empty answer"),
		}
	}

	if IsSentinel(answer) {
		e.logger.Debug("Not enough information", map[string]interface{}{
			"entity":  req.Entity,
			"results": len(req.Results),
		})
		return domain.Extraction{Answer: NotEnoughInformation, Sufficient: false}, nil
	}

	extraction := domain.Extraction{Answer: answer, Sufficient: true}
	if e.extractContact {
		extraction.Emails = FindEmails(answer)
		extraction.Phones = FindPhones(answer)
	}

	return extraction, nil
}

// IsSentinel reports whether the answer is the not-enough-information reply.
// Case, surrounding quotes and trailing punctuation are ignored.
func IsSentinel(answer string) bool {
	s := strings.TrimSpace(answer)
	s = strings.Trim(s, "\"'`*_ ")
	s = strings.TrimRight(s, ".!")
	return strings.EqualFold(strings.TrimSpace(s), NotEnoughInformation)
}
