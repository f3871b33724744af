// ABOUTME: Multipart form input for the enrichment endpoint
// ABOUTME: Field names match the original upload form: file, query, selectedColumn

package requests

import (
	"mime/multipart"
	"strings"

	"enrichment-app-api/core/pipeline"
)

// Form field names
const (
	FieldFile   = "file"
	FieldQuery  = "query"
	FieldColumn = "selectedColumn"
)

// EnrichForm is the decoded upload form
type EnrichForm struct {
	File           multipart.File
	Filename       string
	Query          string
	SelectedColumn string
}

// ParseEnrichForm reads the enrichment fields from a parsed multipart form.
// A missing or unnamed file leaves File nil so the pipeline reports it.
func ParseEnrichForm(form *multipart.Form) (*EnrichForm, error) {
	out := &EnrichForm{}
	if form == nil {
		return out, nil
	}

	out.Query = firstValue(form.Value, FieldQuery)
	out.SelectedColumn = firstValue(form.Value, FieldColumn)

	headers := form.File[FieldFile]
	if len(headers) == 0 || headers[0] == nil || strings.TrimSpace(headers[0].Filename) == "" {
		return out, nil
	}

	file, err := headers[0].Open()
	if err != nil {
		return nil, err
	}
	out.File = file
	out.Filename = headers[0].Filename
	return out, nil
}

// PipelineRequest converts the form to a pipeline request
func (f *EnrichForm) PipelineRequest() pipeline.Request {
	req := pipeline.Request{
		Filename: f.Filename,
		Query:    f.Query,
		Column:   f.SelectedColumn,
	}
	if f.File != nil {
		req.Source = f.File
	}
	return req
}

// Close releases the uploaded file
func (f *EnrichForm) Close() error {
	if f.File == nil {
		return nil
	}
	return f.File.Close()
}

func firstValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
