package requests

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildForm(t *testing.T, fields map[string]string, filename, content string) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile(FieldFile, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/enrich", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm
}

func TestParseEnrichForm(t *testing.T) {
	form := buildForm(t, map[string]string{
		FieldQuery:  "find the CEO",
		FieldColumn: "Company",
	}, "companies.csv", "Company\nAcme\n")

	parsed, err := ParseEnrichForm(form)
	require.NoError(t, err)
	defer parsed.Close()

	assert.Equal(t, "find the CEO", parsed.Query)
	assert.Equal(t, "Company", parsed.SelectedColumn)
	assert.Equal(t, "companies.csv", parsed.Filename)

	req := parsed.PipelineRequest()
	require.NotNil(t, req.Source)
	data, err := io.ReadAll(req.Source)
	require.NoError(t, err)
	assert.Equal(t, "Company\nAcme\n", string(data))
	assert.Equal(t, "Company", req.Column)
}

func TestParseEnrichForm_MissingFile(t *testing.T) {
	form := buildForm(t, map[string]string{FieldQuery: "q"}, "", "")

	parsed, err := ParseEnrichForm(form)
	require.NoError(t, err)

	req := parsed.PipelineRequest()
	assert.Nil(t, req.Source)
	assert.Empty(t, req.Column)
	assert.NoError(t, parsed.Close())
}

func TestParseEnrichForm_NilForm(t *testing.T) {
	parsed, err := ParseEnrichForm(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed.PipelineRequest().Source)
}
