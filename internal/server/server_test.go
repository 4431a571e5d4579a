package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/config"
)

const rowsCSV = `section,level,label,description,length,type,optionality
request,1,a,,10,text,M
request,1,b,,4,text,
request,1,c,,30,text,
`

func newTestServer() *Server {
	return New(config.Default(), zerolog.Nop())
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBuild(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/build", "text/csv", rowsCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc["request"], 3)
	assert.Equal(t, "a", doc["request"][0]["normalizedName"])
	assert.Empty(t, doc["response"])

	rec = do(t, s, http.MethodPost, "/v1/build?format=yaml", "text/csv", rowsCSV)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "request:\n")
}

func TestBuild_StructuralError(t *testing.T) {
	body := "section,level,label,length\nrequest,1,a,1\nrequest,1,A,1\n"

	rec := do(t, newTestServer(), http.MethodPost, "/v1/build", "text/csv", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "DuplicateFieldName", got["kind"])
	assert.Equal(t, "request", got["section"])
	assert.Equal(t, float64(2), got["row"])
}

func TestBuild_BadInput(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/build", "application/pdf", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/build", "text/csv", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/build", "text/csv", strings.Repeat("x", MaxBodyBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestLayout(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/layout", "text/csv", rowsCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Tables []struct {
			ScopeName   string `json:"scopeName"`
			TotalLength int    `json:"totalLength"`
			Entries     []struct {
				FieldPath   string `json:"fieldPath"`
				StartOffset int    `json:"startOffset"`
			} `json:"entries"`
		} `json:"tables"`
		Warnings []any `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Len(t, got.Tables, 3)
	assert.Equal(t, "request", got.Tables[1].ScopeName)
	assert.Equal(t, 44, got.Tables[1].TotalLength)
	assert.Equal(t, 14, got.Tables[1].Entries[2].StartOffset)
	assert.NotNil(t, got.Warnings)

	rec = do(t, s, http.MethodPost, "/v1/layout?format=html", "text/csv", rowsCSV)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<table>")

	rec = do(t, s, http.MethodPost, "/v1/layout?format=markdown", "text/csv", rowsCSV)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total length: 44")
}

func TestLayout_MissingLength(t *testing.T) {
	body := "level,label\n1,a\n"

	rec := do(t, newTestServer(), http.MethodPost, "/v1/layout?section=response", "text/csv", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"MissingLength"`)
}

func TestLayout_RepetitionBeyondLimit(t *testing.T) {
	body := "level,label,description,length\n1,items:Item,,\n2,occurrence,0..5000000,1\n2,sku,,8\n"

	rec := do(t, newTestServer(), http.MethodPost, "/v1/layout?section=request", "text/csv", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"LayoutTooLarge"`)
	assert.Contains(t, rec.Body.String(), `"row":1`)

	cfg := config.Default()
	cfg.Build.MaxEntries = 2

	rec = do(t, New(cfg, zerolog.Nop()), http.MethodPost, "/v1/layout?section=request", "text/csv", rowsCSV)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"LayoutTooLarge"`)
}

func TestLayout_LengthOverflow(t *testing.T) {
	body := "level,label,length\n1,a,9223372036854775807\n1,b,1\n1,c,1\n"

	rec := do(t, newTestServer(), http.MethodPost, "/v1/layout?section=request", "text/csv", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"LengthOverflow"`)
	assert.Contains(t, rec.Body.String(), `"row":2`)
}

func TestCheck(t *testing.T) {
	s := newTestServer()

	body := `{"sets":{
		"A":[{"path":"fieldA","type":"text","shape":"Scalar"}],
		"B":[{"path":"fieldA","type":"string","shape":"Scalar"}],
		"C":[]
	}}`

	rec := do(t, s, http.MethodPost, "/v1/check", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Artifacts []string `json:"artifacts"`
		Issues    []struct {
			Category  string `json:"category"`
			Severity  string `json:"severity"`
			FieldPath string `json:"fieldPath"`
		} `json:"issues"`
		Failed bool `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, []string{"A", "B", "C"}, got.Artifacts)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, "MISSING_FIELD", got.Issues[0].Category)
	assert.Equal(t, "error", got.Issues[0].Severity)
	assert.True(t, got.Failed)

	ignored := strings.Replace(body, `{"sets"`, `{"ignore":["fieldA"],"sets"`, 1)
	rec = do(t, s, http.MethodPost, "/v1/check", "application/json", ignored)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"issues":[]`)
	assert.Contains(t, rec.Body.String(), `"failed":false`)

	rec = do(t, s, http.MethodPost, "/v1/check?format=markdown", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "| error | MISSING_FIELD | fieldA |")
}

func TestCheck_BadRequest(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/check", "application/json", `{"sets":{"A":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/check", "application/json", `{"sets":{},"extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
