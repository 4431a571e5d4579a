package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"specgen/internal/compile"
	"specgen/internal/consistency"
	"specgen/internal/diagnostic"
	"specgen/internal/layout"
	"specgen/internal/report"
	"specgen/internal/rowsource"
	"specgen/internal/spec"
)

// handleBuild compiles rows into the canonical tree document.
// ?format=yaml returns YAML instead of JSON.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compile(w, r, false)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "yaml" {
		data, err := spec.MarshalCanonical(res.Tree)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)

		return
	}

	data, err := spec.MarshalCanonicalJSON(res.Tree)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

type layoutResponse struct {
	Tables   []*layout.Table         `json:"tables"`
	Warnings []diagnostic.Diagnostic `json:"warnings"`
}

// handleLayout compiles rows and returns offset tables.
// ?format=markdown or ?format=html renders the report instead.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	res, ok := s.compile(w, r, true)
	if !ok {
		return
	}

	switch r.URL.Query().Get("format") {
	case "markdown", "html":
		md, err := report.Layout(res.Tables, res.Diagnostics)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeReport(w, r, md)

	default:
		warnings := res.Diagnostics.Warnings
		if warnings == nil {
			warnings = []diagnostic.Diagnostic{}
		}

		writeJSON(w, http.StatusOK, layoutResponse{Tables: res.Tables, Warnings: warnings})
	}
}

type checkRequest struct {
	Sets   map[string][]consistency.FieldRecord `json:"sets"`
	Ignore []string                             `json:"ignore"`
	Strict *bool                                `json:"strict"`
}

type checkResponse struct {
	Artifacts []string            `json:"artifacts"`
	Issues    []consistency.Issue `json:"issues"`
	Failed    bool                `json:"failed"`
}

// handleCheck compares descriptor sets. Request ignore entries extend
// the configured ones; strict overrides the configured mode when present.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid check request: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Sets) < 2 {
		jsonError(w, "at least two descriptor sets are needed for a comparison", http.StatusBadRequest)
		return
	}

	opts := s.cfg.CheckOptions()
	opts.Ignore = append(append([]string{}, opts.Ignore...), req.Ignore...)

	if req.Strict != nil {
		opts.Strict = *req.Strict
	}

	res := consistency.Check(req.Sets, opts)

	s.log.Debug().
		Int("artifacts", len(res.Artifacts)).
		Int("issues", len(res.Issues)).
		Bool("failed", res.Failed()).
		Msg("consistency check")

	switch r.URL.Query().Get("format") {
	case "markdown", "html":
		md, err := report.Issues(res)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeReport(w, r, md)

	default:
		writeJSON(w, http.StatusOK, checkResponse{Artifacts: res.Artifacts, Issues: res.Issues, Failed: res.Failed()})
	}
}

// compile reads rows from the request body and runs the pipeline.
// It writes the error response itself and reports whether to continue.
func (s *Server) compile(w http.ResponseWriter, r *http.Request, withLayout bool) (*compile.Result, bool) {
	rows, err := readRows(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}

		jsonError(w, err.Error(), http.StatusBadRequest)

		return nil, false
	}

	res, err := compile.Run(rows, compile.Options{
		Build:  s.cfg.BuilderConfig(),
		Layout: withLayout,
		Limits: s.cfg.LayoutLimits(),
	})
	if err != nil {
		structuralError(w, err)
		return nil, false
	}

	s.log.Debug().
		Int("rows", len(rows)).
		Int("warnings", len(res.Diagnostics.Warnings)).
		Msg("compiled spec")

	return res, true
}

func readRows(r *http.Request) ([]spec.Row, error) {
	mediaType := "text/csv"

	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("invalid content type: %w", err)
		}

		mediaType = parsed
	}

	switch mediaType {
	case "text/csv", "text/plain":
		return rowsource.ReadCSV(r.Body, rowsource.Options{DefaultSection: r.URL.Query().Get("section")})
	case "application/yaml", "application/x-yaml", "text/yaml":
		return rowsource.ReadYAML(r.Body)
	default:
		return nil, fmt.Errorf("unsupported content type %q", mediaType)
	}
}

func structuralError(w http.ResponseWriter, err error) {
	var se *spec.StructuralError
	if !errors.As(err, &se) {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body := map[string]any{
		"error":   err.Error(),
		"kind":    se.Kind.String(),
		"section": se.Provenance.Section,
		"row":     se.Provenance.Row,
	}

	if se.Name != "" {
		body["field"] = se.Name
	}

	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func writeReport(w http.ResponseWriter, r *http.Request, md []byte) {
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write(md)

		return
	}

	html, err := report.ToHTML(md)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
