package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"specgen/internal/consistency"
	"specgen/internal/diagnostic"
	"specgen/internal/layout"
)

var funcs = template.FuncMap{
	"cell": cell,
	"join": strings.Join,
}

var layoutTemplate = template.Must(template.New("layout").Funcs(funcs).Parse(`# Message layout
{{range .Tables}}
## {{.ScopeName}}

Total length: {{.TotalLength}}
{{if .Entries}}
| Field | Offset | Length | End | Level |
|---|---:|---:|---:|---:|
{{- range .Entries}}
| {{cell .FieldPath}} | {{.StartOffset}} | {{.Length}} | {{.End}} | {{.NestingLevel}} |
{{- end}}
{{else}}
_No fields._
{{end}}{{end}}
{{- if .Warnings}}
## Warnings
{{range .Warnings}}
- {{cell .String}}
{{- end}}
{{end -}}
`))

var issuesTemplate = template.Must(template.New("issues").Funcs(funcs).Parse(`# Consistency report

Artifacts: {{join .Artifacts ", "}}
{{if .Issues}}
| Severity | Category | Field | Message | Suggestions |
|---|---|---|---|---|
{{- range .Issues}}
| {{.Severity}} | {{.Category}} | {{cell .FieldPath}} | {{cell .Message}} | {{cell (join .Suggestions ", ")}} |
{{- end}}

{{.Errors}} error(s), {{.Warnings}} warning(s).
{{else}}
No issues found.
{{end -}}
`))

type layoutData struct {
	Tables   []*layout.Table
	Warnings []diagnostic.Diagnostic
}

type issuesData struct {
	consistency.Result
	Errors   int
	Warnings int
}

// Layout renders offset tables, followed by any build warnings.
func Layout(tables []*layout.Table, diags diagnostic.Diagnostics) ([]byte, error) {
	var buf bytes.Buffer

	err := layoutTemplate.Execute(&buf, layoutData{Tables: tables, Warnings: diags.Warnings})
	if err != nil {
		return nil, fmt.Errorf("rendering layout report: %w", err)
	}

	return buf.Bytes(), nil
}

// Issues renders a consistency result.
func Issues(res consistency.Result) ([]byte, error) {
	d := res.Diagnostics()

	var buf bytes.Buffer

	err := issuesTemplate.Execute(&buf, issuesData{Result: res, Errors: len(d.Errors), Warnings: len(d.Warnings)})
	if err != nil {
		return nil, fmt.Errorf("rendering consistency report: %w", err)
	}

	return buf.Bytes(), nil
}

// cell makes text safe inside a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
