package consistency

import (
	"fmt"
	"slices"
	"strings"

	"specgen/internal/common"
	"specgen/internal/diagnostic"
	"specgen/internal/naming"
	"specgen/internal/spec"
)

const (
	suggestionThreshold = 0.75
	suggestionLimit     = 3
)

// FieldRecord is the minimal description of one field in one artifact.
type FieldRecord struct {
	Path     string     `json:"path" yaml:"path"`
	Type     string     `json:"type" yaml:"type"`
	Shape    spec.Shape `json:"shape" yaml:"shape"`
	Required bool       `json:"required" yaml:"required"`
}

// Options tunes a Check call.
type Options struct {
	// Ignore lists paths to skip. Ignoring a path also ignores its subtree.
	Ignore []string
	// Strict turns TYPE_UNKNOWN into an error.
	Strict bool
	// Types resolves type equivalence; the zero value uses the defaults.
	Types TypeTable
}

// Check compares the descriptor sets of every artifact and returns all issues.
func Check(sets map[string][]FieldRecord, opts Options) Result {
	c := newChecker(sets, opts)

	res := Result{Artifacts: c.artifacts, Issues: []Issue{}}

	for _, path := range c.paths() {
		if issue, ok := c.checkPath(path); ok {
			res.Issues = append(res.Issues, issue)
		}
	}

	return res
}

type checker struct {
	opts      Options
	artifacts []string
	index     map[string]map[string]FieldRecord
}

func newChecker(sets map[string][]FieldRecord, opts Options) *checker {
	c := &checker{
		opts:      opts,
		artifacts: common.SortedKeys(sets),
		index:     make(map[string]map[string]FieldRecord, len(sets)),
	}

	for name, records := range sets {
		byPath := make(map[string]FieldRecord, len(records))

		for _, r := range records {
			if _, dup := byPath[r.Path]; !dup {
				byPath[r.Path] = r
			}
		}

		c.index[name] = byPath
	}

	return c
}

// paths returns the sorted union of checkable paths.
func (c *checker) paths() []string {
	union := map[string]struct{}{}

	for _, byPath := range c.index {
		for p := range byPath {
			if c.excluded(p) {
				continue
			}

			union[p] = struct{}{}
		}
	}

	return common.SortedKeys(union)
}

func (c *checker) excluded(path string) bool {
	if spec.IsMarkerName(spec.FirstSegment(path)) {
		return true
	}

	for _, ig := range c.opts.Ignore {
		if path == ig || strings.HasPrefix(path, ig+".") || strings.HasPrefix(path, ig+"[") {
			return true
		}
	}

	return false
}

func (c *checker) checkPath(path string) (Issue, bool) {
	var present, absent []string

	for _, a := range c.artifacts {
		if _, ok := c.index[a][path]; ok {
			present = append(present, a)
		} else {
			absent = append(absent, a)
		}
	}

	if len(absent) > 0 {
		return Issue{
			Category:    MissingField,
			Severity:    diagnostic.SeverityError,
			FieldPath:   path,
			Message:     fmt.Sprintf("missing from %s (present in %s)", strings.Join(absent, ", "), strings.Join(present, ", ")),
			Suggestions: c.suggest(path, absent),
		}, true
	}

	if issue, ok := c.checkShape(path); ok {
		return issue, true
	}

	return c.checkType(path)
}

func (c *checker) checkShape(path string) (Issue, bool) {
	first := c.index[c.artifacts[0]][path].Shape

	for _, a := range c.artifacts[1:] {
		if c.index[a][path].Shape != first {
			return Issue{
				Category:  StructureMismatch,
				Severity:  diagnostic.SeverityError,
				FieldPath: path,
				Message:   "shape differs: " + c.describe(path, func(r FieldRecord) string { return r.Shape.String() }),
			}, true
		}
	}

	return Issue{}, false
}

// checkType compares canonical kinds. Blank types carry no information and
// are skipped. Two known kinds that differ are a mismatch regardless of any
// unrecognized type on the same path.
func (c *checker) checkType(path string) (Issue, bool) {
	var known, unknown []string

	for _, a := range c.artifacts {
		typeName := c.index[a][path].Type
		if strings.TrimSpace(typeName) == "" {
			continue
		}

		kind, ok := c.opts.Types.Canonical(typeName)
		if ok {
			known = append(known, kind)
		} else {
			unknown = append(unknown, kind)
		}
	}

	typeOf := func(r FieldRecord) string { return r.Type }

	slices.Sort(known)
	known = slices.Compact(known)

	if len(known) > 1 {
		return Issue{
			Category:  TypeMismatch,
			Severity:  diagnostic.SeverityError,
			FieldPath: path,
			Message:   "type differs: " + c.describe(path, typeOf),
		}, true
	}

	all := append(slices.Clone(known), unknown...)
	slices.Sort(all)

	if len(unknown) == 0 || len(slices.Compact(all)) <= 1 {
		return Issue{}, false
	}

	severity := diagnostic.SeverityWarning
	if c.opts.Strict {
		severity = diagnostic.SeverityError
	}

	return Issue{
		Category:  TypeUnknown,
		Severity:  severity,
		FieldPath: path,
		Message:   "unrecognized type in comparison: " + c.describe(path, typeOf),
	}, true
}

// describe renders "a=x, b=y" across artifacts in sorted order.
func (c *checker) describe(path string, field func(FieldRecord) string) string {
	parts := make([]string, 0, len(c.artifacts))
	for _, a := range c.artifacts {
		parts = append(parts, a+"="+field(c.index[a][path]))
	}

	return strings.Join(parts, ", ")
}

// suggest proposes near-miss paths that the lacking artifacts do have.
func (c *checker) suggest(path string, absent []string) []string {
	var candidates []string

	for _, a := range absent {
		for p := range c.index[a] {
			if !c.excluded(p) {
				candidates = append(candidates, p)
			}
		}
	}

	slices.Sort(candidates)

	return naming.Suggest(path, slices.Compact(candidates), suggestionThreshold, suggestionLimit)
}
