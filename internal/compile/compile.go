// Package compile runs the spec pipeline: rows to tree to layout tables.
package compile

import (
	"fmt"

	"specgen/internal/diagnostic"
	"specgen/internal/layout"
	"specgen/internal/spec"
)

// Options selects the pipeline stages.
type Options struct {
	Build spec.BuildConfig
	// Layout computes offset tables after building.
	Layout bool
	// Limits bounds repetition expansion during layout.
	Limits layout.Limits
	// WholeTreeDuplicates adds warnings for names repeated anywhere
	// in a scope, not just among siblings.
	WholeTreeDuplicates bool
}

// DefaultOptions builds and lays out with default settings.
func DefaultOptions() Options {
	return Options{Build: spec.DefaultBuildConfig(), Layout: true, Limits: layout.DefaultLimits()}
}

// Result holds everything one run produced.
type Result struct {
	Tree        *spec.SpecTree
	Tables      []*layout.Table
	Diagnostics diagnostic.Diagnostics
}

// Run compiles rows. The first structural error aborts the run; warnings
// collected so far are still returned alongside it.
func Run(rows []spec.Row, opts Options) (*Result, error) {
	tree, diags, err := spec.Build(rows, opts.Build)
	if err != nil {
		return &Result{Diagnostics: diags}, fmt.Errorf("build: %w", err)
	}

	res := &Result{Tree: tree, Diagnostics: diags}

	if opts.WholeTreeDuplicates {
		res.Diagnostics.Merge(spec.FindDuplicates(tree, spec.WholeTree))
	}

	if !opts.Layout {
		return res, nil
	}

	tables, err := opts.Limits.CalculateTree(tree)
	if err != nil {
		return res, fmt.Errorf("layout: %w", err)
	}

	res.Tables = tables

	return res, nil
}

// Table returns the layout of scope, or nil when it was not computed.
func (r *Result) Table(scope spec.ScopeName) *layout.Table {
	for _, t := range r.Tables {
		if t.ScopeName == string(scope) {
			return t
		}
	}

	return nil
}
