// Package diagnostic provides structured warnings, errors, and
// informational notes shared by the spec builder, the layout pass,
// and the consistency checker.
//
// Key capabilities:
//   - Non-fatal build warnings (nesting depth overage)
//   - Duplicate-name reports from the tree folds
//   - Consistency issues rendered as errors or warnings
//   - Suggestions for likely misspelled field paths
package diagnostic
