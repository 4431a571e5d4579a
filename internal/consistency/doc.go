// Package consistency diffs the field descriptor sets extracted from
// independently generated artifacts and reports where they disagree.
//
// Checks run per field path, in order, stopping at the first finding
// for that path:
//  1. MISSING_FIELD: the path exists in some artifacts but not all
//  2. STRUCTURE_MISMATCH: the artifacts disagree on shape
//  3. TYPE_MISMATCH / TYPE_UNKNOWN: the artifacts disagree on type
//
// Paths are processed in sorted order and every path is checked; the
// checker never stops at the first issue.
package consistency
