// Package spec builds the canonical field tree of a tabular message
// specification.
//
// The builder makes one forward pass over ordered rows. Each row is
// classified on its own (group marker, occurrence marker, container
// open, scalar), named through the naming package, and attached under
// an explicit stack of open containers kept per message scope. A
// container is reclassified from Composite to Repeated only when it is
// popped, after all of its children are known.
//
// Key types:
//   - Row: one input row as delivered by a row source
//   - FieldDescriptor: one node of the tree
//   - SpecTree: the shared header, request, and response scopes
//   - StructuralError: every fatal build or layout defect
//
// A tree is never mutated after Build returns and may be read from any
// number of goroutines.
package spec
