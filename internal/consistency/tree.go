package consistency

import (
	"specgen/internal/spec"
)

// FromTree derives the wire-side descriptor set of one scope.
// Transitory markers are skipped; fields under repeated containers use "[]".
func FromTree(tree *spec.SpecTree, scope spec.ScopeName) []FieldRecord {
	var out []FieldRecord

	spec.Walk(tree.Scope(scope), func(path spec.FieldPath, d *spec.FieldDescriptor) bool {
		if d.IsTransitory {
			return false
		}

		rec := FieldRecord{
			Path:     path.String(),
			Shape:    d.Shape,
			Required: d.Optionality == spec.Mandatory,
		}

		if d.SemanticType != nil && d.Shape == spec.ShapeScalar {
			rec.Type = *d.SemanticType
		}

		out = append(out, rec)

		return true
	})

	return out
}
