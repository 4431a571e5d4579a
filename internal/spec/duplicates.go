package spec

import (
	"specgen/internal/diagnostic"
)

// DuplicateStrategy selects how far a duplicate-name search looks.
type DuplicateStrategy int

const (
	// ScopeLocal compares siblings only; this is what Build enforces.
	ScopeLocal DuplicateStrategy = iota
	// WholeTree compares every non-transitory name within a message scope.
	WholeTree
)

// CodeDuplicateName is the diagnostic code for duplicate findings.
const CodeDuplicateName = "duplicate_name"

// FindDuplicates reports repeated normalized names in tree. Transitory
// markers never count. Each call returns a fresh result.
func FindDuplicates(tree *SpecTree, strategy DuplicateStrategy) diagnostic.Diagnostics {
	var out diagnostic.Diagnostics

	for _, scope := range tree.Scopes() {
		switch strategy {
		case WholeTree:
			seen := map[string]FieldPath{}
			Walk(scope.Fields, func(path FieldPath, d *FieldDescriptor) bool {
				if d.IsTransitory {
					return true
				}

				if first, ok := seen[d.NormalizedName]; ok {
					out.Addf(diagnostic.SeverityWarning, CodeDuplicateName, string(scope.Name), path.String(),
						"%q also declared at %s", d.NormalizedName, first)
				} else {
					seen[d.NormalizedName] = path
				}

				return true
			})

		default:
			foldSiblings(FieldPath{}, scope.Fields, string(scope.Name), &out)
		}
	}

	return out
}

func foldSiblings(parent FieldPath, nodes []*FieldDescriptor, scope string, out *diagnostic.Diagnostics) {
	seen := map[string]*FieldDescriptor{}

	for _, d := range nodes {
		path := parent.Field(d.NormalizedName)

		if !d.IsTransitory {
			if first, ok := seen[d.NormalizedName]; ok {
				out.Addf(diagnostic.SeverityError, CodeDuplicateName, scope, path.String(),
					"%q duplicates %s", d.NormalizedName, first.Provenance)
			} else {
				seen[d.NormalizedName] = d
			}
		}

		foldSiblings(path, d.Children, scope, out)
	}
}
