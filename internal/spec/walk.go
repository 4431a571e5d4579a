package spec

// Visitor is called for every descriptor in pre-order.
// Returning false skips the descriptor's children.
type Visitor func(path FieldPath, d *FieldDescriptor) bool

// Walk visits roots and their descendants in pre-order, siblings in
// declared order. Paths use "[]" on repeated containers.
func Walk(roots []*FieldDescriptor, visit Visitor) {
	walk(FieldPath{}, roots, visit)
}

func walk(parent FieldPath, nodes []*FieldDescriptor, visit Visitor) {
	for _, d := range nodes {
		path := parent.Field(d.NormalizedName)
		if !visit(path, d) {
			continue
		}

		if d.Shape == ShapeRepeated {
			path = path.Repeated()
		}

		walk(path, d.Children, visit)
	}
}

// Count returns the number of descriptors in roots, markers included.
func Count(roots []*FieldDescriptor) int {
	n := 0

	Walk(roots, func(FieldPath, *FieldDescriptor) bool {
		n++
		return true
	})

	return n
}
