package layout

import (
	"fmt"
	"math"

	"specgen/internal/spec"
)

// Entry is one laid-out leaf.
type Entry struct {
	FieldPath    string `json:"fieldPath" yaml:"fieldPath"`
	StartOffset  int    `json:"startOffset" yaml:"startOffset"`
	Length       int    `json:"length" yaml:"length"`
	NestingLevel int    `json:"nestingLevel" yaml:"nestingLevel"`
}

// End returns the offset just past the entry.
func (e Entry) End() int {
	return e.StartOffset + e.Length
}

// Table is the layout of one message scope.
type Table struct {
	ScopeName   string  `json:"scopeName" yaml:"scopeName"`
	TotalLength int     `json:"totalLength" yaml:"totalLength"`
	Entries     []Entry `json:"entries" yaml:"entries"`
}

// DefaultMaxEntries bounds the entry count of one scope's table.
const DefaultMaxEntries = 100_000

// Limits bounds how far repetitions may expand. A zero MaxEntries means
// no bound.
type Limits struct {
	MaxEntries int
}

// DefaultLimits returns the bounds used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{MaxEntries: DefaultMaxEntries}
}

// Calculate lays out roots without an entry bound. It does not modify the tree.
func Calculate(scopeName string, roots []*spec.FieldDescriptor) (*Table, error) {
	return Limits{}.Calculate(scopeName, roots)
}

// CalculateTree lays out every scope of tree without an entry bound.
func CalculateTree(tree *spec.SpecTree) ([]*Table, error) {
	return Limits{}.CalculateTree(tree)
}

// Calculate lays out roots within l. It does not modify the tree.
func (l Limits) Calculate(scopeName string, roots []*spec.FieldDescriptor) (*Table, error) {
	c := &calculator{table: &Table{ScopeName: scopeName, Entries: []Entry{}}, limits: l}

	if err := c.layout(spec.FieldPath{}, roots); err != nil {
		return nil, err
	}

	c.table.TotalLength = c.offset

	return c.table, nil
}

// CalculateTree lays out every scope of tree in fixed scope order.
func (l Limits) CalculateTree(tree *spec.SpecTree) ([]*Table, error) {
	tables := make([]*Table, 0, len(spec.AllScopes))

	for _, scope := range tree.Scopes() {
		t, err := l.Calculate(string(scope.Name), scope.Fields)
		if err != nil {
			return nil, fmt.Errorf("laying out %s: %w", scope.Name, err)
		}

		tables = append(tables, t)
	}

	return tables, nil
}

type calculator struct {
	table  *Table
	offset int
	limits Limits
}

func (c *calculator) layout(parent spec.FieldPath, nodes []*spec.FieldDescriptor) error {
	for _, d := range nodes {
		if err := c.node(parent.Field(d.NormalizedName), d); err != nil {
			return err
		}
	}

	return nil
}

func (c *calculator) node(path spec.FieldPath, d *spec.FieldDescriptor) error {
	count, err := repetitions(d)
	if err != nil {
		return err
	}

	if count == 0 {
		return nil
	}

	if !d.IsContainer() {
		return c.leaf(path, d)
	}

	entries, offset := len(c.table.Entries), c.offset

	for i := range count {
		p := path
		if count > 1 {
			p = path.Index(i)
		}

		if err := c.layout(p, d.Children); err != nil {
			return err
		}

		if i == 0 && count > 1 {
			if err := c.checkRepeat(d, count-1, len(c.table.Entries)-entries, c.offset-offset); err != nil {
				return err
			}

			// Every repetition lays out the same subtree; an empty one adds nothing.
			if len(c.table.Entries) == entries {
				return nil
			}
		}
	}

	return nil
}

// checkRepeat rejects the remaining repetitions of d up front when they
// would overflow the offset or exceed the entry bound.
func (c *calculator) checkRepeat(d *spec.FieldDescriptor, remaining, entries, length int) error {
	if length > 0 && remaining > (math.MaxInt-c.offset)/length {
		return tooLarge(spec.LengthOverflow, d,
			fmt.Sprintf("%d more repetitions of %d bytes overflow offset %d", remaining, length, c.offset))
	}

	if c.limits.MaxEntries > 0 && entries > 0 &&
		remaining > (c.limits.MaxEntries-len(c.table.Entries))/entries {
		return tooLarge(spec.LayoutTooLarge, d,
			fmt.Sprintf("%d repetitions of %d entries exceed the limit of %d entries",
				remaining+1, entries, c.limits.MaxEntries))
	}

	return nil
}

func tooLarge(kind spec.ErrorKind, d *spec.FieldDescriptor, detail string) *spec.StructuralError {
	return &spec.StructuralError{Kind: kind, Provenance: d.Provenance, Name: d.NormalizedName, Detail: detail}
}

func (c *calculator) leaf(path spec.FieldPath, d *spec.FieldDescriptor) error {
	if d.Length == nil {
		return &spec.StructuralError{
			Kind: spec.MissingLength, Provenance: d.Provenance, Name: d.NormalizedName,
			Detail: "leaf has no length",
		}
	}

	if *d.Length < 0 {
		return &spec.StructuralError{
			Kind: spec.NegativeLength, Provenance: d.Provenance, Name: d.NormalizedName,
			Detail: fmt.Sprintf("length %d", *d.Length),
		}
	}

	if *d.Length > math.MaxInt-c.offset {
		return tooLarge(spec.LengthOverflow, d, fmt.Sprintf("length %d overflows offset %d", *d.Length, c.offset))
	}

	if c.limits.MaxEntries > 0 && len(c.table.Entries) >= c.limits.MaxEntries {
		return tooLarge(spec.LayoutTooLarge, d, fmt.Sprintf("more than %d entries", c.limits.MaxEntries))
	}

	c.table.Entries = append(c.table.Entries, Entry{
		FieldPath:    path.String(),
		StartOffset:  c.offset,
		Length:       *d.Length,
		NestingLevel: d.NestingLevel,
	})
	c.offset += *d.Length

	return nil
}

// repetitions is how many times d is laid out. Markers and scalars appear
// once; containers with an occurrence range appear max times.
func repetitions(d *spec.FieldDescriptor) (int, error) {
	rng := d.Occurrence
	if rng == nil {
		return 1, nil
	}

	if rng.Min < 0 || rng.Max < 0 {
		return 0, &spec.StructuralError{
			Kind: spec.NegativeOccurrence, Provenance: d.Provenance, Name: d.NormalizedName,
			Detail: "occurrence " + rng.String(),
		}
	}

	if d.IsTransitory || !d.IsContainer() {
		return 1, nil
	}

	return rng.Max, nil
}
