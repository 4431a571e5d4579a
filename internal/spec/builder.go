package spec

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"specgen/internal/common"
	"specgen/internal/diagnostic"
)

// Diagnostic codes emitted by the builder.
const (
	CodeDepthExceeded = "depth_exceeded"
)

// Build builds a spec tree from an ordered row slice.
// See BuildSeq.
func Build(rows []Row, cfg BuildConfig) (*SpecTree, diagnostic.Diagnostics, error) {
	return BuildSeq(slices.Values(rows), cfg)
}

// BuildSeq builds a spec tree in a single forward pass over rows.
//
// The first fatal defect stops the pass and no tree is returned.
// Non-fatal findings (nesting deeper than cfg.MaxDepth) are returned as
// warnings alongside the tree.
func BuildSeq(rows iter.Seq[Row], cfg BuildConfig) (*SpecTree, diagnostic.Diagnostics, error) {
	b := &builder{
		cfg:    cfg,
		scopes: make(map[ScopeName]*scopeState, len(AllScopes)),
	}

	for _, name := range AllScopes {
		b.scopes[name] = &scopeState{}
	}

	for row := range rows {
		if err := b.add(row); err != nil {
			return nil, diagnostic.Diagnostics{}, err
		}
	}

	tree := &SpecTree{}

	for _, name := range AllScopes {
		st := b.scopes[name]
		st.closeAbove(0)

		switch name {
		case ScopeSharedHeader:
			tree.SharedHeader = st.roots
		case ScopeRequest:
			tree.Request = st.roots
		case ScopeResponse:
			tree.Response = st.roots
		}
	}

	return tree, b.diags, nil
}

type builder struct {
	cfg    BuildConfig
	scopes map[ScopeName]*scopeState
	diags  diagnostic.Diagnostics
}

// scopeState is the open-container stack of one scope.
// stack[i] always sits at nesting level i+1.
type scopeState struct {
	roots []*FieldDescriptor
	stack []*FieldDescriptor
}

func (b *builder) add(row Row) error {
	scopeName, ok := b.cfg.ResolveScope(row.Provenance.Section)
	if !ok {
		return newError(UnknownSection, row.Provenance, "",
			fmt.Sprintf("section %q does not map to a message scope", row.Provenance.Section))
	}

	st := b.scopes[scopeName]

	depth := len(st.stack)
	if row.Level < 1 || row.Level > depth+1 {
		return newError(InvalidLevelJump, row.Provenance, "",
			fmt.Sprintf("level %d after open depth %d", row.Level, depth))
	}

	if row.Level > b.cfg.maxDepth() {
		b.diags.Addf(diagnostic.SeverityWarning, CodeDepthExceeded, string(scopeName), strings.TrimSpace(row.RawLabel),
			"%s: level %d exceeds max depth %d", row.Provenance, row.Level, b.cfg.maxDepth())
	}

	st.closeAbove(row.Level)

	cls, err := Classify(row)
	if err != nil {
		return err
	}

	desc, err := b.describe(row, cls)
	if err != nil {
		return err
	}

	if err := st.attach(desc); err != nil {
		return err
	}

	if cls.Kind == RowContainerOpen {
		st.stack = append(st.stack, desc)
	}

	return nil
}

// describe turns a classified row into a fresh descriptor.
func (b *builder) describe(row Row, cls Classification) (*FieldDescriptor, error) {
	label := strings.TrimSpace(row.RawLabel)

	desc := &FieldDescriptor{
		OriginalLabel:  row.RawLabel,
		NestingLevel:   row.Level,
		Length:         parseLength(row.LengthText),
		SemanticType:   optionalText(row.SemanticTypeText),
		Optionality:    ParseOptionality(row.OptionalityText),
		DefaultValue:   optionalText(row.DefaultText),
		HardCodedValue: optionalText(row.HardCodedText),
		Shape:          ShapeScalar,
		Provenance:     row.Provenance,
	}

	switch cls.Kind {
	case RowGroupMarker:
		desc.NormalizedName = b.cfg.Naming.Normalize(label)
		desc.IsTransitory = true
		desc.GroupTag = &cls.Value

	case RowOccurrenceMarker:
		rng, err := ParseOccurrence(cls.Value)
		if err != nil {
			return nil, newError(InvalidOccurrenceFormat, row.Provenance, "", err.Error())
		}

		desc.NormalizedName = b.cfg.Naming.Normalize(label)
		desc.IsTransitory = true
		desc.Occurrence = &rng

	case RowContainerOpen:
		class := cls.ClassName
		desc.NormalizedName = b.cfg.Naming.Normalize(cls.ChildName)
		desc.ContainerClassName = &class
		desc.Shape = ShapeComposite

	default:
		desc.NormalizedName = b.cfg.Naming.Normalize(label)
	}

	if !desc.IsTransitory && desc.NormalizedName == "" {
		return nil, newError(EmptyFieldName, row.Provenance, "",
			fmt.Sprintf("label %q normalizes to an empty identifier", row.RawLabel))
	}

	return desc, nil
}

// attach adds desc under the current parent and enforces sibling name uniqueness.
func (st *scopeState) attach(desc *FieldDescriptor) error {
	siblings := &st.roots
	if top := len(st.stack); top > 0 {
		siblings = &st.stack[top-1].Children
	}

	if !desc.IsTransitory {
		for _, sib := range *siblings {
			if sib.IsTransitory || sib.NormalizedName != desc.NormalizedName {
				continue
			}

			prev := sib.Provenance

			return &StructuralError{
				Kind:       DuplicateFieldName,
				Provenance: desc.Provenance,
				Name:       desc.NormalizedName,
				Conflict:   &prev,
				Detail: fmt.Sprintf("labels %q and %q normalize to the same name",
					sib.OriginalLabel, desc.OriginalLabel),
			}
		}
	}

	*siblings = append(*siblings, desc)

	return nil
}

// closeAbove pops every open container at or deeper than level.
func (st *scopeState) closeAbove(level int) {
	for {
		top, ok := common.Last(st.stack)
		if !ok || top.NestingLevel < level {
			return
		}

		st.stack = st.stack[:len(st.stack)-1]
		closeContainer(top)
	}
}

// closeContainer settles the shape of a container whose children are final.
// Any occurrence marker child with max > 1 makes it Repeated and supplies
// the range; otherwise the first marker's range is kept.
func closeContainer(d *FieldDescriptor) {
	var first *OccurrenceRange

	for _, child := range d.Children {
		if !child.IsTransitory || child.Occurrence == nil {
			continue
		}

		rng := *child.Occurrence
		if rng.Max > 1 {
			d.Occurrence = &rng
			d.Shape = ShapeRepeated

			return
		}

		if first == nil {
			first = &rng
		}
	}

	if first != nil {
		d.Occurrence = first
	}
}

// parseLength reads the leading integer of a length cell ("15", "15,2").
// Anything unreadable leaves the length unset.
func parseLength(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	end := 0
	for end < len(text) && (text[end] >= '0' && text[end] <= '9' || end == 0 && text[end] == '-') {
		end++
	}

	n, err := strconv.Atoi(text[:end])
	if err != nil {
		return nil
	}

	return &n
}

func optionalText(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	return &text
}

// ParseOptionality reads an optionality cell. Blank or unrecognized text is optional.
func ParseOptionality(text string) Optionality {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "m", "y", "yes", "mandatory", "required", "true", "1", "必填", "必输", "是":
		return Mandatory
	default:
		return Optional
	}
}
