package spec

import (
	"specgen/internal/common"
)

// Shape is the structural kind of a field descriptor.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeComposite
	ShapeRepeated
)

// String returns the shape name used in serialized trees.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "Scalar"
	case ShapeComposite:
		return "Composite"
	case ShapeRepeated:
		return "Repeated"
	default:
		return common.UnknownStr
	}
}

// Optionality marks whether a field must be present.
type Optionality int

const (
	Optional Optionality = iota
	Mandatory
)

// String returns the optionality name used in serialized trees.
func (o Optionality) String() string {
	switch o {
	case Mandatory:
		return "mandatory"
	case Optional:
		return "optional"
	default:
		return common.UnknownStr
	}
}

// Provenance locates a row in the input for diagnostics.
type Provenance struct {
	Section string
	Row     int
}

// OccurrenceRange is the min..max repetition bound of a field.
type OccurrenceRange struct {
	Min int
	Max int
}

// FieldDescriptor is one node of the spec tree.
type FieldDescriptor struct {
	OriginalLabel      string           // raw row label
	NormalizedName     string           // identifier; empty only for transitory markers
	ContainerClassName *string          // set only when Shape != ShapeScalar
	NestingLevel       int              // 1-based declaration level
	Length             *int             // byte length, required on scalar leaves at layout time
	SemanticType       *string          // opaque type tag
	Optionality        Optionality      // mandatory or optional
	DefaultValue       *string          // default when absent
	HardCodedValue     *string          // fixed wire value
	GroupTag           *string          // only on group markers
	Occurrence         *OccurrenceRange // repetition bound
	Shape              Shape            // scalar, composite, repeated
	IsTransitory       bool             // wire-only marker row
	Children           []*FieldDescriptor
	Provenance         Provenance
}

// IsContainer reports whether d can hold children.
func (d *FieldDescriptor) IsContainer() bool {
	return d.Shape != ShapeScalar
}

// ScopeName identifies one of the three message scopes.
type ScopeName string

const (
	ScopeSharedHeader ScopeName = "sharedHeader"
	ScopeRequest      ScopeName = "request"
	ScopeResponse     ScopeName = "response"
)

// AllScopes lists the scopes in their fixed serialization order.
var AllScopes = []ScopeName{ScopeSharedHeader, ScopeRequest, ScopeResponse}

// Scope is one named, ordered list of root descriptors.
type Scope struct {
	Name   ScopeName
	Fields []*FieldDescriptor
}

// SpecTree is the canonical field tree. It is read-only once built.
type SpecTree struct {
	SharedHeader []*FieldDescriptor
	Request      []*FieldDescriptor
	Response     []*FieldDescriptor
}

// Scope returns the root descriptors of the named scope.
func (t *SpecTree) Scope(name ScopeName) []*FieldDescriptor {
	switch name {
	case ScopeSharedHeader:
		return t.SharedHeader
	case ScopeRequest:
		return t.Request
	case ScopeResponse:
		return t.Response
	default:
		return nil
	}
}

// Scopes returns all three scopes in fixed order.
func (t *SpecTree) Scopes() []Scope {
	out := make([]Scope, 0, len(AllScopes))
	for _, name := range AllScopes {
		out = append(out, Scope{Name: name, Fields: t.Scope(name)})
	}

	return out
}

// Row is one input row as delivered by a row source.
// Optional text columns are empty when absent.
type Row struct {
	Level            int
	RawLabel         string
	SecondaryText    string // description, or marker value on marker rows
	LengthText       string
	SemanticTypeText string
	OptionalityText  string
	DefaultText      string
	HardCodedText    string
	Provenance       Provenance
}
