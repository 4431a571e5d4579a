package consistency

import (
	"strings"
)

// Canonical type kinds shared across artifacts.
const (
	KindString   = "string"
	KindDecimal  = "decimal"
	KindInteger  = "integer"
	KindDate     = "date"
	KindDateTime = "datetime"
	KindTime     = "time"
	KindBoolean  = "boolean"
	KindBinary   = "binary"
	KindObject   = "object"
	KindArray    = "array"
)

// defaultEquivalences maps artifact type spellings to canonical kinds.
// Keys are lowercase with any package qualifier removed.
var defaultEquivalences = map[string]string{
	"text": KindString, "string": KindString, "str": KindString, "varchar": KindString,
	"varchar2": KindString, "nvarchar": KindString, "char": KindString, "character": KindString,
	"alphanumeric": KindString, "an": KindString,

	"amount": KindDecimal, "decimal": KindDecimal, "bigdecimal": KindDecimal, "numeric": KindDecimal,
	"money": KindDecimal, "number": KindDecimal, "double": KindDecimal, "float": KindDecimal,

	"integer": KindInteger, "int": KindInteger, "long": KindInteger, "short": KindInteger,
	"int32": KindInteger, "int64": KindInteger, "biginteger": KindInteger,
	"unsigned-integer": KindInteger, "unsigned": KindInteger, "uint": KindInteger, "n": KindInteger,

	"date": KindDate, "localdate": KindDate,
	"datetime": KindDateTime, "date-time": KindDateTime, "timestamp": KindDateTime, "localdatetime": KindDateTime,
	"time": KindTime, "localtime": KindTime,

	"boolean": KindBoolean, "bool": KindBoolean,
	"binary": KindBinary, "bytes": KindBinary, "byte[]": KindBinary, "base64": KindBinary,

	"object": KindObject, "map": KindObject,
	"array": KindArray, "list": KindArray,
}

// TypeTable resolves artifact type names to canonical kinds.
type TypeTable struct {
	kinds map[string]string
}

// NewTypeTable returns the default table extended with extra spellings.
// Extra entries override defaults.
func NewTypeTable(extra map[string]string) TypeTable {
	kinds := make(map[string]string, len(defaultEquivalences)+len(extra))
	for k, v := range defaultEquivalences {
		kinds[k] = v
	}

	for k, v := range extra {
		kinds[typeKey(k)] = strings.ToLower(strings.TrimSpace(v))
	}

	return TypeTable{kinds: kinds}
}

// Canonical returns the kind of typeName and whether it is known.
func (t TypeTable) Canonical(typeName string) (string, bool) {
	key := typeKey(typeName)

	kinds := t.kinds
	if kinds == nil {
		kinds = defaultEquivalences
	}

	kind, ok := kinds[key]
	if !ok {
		return key, false
	}

	return kind, true
}

// typeKey lowercases a type name and drops a package qualifier
// ("java.math.BigDecimal" -> "bigdecimal").
func typeKey(typeName string) string {
	key := strings.ToLower(strings.TrimSpace(typeName))
	if i := strings.LastIndexByte(key, '.'); i >= 0 && i < len(key)-1 {
		key = key[i+1:]
	}

	return key
}
