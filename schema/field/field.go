package field

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/syssam/schemavalidations/schema/index"
)

// A Type is the logical datatype of a column, resolved once from the
// database-specific storage type.
type Type uint8

// List of logical column types.
const (
	TypeOther Type = iota
	TypeInteger
	TypeDecimal
	TypeFloat
	TypeString
	TypeBool
	TypeEnum
	endTypes
)

var typeNames = [...]string{
	TypeOther:   "other",
	TypeInteger: "integer",
	TypeDecimal: "decimal",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeBool:    "bool",
	TypeEnum:    "enum",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return "invalid"
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t == TypeInteger || t == TypeDecimal || t == TypeFloat
}

// Descriptor is the column metadata snapshot handed to the rule derivers.
// Derivers never modify it.
type Descriptor struct {
	Name     string
	Type     Type
	Nullable bool
	// HasDefault reports whether the column declares a default value.
	// Default holds the decoded value; a nil Default with HasDefault set
	// describes an expression default (e.g. CURRENT_TIMESTAMP).
	HasDefault bool
	Default    any
	// Size is the declared length limit of textual columns. Zero means
	// no limit.
	Size int
	// Precision and Scale describe decimal columns. A zero Precision means
	// the precision was not declared.
	Precision int
	Scale     int
	// Bytes is the storage width of integer columns. Zero means the
	// platform default (4 bytes).
	Bytes    int
	Unsigned bool
	// IntRange overrides the range computed from Bytes and Unsigned.
	IntRange *IntegerRange
	// Indexes holds the indexes in which this column is the leading column.
	Indexes []*index.Descriptor
	// EnumValues is set for enum-backed columns.
	EnumValues []string
	Comment    string
}

// DefaultIsBlank reports whether the column has a non-nil default value that
// is itself blank.
func (d *Descriptor) DefaultIsBlank() bool {
	return d.HasDefault && d.Default != nil && IsBlank(d.Default)
}

// Range returns the integer range of the column.
func (d *Descriptor) Range() IntegerRange {
	if d.IntRange != nil {
		return *d.IntRange
	}
	return RangeOf(d.Bytes, d.Unsigned)
}

// Unique reports whether a unique index leads with this column.
func (d *Descriptor) Unique() bool {
	return d.uniqueIndex() != nil
}

// UniqueScope returns the other columns of the smallest unique index
// that leads with this column.
func (d *Descriptor) UniqueScope() []string {
	idx := d.uniqueIndex()
	if idx == nil {
		return nil
	}
	scope := make([]string, 0, len(idx.Columns)-1)
	for _, c := range idx.Columns {
		if c != d.Name {
			scope = append(scope, c)
		}
	}
	return scope
}

// CaseInsensitiveUnique reports whether a unique index over exactly the
// column and the given scope is declared case-insensitive.
func (d *Descriptor) CaseInsensitiveUnique(scope []string) bool {
	want := append(append([]string(nil), scope...), d.Name)
	for _, idx := range d.Indexes {
		if idx.Unique && idx.CaseInsensitive() && idx.Covers(want) {
			return true
		}
	}
	return false
}

func (d *Descriptor) uniqueIndex() *index.Descriptor {
	var u *index.Descriptor
	for _, idx := range d.Indexes {
		if !idx.Unique || !idx.Leads(d.Name) {
			continue
		}
		if u == nil || len(idx.Columns) < len(u.Columns) {
			u = idx
		}
	}
	return u
}

// String implements the fmt.Stringer interface.
func (d *Descriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.Name, d.Type)
	switch {
	case d.Type == TypeString && d.Size > 0:
		fmt.Fprintf(&b, "(%d)", d.Size)
	case d.Type == TypeDecimal && d.Precision > 0:
		fmt.Fprintf(&b, "(%d,%d)", d.Precision, d.Scale)
	}
	if !d.Nullable {
		b.WriteString(" NOT NULL")
	}
	if d.HasDefault {
		fmt.Fprintf(&b, " DEFAULT %v", d.Default)
	}
	return b.String()
}

// IsBlank reports whether v is a blank value: nil, false, a string made of
// whitespace only, or an empty collection.
func IsBlank(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	case []byte:
		return len(v) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil() || IsBlank(rv.Elem().Interface())
	}
	return false
}
