package field

import "github.com/syssam/schemavalidations/schema/index"

// Builder is a fluent builder of column descriptors.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t, Nullable: true}}
}

// Int returns a new integer column builder.
func Int(name string) *Builder { return newBuilder(name, TypeInteger) }

// Decimal returns a new decimal column builder with the given precision and scale.
// A zero precision describes an unconstrained decimal.
func Decimal(name string, precision, scale int) *Builder {
	b := newBuilder(name, TypeDecimal)
	b.desc.Precision = precision
	b.desc.Scale = scale
	return b
}

// Float returns a new floating-point column builder.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// String returns a new string column builder.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text returns a new text column builder. It is a String without a size.
func Text(name string) *Builder { return newBuilder(name, TypeString) }

// Bool returns a new boolean column builder.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Enum returns a new builder of an enum-backed column.
func Enum(name string, values ...string) *Builder {
	b := newBuilder(name, TypeEnum)
	b.desc.EnumValues = values
	return b
}

// Other returns a new builder for a column with no datatype rules
// (timestamps, binary, JSON, etc).
func Other(name string) *Builder { return newBuilder(name, TypeOther) }

// NotNull marks the column as NOT NULL.
func (b *Builder) NotNull() *Builder {
	b.desc.Nullable = false
	return b
}

// Default sets the default value of the column. A nil value describes
// an expression default.
func (b *Builder) Default(v any) *Builder {
	b.desc.HasDefault = true
	b.desc.Default = v
	return b
}

// Size sets the length limit of a string column.
func (b *Builder) Size(n int) *Builder {
	b.desc.Size = n
	return b
}

// Bytes sets the storage width of an integer column.
func (b *Builder) Bytes(n int) *Builder {
	b.desc.Bytes = n
	return b
}

// Unsigned marks an integer column as unsigned.
func (b *Builder) Unsigned() *Builder {
	b.desc.Unsigned = true
	return b
}

// Range overrides the integer range of the column.
func (b *Builder) Range(r *IntegerRange) *Builder {
	b.desc.IntRange = r
	return b
}

// Unique adds a unique index leading with this column, scoped by the
// given columns.
func (b *Builder) Unique(scope ...string) *Builder {
	b.desc.Indexes = append(b.desc.Indexes, index.Columns(append([]string{b.desc.Name}, scope...)...).Unique().Descriptor())
	return b
}

// Comment sets the comment of the column.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the column descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
