// Package index describes database indexes as seen by the rule derivers.
//
//	index.Columns("state", "active").Unique()
//	index.Columns("email").Unique().CaseInsensitive().StorageKey("users_lower_email")
package index

import (
	"slices"
	"strings"
)

// Descriptor holds the index metadata.
type Descriptor struct {
	// StorageKey is the index name in the database.
	StorageKey string
	Columns    []string
	Unique     bool
	// CaseSensitive is nil when the database does not say how the index
	// compares values. Only an explicit false makes it case-insensitive.
	CaseSensitive *bool
}

// CaseInsensitive reports whether the index is declared case-insensitive.
func (d *Descriptor) CaseInsensitive() bool {
	return d.CaseSensitive != nil && !*d.CaseSensitive
}

// Covers reports whether the index is built over exactly the given
// columns, ignoring their order.
func (d *Descriptor) Covers(columns []string) bool {
	if len(columns) != len(d.Columns) {
		return false
	}
	have, want := slices.Clone(d.Columns), slices.Clone(columns)
	slices.Sort(have)
	slices.Sort(want)
	return slices.Equal(have, want)
}

// Leads reports whether column is the first column of the index.
func (d *Descriptor) Leads(column string) bool {
	return len(d.Columns) > 0 && d.Columns[0] == column
}

// String implements the fmt.Stringer interface.
func (d *Descriptor) String() string {
	var b strings.Builder
	if d.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if d.StorageKey != "" {
		b.WriteString(d.StorageKey)
		b.WriteByte(' ')
	}
	b.WriteString("(" + strings.Join(d.Columns, ", ") + ")")
	if d.CaseInsensitive() {
		b.WriteString(" CASE INSENSITIVE")
	}
	return b.String()
}

// Builder for indexes.
type Builder struct {
	desc *Descriptor
}

// Columns creates an index on the given columns, in order.
func Columns(columns ...string) *Builder {
	return &Builder{desc: &Descriptor{Columns: columns}}
}

// Unique sets the index to be a unique index.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// CaseInsensitive declares that the index compares values ignoring case,
// e.g. an index over lower(column).
func (b *Builder) CaseInsensitive() *Builder {
	return b.CaseSensitive(false)
}

// CaseSensitive declares how the index compares values.
func (b *Builder) CaseSensitive(v bool) *Builder {
	b.desc.CaseSensitive = &v
	return b
}

// StorageKey sets the name of the index in the database.
func (b *Builder) StorageKey(key string) *Builder {
	b.desc.StorageKey = key
	return b
}

// Descriptor returns the index descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
