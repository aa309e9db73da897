package edge

import "github.com/go-openapi/inflect"

// Descriptor holds the metadata of a belongs-to association.
type Descriptor struct {
	// Name is the association name, the field identity of the rules
	// derived from it.
	Name string
	// Type is the name of the referenced entity.
	Type string
	// Field is the foreign-key column backing the association.
	Field string
}

// Builder for belongs-to associations.
type Builder struct {
	desc *Descriptor
}

// BelongsTo returns a builder of a belongs-to association. The foreign key
// defaults to "<name>_id" and the referenced type to the camelized name.
func BelongsTo(name string) *Builder {
	return &Builder{desc: &Descriptor{
		Name:  name,
		Type:  inflect.Camelize(name),
		Field: inflect.ForeignKey(name),
	}}
}

// Field sets the foreign-key column of the association.
func (b *Builder) Field(column string) *Builder {
	b.desc.Field = column
	return b
}

// Type sets the name of the referenced entity.
func (b *Builder) Type(name string) *Builder {
	b.desc.Type = name
	return b
}

// Descriptor returns the association descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
