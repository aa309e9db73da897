package mixin

import (
	"github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
)

// Mixin is a reusable set of columns and indexes.
type Mixin interface {
	Columns() []*field.Builder
	Indexes() []*index.Builder
}

// Schema is the default implementation for the Mixin interface.
// It should be embedded in all custom mixin definitions.
type Schema struct{}

// Columns returns the columns of the mixin.
func (Schema) Columns() []*field.Builder { return nil }

// Indexes returns the indexes of the mixin.
func (Schema) Indexes() []*index.Builder { return nil }

var _ Mixin = (*Schema)(nil)

// Apply returns an entity option adding the columns and indexes of the
// given mixins, in order.
func Apply(mixins ...Mixin) schema.Option {
	return func(e *schema.Entity) {
		for _, m := range mixins {
			for _, c := range m.Columns() {
				e.Columns = append(e.Columns, c.Descriptor())
			}
			for _, idx := range m.Indexes() {
				e.Indexes = append(e.Indexes, idx.Descriptor())
			}
		}
	}
}

// Time adds the created_at and updated_at timestamp columns, NOT NULL
// with a database-side default.
type Time struct {
	Schema
}

// Columns returns the timestamp columns.
func (Time) Columns() []*field.Builder {
	return append(CreateTime{}.Columns(), UpdateTime{}.Columns()...)
}

// CreateTime adds only the created_at timestamp column.
type CreateTime struct {
	Schema
}

// Columns returns the created_at column.
func (CreateTime) Columns() []*field.Builder {
	return []*field.Builder{
		field.Other("created_at").
			NotNull().
			Default(nil).
			Comment("Timestamp when the record was created"),
	}
}

// UpdateTime adds only the updated_at timestamp column.
type UpdateTime struct {
	Schema
}

// Columns returns the updated_at column.
func (UpdateTime) Columns() []*field.Builder {
	return []*field.Builder{
		field.Other("updated_at").
			NotNull().
			Default(nil).
			Comment("Timestamp when the record was last updated"),
	}
}

// SoftDelete adds a nullable deleted_at column.
type SoftDelete struct {
	Schema
}

// Columns returns the soft delete column.
func (SoftDelete) Columns() []*field.Builder {
	return []*field.Builder{
		field.Other("deleted_at").
			Comment("Timestamp when the record was soft deleted (NULL means not deleted)"),
	}
}

// TimeSoftDelete combines the Time and SoftDelete mixins.
type TimeSoftDelete struct {
	Schema
}

// Columns returns all timestamp and soft delete columns.
func (TimeSoftDelete) Columns() []*field.Builder {
	return append(Time{}.Columns(), SoftDelete{}.Columns()...)
}

// Tenant adds a NOT NULL tenant_id column, and indexes it.
type Tenant struct {
	Schema
}

// Columns returns the tenant column.
func (Tenant) Columns() []*field.Builder {
	return []*field.Builder{
		field.Int("tenant_id").Bytes(8).NotNull(),
	}
}

// Indexes returns the tenant index.
func (Tenant) Indexes() []*index.Builder {
	return []*index.Builder{
		index.Columns("tenant_id"),
	}
}
