package schema

import (
	"slices"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/schemavalidations/schema/edge"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
)

// Default column names excluded from content columns.
const (
	DefaultPrimaryKey        = "id"
	DefaultInheritanceColumn = "type"
)

// Entity is the schema-backed record type that rules are derived for.
// Its metadata is resolved by the caller and is read-only afterwards.
type Entity struct {
	// Name of the entity. Anonymous entities never get rules.
	Name string
	// Table is the backing table. Empty means the tableized name.
	Table string
	// Abstract entities have no concrete backing table.
	Abstract bool
	// TableExists reports whether the backing table exists in the database.
	TableExists bool
	// Parent is set for subtypes. A subtype stored in its parent's table
	// shares the parent's derived rules.
	Parent *Entity

	PrimaryKey        string
	InheritanceColumn string

	Columns      []*field.Descriptor
	Indexes      []*index.Descriptor
	Associations []*edge.Descriptor
}

// Option configures an Entity built by New.
type Option func(*Entity)

// Columns adds columns to the entity.
func Columns(columns ...*field.Builder) Option {
	return func(e *Entity) {
		for _, c := range columns {
			e.Columns = append(e.Columns, c.Descriptor())
		}
	}
}

// Indexes adds indexes to the entity.
func Indexes(indexes ...*index.Builder) Option {
	return func(e *Entity) {
		for _, idx := range indexes {
			e.Indexes = append(e.Indexes, idx.Descriptor())
		}
	}
}

// BelongsTo adds belongs-to associations to the entity.
func BelongsTo(assocs ...*edge.Builder) Option {
	return func(e *Entity) {
		for _, a := range assocs {
			e.Associations = append(e.Associations, a.Descriptor())
		}
	}
}

// Table sets the backing table name.
func Table(name string) Option {
	return func(e *Entity) { e.Table = name }
}

// Abstract marks the entity as abstract.
func Abstract() Option {
	return func(e *Entity) { e.Abstract = true }
}

// NoTable marks the backing table as missing.
func NoTable() Option {
	return func(e *Entity) { e.TableExists = false }
}

// Inherits makes the entity a subtype of parent, stored in the same table
// unless Table is also given. Subtypes of an abstract parent get a table of
// their own.
func Inherits(parent *Entity) Option {
	return func(e *Entity) {
		e.Parent = parent
		if e.Table == "" && !parent.Abstract {
			e.Table = parent.TableName()
		}
	}
}

// PrimaryKey sets the primary key column name.
func PrimaryKey(name string) Option {
	return func(e *Entity) { e.PrimaryKey = name }
}

// InheritanceColumn sets the column holding the subtype name.
func InheritanceColumn(name string) Option {
	return func(e *Entity) { e.InheritanceColumn = name }
}

// New returns a new entity with an existing backing table, and attaches
// every index to the column it leads with.
func New(name string, opts ...Option) *Entity {
	e := &Entity{
		Name:              name,
		TableExists:       true,
		PrimaryKey:        DefaultPrimaryKey,
		InheritanceColumn: DefaultInheritanceColumn,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.AttachIndexes()
	return e
}

// AttachIndexes records each entity index on the column it leads with.
// Calling it more than once has no further effect.
func (e *Entity) AttachIndexes() {
	for _, idx := range e.Indexes {
		if len(idx.Columns) == 0 {
			continue
		}
		c := e.Column(idx.Columns[0])
		if c == nil || slices.Contains(c.Indexes, idx) {
			continue
		}
		c.Indexes = append(c.Indexes, idx)
	}
}

// TableName returns the backing table name.
func (e *Entity) TableName() string {
	if e.Table != "" {
		return e.Table
	}
	if e.Parent != nil && !e.Parent.Abstract {
		return e.Parent.TableName()
	}
	return inflect.Tableize(e.Name)
}

// Column returns the column with the given name, or nil.
func (e *Entity) Column(name string) *field.Descriptor {
	for _, c := range e.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ContentColumns returns the columns holding record content: everything
// except the primary key, the inheritance column, foreign keys ("_id")
// and counter caches ("_count").
func (e *Entity) ContentColumns() []*field.Descriptor {
	columns := make([]*field.Descriptor, 0, len(e.Columns))
	for _, c := range e.Columns {
		switch {
		case c.Name == e.PrimaryKey, c.Name == e.InheritanceColumn:
		case strings.HasSuffix(c.Name, "_id"), strings.HasSuffix(c.Name, "_count"):
		default:
			columns = append(columns, c)
		}
	}
	return columns
}

// SharesTable reports whether the entity is a subtype stored in its
// parent's table.
func (e *Entity) SharesTable() bool {
	return e.Parent != nil && !e.Parent.Abstract && e.Parent.TableName() == e.TableName()
}

// String implements the fmt.Stringer interface.
func (e *Entity) String() string {
	if e.Name == "" {
		return "<anonymous>"
	}
	return e.Name
}
