// Package load encodes resolved entity metadata to JSON and back, so rules
// can be derived offline from a schema captured earlier.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/edge"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
)

// Schema represents a schema.Entity in its JSON form.
type Schema struct {
	Name              string   `json:"name,omitempty"`
	Table             string   `json:"table,omitempty"`
	Abstract          bool     `json:"abstract,omitempty"`
	NoTable           bool     `json:"no_table,omitempty"`
	Parent            string   `json:"parent,omitempty"`
	PrimaryKey        string   `json:"primary_key,omitempty"`
	InheritanceColumn string   `json:"inheritance_column,omitempty"`
	Fields            []*Field `json:"fields,omitempty"`
	Indexes           []*Index `json:"indexes,omitempty"`
	Edges             []*Edge  `json:"edges,omitempty"`
}

// Field represents a column.
type Field struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Nullable     bool     `json:"nullable,omitempty"`
	Default      bool     `json:"default,omitempty"`
	DefaultValue any      `json:"default_value"`
	Size         int      `json:"size,omitempty"`
	Precision    int      `json:"precision,omitempty"`
	Scale        int      `json:"scale,omitempty"`
	Bytes        int      `json:"bytes,omitempty"`
	Unsigned     bool     `json:"unsigned,omitempty"`
	Range        *Range   `json:"range,omitempty"`
	Enums        []string `json:"enums,omitempty"`
	Comment      string   `json:"comment,omitempty"`
}

// Range represents an integer range override.
type Range struct {
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	ExclusiveMax bool            `json:"exclusive_max,omitempty"`
}

// Index represents an index.
type Index struct {
	Unique        bool     `json:"unique,omitempty"`
	Fields        []string `json:"fields"`
	StorageKey    string   `json:"storage_key,omitempty"`
	CaseSensitive *bool    `json:"case_sensitive,omitempty"`
}

// Edge represents a belongs-to association.
type Edge struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Field string `json:"field,omitempty"`
}

// NewField creates a loaded field from a column descriptor.
func NewField(fd *field.Descriptor) *Field {
	f := &Field{
		Name:      fd.Name,
		Type:      fd.Type.String(),
		Nullable:  fd.Nullable,
		Default:   fd.HasDefault,
		Size:      fd.Size,
		Precision: fd.Precision,
		Scale:     fd.Scale,
		Bytes:     fd.Bytes,
		Unsigned:  fd.Unsigned,
		Enums:     fd.EnumValues,
		Comment:   fd.Comment,
	}
	// Only defaults that survive encoding are kept.
	if _, err := json.Marshal(fd.Default); err == nil {
		f.DefaultValue = fd.Default
	}
	if r := fd.IntRange; r != nil {
		f.Range = &Range{Min: r.Min, Max: r.Max, ExclusiveMax: r.ExclusiveMax}
	}
	return f
}

// NewIndex creates a loaded index from an index descriptor.
func NewIndex(idx *index.Descriptor) *Index {
	return &Index{
		Unique:        idx.Unique,
		Fields:        idx.Columns,
		StorageKey:    idx.StorageKey,
		CaseSensitive: idx.CaseSensitive,
	}
}

// NewEdge creates a loaded edge from an association descriptor.
func NewEdge(ed *edge.Descriptor) *Edge {
	return &Edge{Name: ed.Name, Type: ed.Type, Field: ed.Field}
}

// NewSchema creates the loaded form of an entity. Indexes declared on
// single columns are hoisted to the entity.
func NewSchema(e *schema.Entity) *Schema {
	s := &Schema{
		Name:              e.Name,
		Table:             e.Table,
		Abstract:          e.Abstract,
		NoTable:           !e.TableExists,
		PrimaryKey:        e.PrimaryKey,
		InheritanceColumn: e.InheritanceColumn,
	}
	if e.Parent != nil {
		s.Parent = e.Parent.Name
	}
	indexes := slices.Clone(e.Indexes)
	for _, c := range e.Columns {
		s.Fields = append(s.Fields, NewField(c))
		for _, idx := range c.Indexes {
			if !slices.Contains(indexes, idx) {
				indexes = append(indexes, idx)
			}
		}
	}
	for _, idx := range indexes {
		s.Indexes = append(s.Indexes, NewIndex(idx))
	}
	for _, a := range e.Associations {
		s.Edges = append(s.Edges, NewEdge(a))
	}
	return s
}

// MarshalSchema encodes an entity into JSON that can be decoded into the
// Schema objects declared above.
func MarshalSchema(e *schema.Entity) ([]byte, error) {
	return json.Marshal(NewSchema(e))
}

// UnmarshalSchema decodes the given buffer to a loaded schema.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Entity builds the entity described by s. The parent is not resolved.
func (s *Schema) Entity() (*schema.Entity, error) {
	e := &schema.Entity{
		Name:              s.Name,
		Table:             s.Table,
		Abstract:          s.Abstract,
		TableExists:       !s.NoTable,
		PrimaryKey:        s.PrimaryKey,
		InheritanceColumn: s.InheritanceColumn,
	}
	if e.PrimaryKey == "" {
		e.PrimaryKey = schema.DefaultPrimaryKey
	}
	if e.InheritanceColumn == "" {
		e.InheritanceColumn = schema.DefaultInheritanceColumn
	}
	for _, f := range s.Fields {
		c, err := f.descriptor()
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Name, err)
		}
		e.Columns = append(e.Columns, c)
	}
	for _, idx := range s.Indexes {
		e.Indexes = append(e.Indexes, &index.Descriptor{
			Unique:        idx.Unique,
			Columns:       idx.Fields,
			StorageKey:    idx.StorageKey,
			CaseSensitive: idx.CaseSensitive,
		})
	}
	for _, ed := range s.Edges {
		b := edge.BelongsTo(ed.Name)
		if ed.Type != "" {
			b.Type(ed.Type)
		}
		if ed.Field != "" {
			b.Field(ed.Field)
		}
		e.Associations = append(e.Associations, b.Descriptor())
	}
	e.AttachIndexes()
	return e, nil
}

func (f *Field) descriptor() (*field.Descriptor, error) {
	t, ok := parseType(f.Type)
	if !ok {
		return nil, fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
	}
	fd := &field.Descriptor{
		Name:       f.Name,
		Type:       t,
		Nullable:   f.Nullable,
		HasDefault: f.Default,
		Default:    f.DefaultValue,
		Size:       f.Size,
		Precision:  f.Precision,
		Scale:      f.Scale,
		Bytes:      f.Bytes,
		Unsigned:   f.Unsigned,
		EnumValues: f.Enums,
		Comment:    f.Comment,
	}
	if r := f.Range; r != nil {
		fd.IntRange = &field.IntegerRange{Min: r.Min, Max: r.Max, ExclusiveMax: r.ExclusiveMax}
	}
	return fd, nil
}

func parseType(s string) (field.Type, bool) {
	for t := field.TypeOther; t.Valid(); t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// File is the content of a schema file.
type File struct {
	Schemas []*Schema `json:"schemas"`
}

// MarshalFile encodes the given entities as an indented schema file.
func MarshalFile(entities []*schema.Entity) ([]byte, error) {
	f := &File{Schemas: make([]*Schema, 0, len(entities))}
	for _, e := range entities {
		f.Schemas = append(f.Schemas, NewSchema(e))
	}
	return json.MarshalIndent(f, "", "  ")
}

// UnmarshalFile decodes a schema file into entities, linking every subtype
// to its parent by name.
func UnmarshalFile(buf []byte) ([]*schema.Entity, error) {
	var f File
	if err := json.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("load: decoding schema file: %w", err)
	}
	entities := make([]*schema.Entity, 0, len(f.Schemas))
	byName := make(map[string]*schema.Entity, len(f.Schemas))
	for _, s := range f.Schemas {
		e, err := s.Entity()
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		entities = append(entities, e)
		if e.Name != "" {
			byName[e.Name] = e
		}
	}
	for i, s := range f.Schemas {
		if s.Parent == "" {
			continue
		}
		p, ok := byName[s.Parent]
		if !ok {
			return nil, fmt.Errorf("load: schema %q: unknown parent %q", s.Name, s.Parent)
		}
		entities[i].Parent = p
	}
	return entities, nil
}

// LoadFile reads the schema file at path.
func LoadFile(path string) ([]*schema.Entity, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: reading schema file: %w", err)
	}
	return UnmarshalFile(buf)
}
