package schema

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	"github.com/go-openapi/inflect"

	"github.com/syssam/schemavalidations/dialect"
	"github.com/syssam/schemavalidations/dialect/sql"
	entity "github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/edge"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
)

// Inspector reads table metadata from a live database and resolves it
// into entities.
type Inspector struct {
	drv     migrate.Driver
	dialect string
}

// NewInspector returns an Inspector over the given driver.
func NewInspector(drv *sql.Driver) (*Inspector, error) {
	var (
		ad  migrate.Driver
		err error
	)
	switch drv.Dialect() {
	case dialect.SQLite:
		ad, err = sqlite.Open(drv.DB)
	case dialect.Postgres:
		ad, err = postgres.Open(drv.DB)
	case dialect.MySQL:
		ad, err = mysql.Open(drv.DB)
	default:
		return nil, fmt.Errorf("%w: %q", sql.ErrUnsupportedDialect, drv.Dialect())
	}
	if err != nil {
		return nil, &InspectError{Dialect: drv.Dialect(), Err: err}
	}
	return &Inspector{drv: ad, dialect: drv.Dialect()}, nil
}

// Entities inspects the given tables of the connected schema, or every
// table when none is given. A requested table missing from the database
// yields an entity without a backing table.
func (i *Inspector) Entities(ctx context.Context, tables ...string) ([]*entity.Entity, error) {
	s, err := i.drv.InspectSchema(ctx, "", &atlas.InspectOptions{Tables: tables})
	if err != nil {
		return nil, &InspectError{Dialect: i.dialect, Err: err}
	}
	if len(tables) == 0 {
		entities := make([]*entity.Entity, 0, len(s.Tables))
		for _, t := range s.Tables {
			entities = append(entities, Entity(t))
		}
		return entities, nil
	}
	entities := make([]*entity.Entity, 0, len(tables))
	for _, name := range tables {
		t, ok := s.Table(name)
		if !ok {
			entities = append(entities, entity.New(EntityName(name), entity.Table(name), entity.NoTable()))
			continue
		}
		entities = append(entities, Entity(t))
	}
	return entities, nil
}

// EntityName returns the entity name of a table: "news_articles" is
// "NewsArticle".
func EntityName(table string) string {
	return inflect.Camelize(inflect.Singularize(table))
}

// Entity converts an inspected table into an entity.
func Entity(t *atlas.Table) *entity.Entity {
	e := &entity.Entity{
		Name:              EntityName(t.Name),
		Table:             t.Name,
		TableExists:       true,
		PrimaryKey:        entity.DefaultPrimaryKey,
		InheritanceColumn: entity.DefaultInheritanceColumn,
	}
	if pk := t.PrimaryKey; pk != nil && len(pk.Parts) == 1 && pk.Parts[0].C != nil {
		e.PrimaryKey = pk.Parts[0].C.Name
	}
	for _, c := range t.Columns {
		e.Columns = append(e.Columns, Column(c))
	}
	for _, idx := range t.Indexes {
		e.Indexes = append(e.Indexes, Index(idx))
	}
	for _, fk := range t.ForeignKeys {
		if a := Association(fk); a != nil {
			e.Associations = append(e.Associations, a)
		}
	}
	e.AttachIndexes()
	return e
}

// Column converts an inspected column.
func Column(c *atlas.Column) *field.Descriptor {
	d := &field.Descriptor{Name: c.Name, Nullable: true}
	if c.Type != nil {
		d.Nullable = c.Type.Null
		switch t := c.Type.Type.(type) {
		case *atlas.IntegerType:
			d.Type = field.TypeInteger
			d.Bytes = integerBytes(t.T)
			d.Unsigned = t.Unsigned
		case *atlas.DecimalType:
			d.Type = field.TypeDecimal
			d.Precision, d.Scale = t.Precision, t.Scale
		case *atlas.FloatType:
			d.Type = field.TypeFloat
		case *atlas.StringType:
			d.Type = field.TypeString
			d.Size = t.Size
		case *atlas.BoolType:
			d.Type = field.TypeBool
		case *atlas.EnumType:
			d.Type = field.TypeEnum
			d.EnumValues = t.Values
		default:
			if strings.EqualFold(c.Type.Raw, "money") {
				d.Type = field.TypeDecimal
			}
		}
	}
	switch x := atlas.UnderlyingExpr(c.Default).(type) {
	case *atlas.Literal:
		d.HasDefault, d.Default = true, literal(x.V)
	case *atlas.RawExpr:
		d.HasDefault = true
	}
	return d
}

// lowerRe matches case-folding index expressions such as lower(email) or
// lower((email)::text).
var lowerRe = regexp.MustCompile(`(?i)^lower\(\(?[` + "`" + `"]?(\w+)[` + "`" + `"]?\)?(?:::[\w ]+)?\)$`)

// Index converts an inspected index. Parts indexing lower(column) make the
// index case-insensitive.
func Index(idx *atlas.Index) *index.Descriptor {
	d := &index.Descriptor{StorageKey: idx.Name, Unique: idx.Unique}
	for _, p := range idx.Parts {
		switch {
		case p.C != nil:
			d.Columns = append(d.Columns, p.C.Name)
		case p.X != nil:
			x, ok := p.X.(*atlas.RawExpr)
			if !ok {
				continue
			}
			if m := lowerRe.FindStringSubmatch(strings.TrimSpace(x.X)); m != nil {
				d.Columns = append(d.Columns, m[1])
				insensitive := false
				d.CaseSensitive = &insensitive
			}
		}
	}
	return d
}

// Association converts a single-column foreign key into a belongs-to
// association named after the column, or after the referenced table when
// the column has no "_id" suffix.
func Association(fk *atlas.ForeignKey) *edge.Descriptor {
	if len(fk.Columns) != 1 {
		return nil
	}
	column := fk.Columns[0].Name
	name, ok := strings.CutSuffix(column, "_id")
	if !ok && fk.RefTable != nil {
		name = inflect.Underscore(inflect.Singularize(fk.RefTable.Name))
	}
	b := edge.BelongsTo(name).Field(column)
	if fk.RefTable != nil {
		b.Type(EntityName(fk.RefTable.Name))
	}
	return b.Descriptor()
}

// literal decodes a default literal: quoted strings are unquoted, boolean
// keywords become bools, anything else is kept verbatim.
func literal(v string) any {
	switch lv := strings.ToLower(v); {
	case lv == "true":
		return true
	case lv == "false":
		return false
	case len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'':
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	case len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"':
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
		return v[1 : len(v)-1]
	}
	return v
}

func integerBytes(t string) int {
	switch strings.ToLower(t) {
	case "tinyint", "int1":
		return 1
	case "smallint", "int2", "smallserial":
		return 2
	case "mediumint", "int3":
		return 3
	case "bigint", "int8", "bigserial", "unsigned big int":
		return 8
	default:
		return field.DefaultIntegerBytes
	}
}
