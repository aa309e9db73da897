package schema

import (
	"context"
	"testing"

	atlas "ariga.io/atlas/sql/schema"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/schemavalidations/dialect"
	"github.com/syssam/schemavalidations/dialect/sql"
	"github.com/syssam/schemavalidations/schema/field"
)

func TestInspector_SQLite(t *testing.T) {
	ctx := context.Background()
	drv, err := sql.Open(ctx, dialect.SQLite, "file:inspect_sqlite?mode=memory&cache=shared")
	require.NoError(t, err)
	defer drv.Close()
	for _, stmt := range []string{
		"CREATE TABLE authors (id integer PRIMARY KEY, email varchar(100) NOT NULL)",
		"CREATE UNIQUE INDEX authors_email ON authors (lower(email))",
		`CREATE TABLE articles (
			id integer PRIMARY KEY,
			title varchar(50) NOT NULL,
			body text NOT NULL DEFAULT '',
			price decimal(5,2),
			published boolean NOT NULL DEFAULT false,
			views bigint,
			slug varchar(80) NOT NULL,
			author_id integer NOT NULL REFERENCES authors(id),
			created_at datetime DEFAULT CURRENT_TIMESTAMP
		)`,
		"CREATE UNIQUE INDEX articles_slug ON articles (slug, author_id)",
	} {
		_, err := drv.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	insp, err := NewInspector(drv)
	require.NoError(t, err)
	entities, err := insp.Entities(ctx, "authors", "articles", "missing")
	require.NoError(t, err)
	require.Len(t, entities, 3)

	author := entities[0]
	assert.Equal(t, "Author", author.Name)
	email := author.Column("email")
	require.NotNil(t, email)
	assert.True(t, email.Unique())
	assert.True(t, email.CaseInsensitiveUnique(email.UniqueScope()))

	article := entities[1]
	assert.Equal(t, "Article", article.Name)
	assert.Equal(t, "articles", article.Table)
	assert.Equal(t, "id", article.PrimaryKey)
	assert.True(t, article.TableExists)

	title := article.Column("title")
	require.NotNil(t, title)
	assert.Equal(t, field.TypeString, title.Type)
	assert.Equal(t, 50, title.Size)
	assert.False(t, title.Nullable)

	body := article.Column("body")
	require.NotNil(t, body)
	assert.True(t, body.DefaultIsBlank())

	price := article.Column("price")
	require.NotNil(t, price)
	assert.Equal(t, field.TypeDecimal, price.Type)
	assert.Equal(t, 5, price.Precision)
	assert.Equal(t, 2, price.Scale)
	assert.True(t, price.Nullable)

	published := article.Column("published")
	require.NotNil(t, published)
	assert.Equal(t, field.TypeBool, published.Type)
	assert.Equal(t, false, published.Default)

	views := article.Column("views")
	require.NotNil(t, views)
	assert.Equal(t, 8, views.Bytes)

	slug := article.Column("slug")
	require.NotNil(t, slug)
	assert.True(t, slug.Unique())
	assert.Equal(t, []string{"author_id"}, slug.UniqueScope())
	assert.False(t, slug.CaseInsensitiveUnique(slug.UniqueScope()))

	created := article.Column("created_at")
	require.NotNil(t, created)
	assert.Equal(t, field.TypeOther, created.Type)
	assert.True(t, created.HasDefault)
	assert.Nil(t, created.Default)

	require.Len(t, article.Associations, 1)
	assert.Equal(t, "author", article.Associations[0].Name)
	assert.Equal(t, "Author", article.Associations[0].Type)
	assert.Equal(t, "author_id", article.Associations[0].Field)

	missing := entities[2]
	assert.Equal(t, "Missing", missing.Name)
	assert.False(t, missing.TableExists)
}

func TestInspector_Errors(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewInspector(sql.OpenDB("oracle", db))
	require.ErrorIs(t, err, sql.ErrUnsupportedDialect)

	insp, err := NewInspector(sql.OpenDB(dialect.SQLite, db))
	require.NoError(t, err)
	mock.ExpectQuery(".+").WillReturnError(assert.AnError)
	_, err = insp.Entities(context.Background())
	var ie *InspectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, dialect.SQLite, ie.Dialect)
	assert.Contains(t, err.Error(), "dialect/sql/schema: inspect sqlite")
}

func TestEntity(t *testing.T) {
	t.Parallel()
	id := &atlas.Column{Name: "uid", Type: &atlas.ColumnType{Type: &atlas.IntegerType{T: "bigint", Unsigned: true}}}
	state := &atlas.Column{Name: "state", Type: &atlas.ColumnType{Type: &atlas.EnumType{T: "enum", Values: []string{"draft", "live"}}}}
	owner := &atlas.Column{Name: "owner", Type: &atlas.ColumnType{Type: &atlas.IntegerType{T: "int"}}}
	cost := &atlas.Column{Name: "cost", Type: &atlas.ColumnType{Raw: "money", Type: &atlas.UnsupportedType{T: "money"}, Null: true}}
	name := &atlas.Column{
		Name:    "name",
		Type:    &atlas.ColumnType{Type: &atlas.StringType{T: "varchar", Size: 20}},
		Default: &atlas.Literal{V: "'it''s'"},
	}
	users := &atlas.Table{Name: "users"}
	tbl := &atlas.Table{
		Name:       "news_articles",
		Columns:    []*atlas.Column{id, state, owner, cost, name},
		PrimaryKey: &atlas.Index{Parts: []*atlas.IndexPart{{C: id}}},
		Indexes: []*atlas.Index{
			{Name: "name_ci", Unique: true, Parts: []*atlas.IndexPart{{X: &atlas.RawExpr{X: "lower((name)::text)"}}}},
		},
		ForeignKeys: []*atlas.ForeignKey{
			{Symbol: "owner_fk", Columns: []*atlas.Column{owner}, RefTable: users},
		},
	}

	e := Entity(tbl)
	assert.Equal(t, "NewsArticle", e.Name)
	assert.Equal(t, "uid", e.PrimaryKey)

	c := e.Column("uid")
	require.NotNil(t, c)
	assert.Equal(t, 8, c.Bytes)
	assert.True(t, c.Unsigned)

	c = e.Column("state")
	require.NotNil(t, c)
	assert.Equal(t, field.TypeEnum, c.Type)
	assert.Equal(t, []string{"draft", "live"}, c.EnumValues)

	c = e.Column("cost")
	require.NotNil(t, c)
	assert.Equal(t, field.TypeDecimal, c.Type)
	assert.Zero(t, c.Precision)

	c = e.Column("name")
	require.NotNil(t, c)
	assert.Equal(t, "it's", c.Default)
	assert.True(t, c.Unique())
	assert.True(t, c.CaseInsensitiveUnique(nil))

	require.Len(t, e.Associations, 1)
	assert.Equal(t, "user", e.Associations[0].Name)
	assert.Equal(t, "User", e.Associations[0].Type)
	assert.Equal(t, "owner", e.Associations[0].Field)
}

func TestLiteral(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want any
	}{
		{"''", ""},
		{"'a''b'", "a'b"},
		{`"x"`, "x"},
		{"TRUE", true},
		{"false", false},
		{"0", "0"},
		{"3.14", "3.14"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, literal(tt.in), tt.in)
	}
}

func TestEntityName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "NewsArticle", EntityName("news_articles"))
	assert.Equal(t, "Person", EntityName("people"))
	assert.Equal(t, "Category", EntityName("categories"))
}
