package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/edge"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
)

func TestNew(t *testing.T) {
	t.Parallel()

	e := schema.New("User")
	assert.Equal(t, "User", e.Name)
	assert.True(t, e.TableExists)
	assert.False(t, e.Abstract)
	assert.Equal(t, schema.DefaultPrimaryKey, e.PrimaryKey)
	assert.Equal(t, schema.DefaultInheritanceColumn, e.InheritanceColumn)
	assert.Equal(t, "User", e.String())
	assert.Equal(t, "<anonymous>", schema.New("").String())

	e = schema.New("Legacy",
		schema.Table("tbl_legacy"),
		schema.PrimaryKey("legacy_id"),
		schema.InheritanceColumn("kind"),
		schema.NoTable(),
		schema.Abstract(),
	)
	assert.Equal(t, "tbl_legacy", e.TableName())
	assert.Equal(t, "legacy_id", e.PrimaryKey)
	assert.Equal(t, "kind", e.InheritanceColumn)
	assert.False(t, e.TableExists)
	assert.True(t, e.Abstract)
}

func TestEntity_TableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entity *schema.Entity
		want   string
	}{
		{schema.New("User"), "users"},
		{schema.New("NewsArticle"), "news_articles"},
		{schema.New("Person"), "people"},
		{schema.New("User", schema.Table("accounts")), "accounts"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.entity.TableName(), tt.entity.Name)
	}
}

func TestEntity_ContentColumns(t *testing.T) {
	t.Parallel()

	e := schema.New("Article",
		schema.Columns(
			field.Int("id"),
			field.String("type"),
			field.String("title"),
			field.Int("author_id"),
			field.Int("comments_count"),
			field.Other("created_at"),
		),
	)
	var names []string
	for _, c := range e.ContentColumns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"title", "created_at"}, names)

	e = schema.New("Legacy",
		schema.PrimaryKey("code"),
		schema.InheritanceColumn("kind"),
		schema.Columns(field.String("code"), field.String("kind"), field.Int("id"), field.String("type")),
	)
	names = names[:0]
	for _, c := range e.ContentColumns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "type"}, names)
}

func TestEntity_Column(t *testing.T) {
	t.Parallel()

	e := schema.New("User", schema.Columns(field.String("name")))
	require.NotNil(t, e.Column("name"))
	assert.Equal(t, field.TypeString, e.Column("name").Type)
	assert.Nil(t, e.Column("missing"))
}

func TestEntity_AttachIndexes(t *testing.T) {
	t.Parallel()

	e := schema.New("Article",
		schema.Columns(
			field.String("slug"),
			field.Int("author_id"),
		),
		schema.Indexes(
			index.Columns("slug", "author_id").Unique(),
			index.Columns("author_id"),
			index.Columns("missing"),
			index.Columns(),
		),
	)
	slug, author := e.Column("slug"), e.Column("author_id")
	require.Len(t, slug.Indexes, 1)
	assert.Equal(t, []string{"author_id"}, slug.UniqueScope())
	require.Len(t, author.Indexes, 1)
	assert.False(t, author.Unique())

	e.AttachIndexes()
	e.AttachIndexes()
	assert.Len(t, slug.Indexes, 1)
	assert.Len(t, author.Indexes, 1)
}

func TestEntity_Inherits(t *testing.T) {
	t.Parallel()

	user := schema.New("User")
	admin := schema.New("Admin", schema.Inherits(user))
	assert.Same(t, user, admin.Parent)
	assert.Equal(t, "users", admin.TableName())
	assert.True(t, admin.SharesTable())
	assert.False(t, user.SharesTable())

	own := schema.New("Guest", schema.Table("guests"), schema.Inherits(user))
	assert.Equal(t, "guests", own.TableName())
	assert.False(t, own.SharesTable())

	super := schema.New("SuperAdmin", schema.Inherits(admin))
	assert.Equal(t, "users", super.TableName())
	assert.True(t, super.SharesTable())
}

func TestEntity_InheritsAbstract(t *testing.T) {
	t.Parallel()

	base := schema.New("ApplicationRecord", schema.Abstract())
	user := schema.New("User", schema.Inherits(base))
	assert.Same(t, base, user.Parent)
	assert.Equal(t, "users", user.TableName())
	assert.False(t, user.SharesTable())

	admin := schema.New("Admin", schema.Inherits(user))
	assert.Equal(t, "users", admin.TableName())
	assert.True(t, admin.SharesTable())

	// Parents linked after construction, as the schema file loader does.
	account := schema.New("Account")
	account.Parent = base
	assert.Equal(t, "accounts", account.TableName())
	assert.False(t, account.SharesTable())
}

func TestBelongsTo(t *testing.T) {
	t.Parallel()

	e := schema.New("Article",
		schema.BelongsTo(
			edge.BelongsTo("author"),
			edge.BelongsTo("editor").Field("editor_user_id").Type("User"),
		),
	)
	require.Len(t, e.Associations, 2)
	assert.Equal(t, "author_id", e.Associations[0].Field)
	assert.Equal(t, "User", e.Associations[1].Type)
}
