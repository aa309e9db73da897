package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/syssam/schemavalidations/compiler/load"
	"github.com/syssam/schemavalidations/config"
	"github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/edge"
	"github.com/syssam/schemavalidations/schema/field"
)

func writeSchema(t *testing.T) string {
	t.Helper()
	entities := []*schema.Entity{
		schema.New("Review",
			schema.Columns(
				field.Int("id").NotNull(),
				field.String("title").Size(50).NotNull(),
				field.Text("content").NotNull(),
				field.Int("news_article_id").NotNull(),
			),
			schema.BelongsTo(edge.BelongsTo("news_article")),
		),
		schema.New("NewsArticle", schema.Columns(field.Int("id").NotNull())),
	}
	buf, err := load.MarshalFile(entities)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetDefault)
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspect_Text(t *testing.T) {
	out, err := run(t, "inspect", "--schema", writeSchema(t))
	require.NoError(t, err)
	assert.Equal(t, `Review (reviews)
  validates_length_of :title, allow_nil: true, maximum: 50
  validates_presence_of :title
  validates_presence_of :content
  validates_presence_of :news_article
NewsArticle (news_articles)
`, out)
}

func TestInspect_Config(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
entities:
  Review:
    except: [content, news_article]
    except_type: validates_length_of
  Ghost:
    auto_create: false
`), 0o644))
	out, err := run(t, "inspect", "--schema", writeSchema(t), "--config", cfg, "--table", "reviews")
	require.NoError(t, err)
	assert.Equal(t, "Review (reviews)\n  validates_presence_of :title\n", out)
}

func TestInspect_YAML(t *testing.T) {
	out, err := run(t, "inspect", "--schema", writeSchema(t), "--format", "yaml")
	require.NoError(t, err)
	var docs []entityDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Review", docs[0].Entity)
	assert.True(t, docs[0].Loaded)
	assert.Len(t, docs[0].Rules, 4)
	assert.Empty(t, docs[1].Rules)
	assert.Empty(t, docs[0].Declined)
}

func TestInspect_YAMLDeclined(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "validations.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("default:\n  auto_create: false\n"), 0o644))
	out, err := run(t, "inspect", "--schema", writeSchema(t), "--config", cfg, "--format", "yaml")
	require.NoError(t, err)
	var docs []entityDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.False(t, docs[0].Loaded)
	assert.Equal(t, "auto_create is off", docs[0].Declined)
	assert.Empty(t, docs[0].Rules)
}

func TestInspect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (id integer PRIMARY KEY, email varchar(100) NOT NULL, admin boolean NOT NULL DEFAULT false)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := run(t, "inspect", "--dialect", "sqlite", "--dsn", path)
	require.NoError(t, err)
	assert.Equal(t, `User (users)
  validates_length_of :email, allow_nil: true, maximum: 100
  validates_presence_of :email
  validates_inclusion_of :admin, in: [true false], message: :blank
`, out)

	out, err = run(t, "inspect", "--dialect", "sqlite", "--dsn", path, "--format", "schema")
	require.NoError(t, err)
	entities, err := load.UnmarshalFile([]byte(out))
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "users", entities[0].Table)
}

func TestGen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rules")
	_, err := run(t, "gen", "--schema", writeSchema(t), "--out", dir)
	require.NoError(t, err)
	for _, name := range []string{"review_rules.go", "news_article_rules.go", "rules.go", "rules.msgpack"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	buf, err := os.ReadFile(filepath.Join(dir, "review_rules.go"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "package rules")
	assert.Contains(t, string(buf), `rule.PresenceOf("news_article", "news_article_id"),`)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no source", []string{"inspect"}, "one of --dsn or --schema is required"},
		{"bad format", []string{"inspect", "--schema", writeSchema(t), "--format", "xml"}, `invalid --format "xml"`},
		{"bad log level", []string{"inspect", "--log-level", "loud"}, `invalid --log-level "loud"`},
		{"bad log format", []string{"inspect", "--log-format", "xml"}, `invalid --log-format "xml"`},
		{"bad dialect", []string{"inspect", "--dialect", "oracle", "--dsn", "x"}, "unsupported dialect"},
		{"missing out", []string{"gen", "--schema", "x"}, `required flag(s) "out" not set`},
		{"watch without files", []string{"gen", "--dsn", "file:watch_test?mode=memory", "--dialect", "sqlite", "--out", filepath.Join(t.TempDir(), "rules"), "--watch"}, "--watch requires --config or --schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
