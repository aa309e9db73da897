package mixin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemavalidations/schema"
	"github.com/syssam/schemavalidations/schema/field"
	"github.com/syssam/schemavalidations/schema/index"
	"github.com/syssam/schemavalidations/schema/mixin"
)

type audit struct {
	mixin.Schema
}

func (audit) Columns() []*field.Builder {
	return []*field.Builder{field.String("created_by").Size(100).NotNull()}
}

func (audit) Indexes() []*index.Builder {
	return []*index.Builder{index.Columns("created_by")}
}

func TestSchema(t *testing.T) {
	t.Parallel()

	m := mixin.Schema{}
	assert.Nil(t, m.Columns())
	assert.Nil(t, m.Indexes())
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mixin mixin.Mixin
		want  []string
	}{
		{"time", mixin.Time{}, []string{"created_at", "updated_at"}},
		{"create_time", mixin.CreateTime{}, []string{"created_at"}},
		{"update_time", mixin.UpdateTime{}, []string{"updated_at"}},
		{"soft_delete", mixin.SoftDelete{}, []string{"deleted_at"}},
		{"time_soft_delete", mixin.TimeSoftDelete{}, []string{"created_at", "updated_at", "deleted_at"}},
		{"tenant", mixin.Tenant{}, []string{"tenant_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var names []string
			for _, c := range tt.mixin.Columns() {
				names = append(names, c.Descriptor().Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	e := schema.New("Post",
		mixin.Apply(mixin.Time{}, mixin.SoftDelete{}, audit{}),
		schema.Columns(field.String("title").NotNull()),
	)
	require.Len(t, e.Columns, 5)
	assert.Equal(t, "created_at", e.Columns[0].Name)
	assert.Equal(t, "title", e.Columns[4].Name)

	created := e.Column("created_at")
	require.NotNil(t, created)
	assert.False(t, created.Nullable)
	assert.True(t, created.HasDefault)
	assert.True(t, e.Column("deleted_at").Nullable)

	require.Len(t, e.Indexes, 1)
	assert.Len(t, e.Column("created_by").Indexes, 1)
}

func TestApply_Fresh(t *testing.T) {
	t.Parallel()

	a := schema.New("A", mixin.Apply(mixin.Tenant{}))
	b := schema.New("B", mixin.Apply(mixin.Tenant{}))
	assert.NotSame(t, a.Column("tenant_id"), b.Column("tenant_id"))
	assert.Len(t, a.Column("tenant_id").Indexes, 1)
	assert.Len(t, b.Column("tenant_id").Indexes, 1)
}
