package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/schemavalidations/schema/index"
)

func TestColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *index.Descriptor
		validate func(t *testing.T, desc *index.Descriptor)
	}{
		{
			name: "single_column",
			build: func() *index.Descriptor {
				return index.Columns("name").Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				assert.Equal(t, []string{"name"}, desc.Columns)
				assert.False(t, desc.Unique)
				assert.Empty(t, desc.StorageKey)
				assert.Nil(t, desc.CaseSensitive)
				assert.False(t, desc.CaseInsensitive())
			},
		},
		{
			name: "unique_composite",
			build: func() *index.Descriptor {
				return index.Columns("slug", "account_id").Unique().StorageKey("articles_slug").Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				assert.Equal(t, []string{"slug", "account_id"}, desc.Columns)
				assert.True(t, desc.Unique)
				assert.Equal(t, "articles_slug", desc.StorageKey)
			},
		},
		{
			name: "case_insensitive",
			build: func() *index.Descriptor {
				return index.Columns("email").Unique().CaseInsensitive().Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				if assert.NotNil(t, desc.CaseSensitive) {
					assert.False(t, *desc.CaseSensitive)
				}
				assert.True(t, desc.CaseInsensitive())
			},
		},
		{
			name: "case_sensitive",
			build: func() *index.Descriptor {
				return index.Columns("email").CaseSensitive(true).Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				assert.False(t, desc.CaseInsensitive())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.validate(t, tt.build())
		})
	}
}

func TestDescriptor_Covers(t *testing.T) {
	t.Parallel()

	desc := index.Columns("a", "b").Descriptor()
	assert.True(t, desc.Covers([]string{"a", "b"}))
	assert.True(t, desc.Covers([]string{"b", "a"}))
	assert.False(t, desc.Covers([]string{"a"}))
	assert.False(t, desc.Covers([]string{"a", "c"}))
	// Covers must not reorder the index columns.
	assert.Equal(t, []string{"a", "b"}, desc.Columns)
}

func TestDescriptor_Leads(t *testing.T) {
	t.Parallel()

	desc := index.Columns("a", "b").Descriptor()
	assert.True(t, desc.Leads("a"))
	assert.False(t, desc.Leads("b"))
	assert.False(t, index.Columns().Descriptor().Leads("a"))
}

func TestDescriptor_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INDEX (a, b)", index.Columns("a", "b").Descriptor().String())
	assert.Equal(t, "UNIQUE INDEX users_email (email) CASE INSENSITIVE",
		index.Columns("email").Unique().CaseInsensitive().StorageKey("users_email").Descriptor().String())
}
