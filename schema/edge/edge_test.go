package edge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/schemavalidations/schema/edge"
)

func TestBelongsTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build *edge.Builder
		want  edge.Descriptor
	}{
		{
			name:  "defaults",
			build: edge.BelongsTo("author"),
			want:  edge.Descriptor{Name: "author", Type: "Author", Field: "author_id"},
		},
		{
			name:  "compound_name",
			build: edge.BelongsTo("news_article"),
			want:  edge.Descriptor{Name: "news_article", Type: "NewsArticle", Field: "news_article_id"},
		},
		{
			name:  "custom_field_and_type",
			build: edge.BelongsTo("owner").Field("user_id").Type("User"),
			want:  edge.Descriptor{Name: "owner", Type: "User", Field: "user_id"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, *tt.build.Descriptor())
		})
	}
}
