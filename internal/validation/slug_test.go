package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"trailing punctuation", "Hello World!!", "hello-world"},
		{"leading punctuation", "...Hello", "hello"},
		{"mixed separators", "Go & the Art of APIs", "go-the-art-of-apis"},
		{"already lowercase", "my-first-post", "my-first-post"},
		{"digits kept", "Top 10 Tips", "top-10-tips"},
		{"collapsed runs", "a  --  b", "a-b"},
		{"all punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	t.Parallel()

	title := "Deterministic? Yes, Deterministic!"
	first := Slugify(title)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Slugify(title))
	}
}

func TestValidSlug(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidSlug("hello-world"))
	assert.True(t, ValidSlug("top-10-tips"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("Hello-World"))
	assert.False(t, ValidSlug("hello world"))
	assert.False(t, ValidSlug("héllo"))
}
