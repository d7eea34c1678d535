package flatfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Any impressive headline", want: "any-impressive-headline"},
		{in: "Müller & Söhne", want: "mueller-and-soehne"},
		{in: "Straße", want: "strasse"},
		{in: "Crème brûlée", want: "creme-brulee"},
		{in: "Œuvre Ærø", want: "oeuvre-aero"},
		{in: "Łódź", want: "lodz"},
		{in: "salt&pepper", want: "salt-and-pepper"},
		{in: "Tom &amp; Jerry", want: "tom--and--jerry"},
		{in: "a - b / c/d", want: "a-b-c-d"},
		{in: "key=value", want: "key-value"},
		{in: "snake_case-kept", want: "snake_case-kept"},
		{in: "Hello, World!", want: "hello-world"},
		{in: "日本語", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.in))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	inputs := []string{
		"Any impressive headline", "Müller & Söhne", "a - b / c/d", "x=y&z",
		"  spaced  out  ", "ÀÉÎÕÜ", "already-a-slug", "Tom &amp; Jerry", "日本語 text",
	}
	for _, in := range inputs {
		once := GenerateSlug(in)
		assert.Equal(t, once, GenerateSlug(once), in)
	}
}
