package flatfile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters NFD cannot decompose into ASCII plus combining marks.
var transliterations = strings.NewReplacer(
	"ä", "ae", "Ä", "Ae",
	"ö", "oe", "Ö", "Oe",
	"ü", "ue", "Ü", "Ue",
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH",
	"ð", "d", "Ð", "D",
)

// Applied in order after lower-casing.
var slugTokens = strings.NewReplacer(
	"&amp;", "-and-",
	" & ", "-and-",
	"&", "-and-",
	" - ", "-",
	" / ", "-",
	"/", "-",
	" ", "-",
	"=", "-",
)

// GenerateSlug turns arbitrary text into a URL-safe slug made of
// [a-z0-9_-]. It is deterministic and idempotent.
//
//	GenerateSlug("Any impressive headline") == "any-impressive-headline"
//	GenerateSlug("Müller & Söhne")          == "mueller-and-soehne"
func GenerateSlug(s string) string {
	s = transliterations.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	s = slugTokens.Replace(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '-' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
