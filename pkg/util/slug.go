package util

import (
	"strings"
)

// Türkçe karakterlerin URL uyumlu karşılıkları
var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i",
	"İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// Slugify converts a product or category name into a URL slug.
// Turkish letters are transliterated before lowercasing so that
// "Diş Hekimliği" becomes "dis-hekimligi".
func Slugify(name string) string {
	s := turkishReplacer.Replace(strings.TrimSpace(name))
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastDash := true // leading dashes suppressed
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
