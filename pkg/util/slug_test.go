package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Turkish characters",
			in:   "Diş Hekimliği Ürünleri",
			want: "dis-hekimligi-urunleri",
		},
		{
			name: "Uppercase dotted I",
			in:   "İmplant Seti",
			want: "implant-seti",
		},
		{
			name: "Punctuation collapses to single dash",
			in:   "Kompozit - Dolgu (A2)",
			want: "kompozit-dolgu-a2",
		},
		{
			name: "Leading and trailing separators trimmed",
			in:   "  %20 İndirimli! ",
			want: "20-indirimli",
		},
		{
			name: "Already clean",
			in:   "periodontal-sond",
			want: "periodontal-sond",
		},
		{
			name: "Empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
