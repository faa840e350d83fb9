package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Security Night", "security-night"},
		{"punctuation dropped", "Zero Trust: Beyond the Buzzword!", "zero-trust-beyond-the-buzzword"},
		{"runs collapsed", "CTF   &   Pizza -- 2026", "ctf-pizza-2026"},
		{"digits kept", "OWASP Top 10 in 2026", "owasp-top-10-in-2026"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeCapsLength(t *testing.T) {
	long := strings.Repeat("a", 120)
	assert.Len(t, Make(long), 80)
}
