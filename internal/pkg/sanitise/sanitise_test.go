package sanitise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"script tags", "<script>alert(1)</script>hi", "alert(1)hi"},
		{"nested markup", "<div><b>bold</b> text</div>", "bold text"},
		{"attributes", `<a href="https://evil.example">link</a>`, "link"},
		{"unclosed tag", "before <img src=x", "before <img src=x"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestFields(t *testing.T) {
	in := map[string]string{
		"name":    "<b>Ada</b>",
		"company": "Analytical Engines",
	}

	out := Fields(in)
	assert.Equal(t, "Ada", out["name"])
	assert.Equal(t, "Analytical Engines", out["company"])
	assert.Equal(t, "<b>Ada</b>", in["name"])
}
