// Package sanitise strips markup from user-supplied text before it is
// stored or rendered into emails.
package sanitise

import "github.com/dlclark/regexp2"

var tagPattern = regexp2.MustCompile(`<[^>]*>`, regexp2.None)

// StripHTML removes anything that looks like an HTML tag.
func StripHTML(input string) string {
	out, err := tagPattern.Replace(input, "", -1, -1)
	if err != nil {
		return ""
	}
	return out
}

// Fields returns a copy of the map with every value stripped of HTML.
func Fields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = StripHTML(v)
	}
	return out
}
