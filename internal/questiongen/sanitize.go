package questiongen

import "strings"

const (
	fenceJSON = "```json"
	fence     = "```"
)

// Sanitize strips surrounding whitespace and markdown code fences from a
// model response. Text without fences is only trimmed. The strip is
// repeated until nothing changes, so Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := stripFenceOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripFenceOnce(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fenceJSON) {
		s = s[len(fenceJSON):]
	} else if strings.HasPrefix(s, fence) {
		s = s[len(fence):]
	}
	if strings.HasSuffix(s, fence) {
		s = s[:len(s)-len(fence)]
	}
	return strings.TrimSpace(s)
}
