package rewrite

import (
	"regexp"
	"strings"
)

var boldMarkers = regexp.MustCompile(`\*\*|__`)

// CleanResponse strips markdown code fences and bold markers from a model
// reply so the renderer only sees plain lines.
func CleanResponse(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, boldMarkers.ReplaceAllString(line, ""))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
