package rewrite

import "strings"

// FilterLines drops blank lines from printed source text. A line containing
// the preservation marker is always kept, blank or not. The result is stable
// under re-filtering.
func FilterLines(text, marker string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if marker != "" && strings.Contains(line, marker) {
			out = append(out, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
