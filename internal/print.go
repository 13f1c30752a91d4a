package internal

import (
	"strings"

	"github.com/fatih/color"
)

var (
	fileStyle   = color.New(color.FgCyan, color.Bold)
	beforeStyle = color.New(color.FgRed)
	afterStyle  = color.New(color.FgGreen)
	ruleStyle   = color.New(color.FgYellow, color.Bold)
)

// FormatChange renders a before/after report for one changed file, used in
// dry-run mode.
func FormatChange(path, before, after string) string {
	var b strings.Builder
	b.WriteString(fileStyle.Sprint(path) + "\n")
	b.WriteString(ruleStyle.Sprint("--- before") + "\n")
	for _, line := range splitLines(before) {
		b.WriteString(beforeStyle.Sprintf("- %s", line) + "\n")
	}
	b.WriteString(ruleStyle.Sprint("+++ after") + "\n")
	for _, line := range splitLines(after) {
		b.WriteString(afterStyle.Sprintf("+ %s", line) + "\n")
	}
	return b.String()
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
