package internal

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatChange(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	got := FormatChange("src/app.js", "console.log(a);\nrun();\n", "run();\n")

	expected := `src/app.js
--- before
- console.log(a);
- run();
+++ after
+ run();
`
	assert.Equal(t, expected, got)
}
