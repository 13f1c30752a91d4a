package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return NewEngine("console", "log", []string{"countEvent", "profileSectionStart"}, "eslint-disable")
}

func TestRunSource(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		source   string
		expected string
		changed  bool
	}{
		{
			name: "full pipeline strips calls and tightens structure",
			source: `// setup
const x = 1;

if (debug) {
  console.log(x);
} else {
  work(x);
}
`,
			expected: `const x = 1;
work(x);
`,
			changed: true,
		},
		{
			name: "marker comments survive while plain comments go",
			source: `// plain note
// eslint-disable-next-line no-unused-vars
const y = 2;
`,
			expected: `// eslint-disable-next-line no-unused-vars
const y = 2;
`,
			changed: true,
		},
		{
			name: "branch reduced to one statement loses its braces",
			source: `if (ok) {
  console.log(a);
  run();
}
`,
			expected: `if (ok) run();
`,
			changed: true,
		},
		{
			name:     "canonical source without targets is untouched",
			source:   "const x = 1;\nwork(x);\n",
			expected: "const x = 1;\nwork(x);\n",
			changed:  false,
		},
		{
			name:     "file emptied by removal",
			source:   "console.log(a);\n",
			expected: "",
			changed:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := testEngine().RunSource([]byte(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Output)
			assert.Equal(t, tt.changed, res.Changed)
		})
	}
}

func TestRunSourceIdempotent(t *testing.T) {
	t.Parallel()
	source := `if (debug) {
  console.log(state);
} else {
  advance();
  persist();
}
`
	engine := testEngine()
	first, err := engine.RunSource([]byte(source))
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := engine.RunSource([]byte(first.Output))
	require.NoError(t, err)
	assert.False(t, second.Changed, "a second run must be a no-op")
	assert.Equal(t, first.Output, second.Output)
}

func TestRunSourceKeepsElseBindingStable(t *testing.T) {
	t.Parallel()
	source := "if (a) if (b) work(); else console.log(x); else outer();\n"
	engine := testEngine()

	first, err := engine.RunSource([]byte(source))
	require.NoError(t, err)
	expected := `if (a) {
  if (b) work();
} else outer();
`
	assert.Equal(t, expected, first.Output)

	second, err := engine.RunSource([]byte(first.Output))
	require.NoError(t, err)
	assert.False(t, second.Changed, "the outer else must stay bound to the outer if")
	assert.Equal(t, first.Output, second.Output)
}

func TestRunSourceNormalizesNonCanonicalInput(t *testing.T) {
	t.Parallel()
	// no removable calls, but the formatting is not the printer's; the file
	// is reported changed because the output is always canonical text
	res, err := testEngine().RunSource([]byte("const x=1\n"))
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "const x = 1;\n", res.Output)

	again, err := testEngine().RunSource([]byte(res.Output))
	require.NoError(t, err)
	assert.False(t, again.Changed)
}

func TestRunSourceParseError(t *testing.T) {
	t.Parallel()
	_, err := testEngine().RunSource([]byte("if ("))
	assert.Error(t, err)
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	source := "console.log(a);\nrun();\n"

	t.Run("live run rewrites in place", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.js")
		require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

		res, err := testEngine().ProcessFile(path, false)
		require.NoError(t, err)
		assert.True(t, res.Changed)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "run();\n", string(onDisk))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("dry run never writes", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.js")
		require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

		res, err := testEngine().ProcessFile(path, true)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, "run();\n", res.Output)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, source, string(onDisk))
	})

	t.Run("unparsable file is left untouched", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "broken.js")
		require.NoError(t, os.WriteFile(path, []byte("if (\n"), 0o644))

		_, err := testEngine().ProcessFile(path, false)
		require.Error(t, err)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "if (\n", string(onDisk))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := testEngine().ProcessFile(filepath.Join(t.TempDir(), "nope.js"), false)
		assert.Error(t, err)
	})
}
