package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardeum/sec-im-cleanup/internal/js"
)

func simplify(t *testing.T, src string) string {
	t.Helper()
	prog, err := js.Parse(src)
	require.NoError(t, err)
	return js.Print(SimplifyBlocks(prog), js.Options{})
}

func TestSimplifyBlocks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{
			name: "single return unwrapped",
			code: `if (c) {
  return 1;
}
`,
			expected: `if (c) return 1;
`,
		},
		{
			name: "single expression unwrapped in both branches",
			code: `if (c) {
  f();
} else {
  g();
}
`,
			expected: `if (c) f();
else g();
`,
		},
		{
			name: "two statements keep their braces",
			code: `if (c) {
  f();
  g();
}
`,
			expected: `if (c) {
  f();
  g();
}
`,
		},
		{
			name: "nested if keeps braces so else binding cannot shift",
			code: `if (a) {
  if (b) {
    f();
  }
} else {
  bar();
}
`,
			expected: `if (a) {
  if (b) f();
} else bar();
`,
		},
		{
			name: "throw keeps braces",
			code: `if (c) {
  throw err;
}
`,
			expected: `if (c) {
  throw err;
}
`,
		},
		{
			name: "declaration keeps braces",
			code: `if (c) {
  let x = 1;
}
`,
			expected: `if (c) {
  let x = 1;
}
`,
		},
		{
			name: "loop in branch keeps braces",
			code: `if (c) {
  while (p) step();
}
`,
			expected: `if (c) {
  while (p) step();
}
`,
		},
		{
			name: "loop bodies are not simplified",
			code: `while (c) {
  f();
}
`,
			expected: `while (c) {
  f();
}
`,
		},
		{
			name: "branches inside function bodies simplified",
			code: `function h() {
  if (c) {
    return 1;
  }
  return 2;
}
`,
			expected: `function h() {
  if (c) return 1;
  return 2;
}
`,
		},
		{
			name: "else-if chain simplified arm by arm",
			code: `if (a) {
  f();
} else if (b) {
  g();
}
`,
			expected: `if (a) f();
else if (b) g();
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, simplify(t, tt.code))
		})
	}
}

func TestSimplifyBlocksIdempotent(t *testing.T) {
	t.Parallel()
	src := `if (c) {
  f();
  g();
} else h();
`
	once := simplify(t, src)
	assert.Equal(t, once, simplify(t, once))
}

func TestSimplifyBlocksReusesUnchangedTree(t *testing.T) {
	t.Parallel()
	prog, err := js.Parse("if (c) f();\n")
	require.NoError(t, err)
	assert.Same(t, prog, SimplifyBlocks(prog))
}
