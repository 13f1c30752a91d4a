package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCommentFiltering(t *testing.T) {
	t.Parallel()
	src := `// plain note
// eslint-disable-next-line no-console
const x = 1;
/* eslint-disable no-undef */
const y = 2;
`
	prog, err := Parse(src)
	require.NoError(t, err)

	tests := []struct {
		name     string
		opts     Options
		expected string
	}{
		{
			name: "marker keeps only matching comments",
			opts: Options{PreserveComments: true, Marker: "eslint-disable"},
			expected: `// eslint-disable-next-line no-console
const x = 1;
/* eslint-disable no-undef */
const y = 2;
`,
		},
		{
			name: "empty marker keeps everything",
			opts: Options{PreserveComments: true},
			expected: `// plain note
// eslint-disable-next-line no-console
const x = 1;
/* eslint-disable no-undef */
const y = 2;
`,
		},
		{
			name:     "preservation off drops all comments",
			opts:     Options{},
			expected: "const x = 1;\nconst y = 2;\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Print(prog, tt.opts))
		})
	}
}

func TestPrintTrailingComments(t *testing.T) {
	t.Parallel()
	prog, err := Parse("f();\n// eslint-disable\n")
	require.NoError(t, err)

	got := Print(prog, Options{PreserveComments: true, Marker: "eslint-disable"})
	assert.Equal(t, "f();\n// eslint-disable\n", got)
}

func TestPrintNormalizesFormatting(t *testing.T) {
	t.Parallel()
	prog, err := Parse("if(a){f( 1,2 )}\n")
	require.NoError(t, err)

	got := Print(prog, Options{})
	assert.Equal(t, "if (a) {\n  f(1, 2);\n}\n", got)
}

func TestPrintBracesElseCapturingThenBranch(t *testing.T) {
	t.Parallel()
	call := func(name string) Stmt {
		return &ExprStmt{X: &CallExpr{Callee: &Ident{Name: name}}}
	}

	t.Run("bare if without else stays bare", func(t *testing.T) {
		t.Parallel()
		prog := &Program{Body: []Stmt{
			&IfStmt{Cond: &Ident{Name: "a"}, Then: &IfStmt{Cond: &Ident{Name: "b"}, Then: call("f")}},
		}}
		assert.Equal(t, "if (a) if (b) f();\n", Print(prog, Options{}))
	})

	t.Run("else-less inner if is braced away from the outer else", func(t *testing.T) {
		t.Parallel()
		prog := &Program{Body: []Stmt{
			&IfStmt{
				Cond: &Ident{Name: "a"},
				Then: &IfStmt{Cond: &Ident{Name: "b"}, Then: call("f")},
				Else: call("g"),
			},
		}}
		assert.Equal(t, "if (a) {\n  if (b) f();\n} else g();\n", Print(prog, Options{}))
	})

	t.Run("loop body ending in an open if is braced too", func(t *testing.T) {
		t.Parallel()
		prog := &Program{Body: []Stmt{
			&IfStmt{
				Cond: &Ident{Name: "a"},
				Then: &WhileStmt{
					Cond: &Ident{Name: "p"},
					Body: &IfStmt{Cond: &Ident{Name: "b"}, Then: call("f")},
				},
				Else: call("g"),
			},
		}}
		assert.Equal(t, "if (a) {\n  while (p) if (b) f();\n} else g();\n", Print(prog, Options{}))
	})

	t.Run("closed inner chain prints inline", func(t *testing.T) {
		t.Parallel()
		prog := &Program{Body: []Stmt{
			&IfStmt{
				Cond: &Ident{Name: "a"},
				Then: &IfStmt{Cond: &Ident{Name: "b"}, Then: call("f"), Else: call("h")},
				Else: call("g"),
			},
		}}
		assert.Equal(t, "if (a) if (b) f(); else h();\nelse g();\n", Print(prog, Options{}))
	})
}

func TestPrintUnarySpacing(t *testing.T) {
	t.Parallel()
	// -(-x) must not fuse into a decrement
	prog, err := Parse("const v = - -x;\n")
	require.NoError(t, err)

	got := Print(prog, Options{})
	assert.Equal(t, "const v = - -x;\n", got)
}
