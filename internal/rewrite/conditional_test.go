package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardeum/sec-im-cleanup/internal/js"
)

func removeCalls(t *testing.T, src string) string {
	t.Helper()
	prog, err := js.Parse(src)
	require.NoError(t, err)
	m := NewMatcher("console", "log", []string{"countEvent", "profileSectionStart"})
	return js.Print(RemoveCalls(prog, m), js.Options{})
}

func TestRemoveCalls(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{
			name: "top-level call removed",
			code: `f();
console.log(a);
g();
`,
			expected: `f();
g();
`,
		},
		{
			name: "then branch collapses to else",
			code: `if (c) {
  console.log(a);
} else {
  doWork();
}
`,
			expected: `doWork();
`,
		},
		{
			name: "else branch dropped",
			code: `if (c) {
  doWork();
} else {
  console.log(a);
}
`,
			expected: `if (c) {
  doWork();
}
`,
		},
		{
			name: "both branches removable removes the whole if",
			code: `if (c) {
  console.log(a);
} else {
  console.log(b);
}
`,
			expected: "",
		},
		{
			name: "if without else removed entirely",
			code: `if (c) {
  console.log(a);
}
`,
			expected: "",
		},
		{
			name: "bare branches collapse the same way",
			code: `if (c) console.log(a);
else doWork();
`,
			expected: `doWork();
`,
		},
		{
			name: "condition side effects are discarded with the branch",
			code: `if (check()) {
  console.log(a);
}
`,
			expected: "",
		},
		{
			name: "multi-statement branch keeps the if",
			code: `if (c) {
  console.log(a);
  doWork();
}
`,
			expected: `if (c) {
  doWork();
}
`,
		},
		{
			name: "branch emptied by multiple removals falls through to else",
			code: `if (c) {
  console.log(a);
  stats.countEvent(x);
} else {
  doWork();
}
`,
			expected: `doWork();
`,
		},
		{
			name: "collapsed multi-statement else is spliced in place",
			code: `before();
if (c) {
  console.log(a);
} else {
  first();
  second();
}
after();
`,
			expected: `before();
first();
second();
after();
`,
		},
		{
			name: "collapsed else keeps braces around lexical declarations",
			code: `if (c) {
  console.log(a);
} else {
  let x = 1;
  use(x);
}
let x = 2;
`,
			expected: `{
  let x = 1;
  use(x);
}
let x = 2;
`,
		},
		{
			name: "collapsed else keeps braces around a function declaration",
			code: `if (c) {
  console.log(a);
} else {
  function helper() {
    return 1;
  }
}
`,
			expected: `{
  function helper() {
    return 1;
  }
}
`,
		},
		{
			name: "var declarations splice out of a collapsed else",
			code: `if (c) {
  console.log(a);
} else {
  var x = 1;
  use(x);
}
`,
			expected: `var x = 1;
use(x);
`,
		},
		{
			name: "else-if arm collapses within the chain",
			code: `if (a) {
  f();
} else if (b) {
  console.log(x);
} else {
  g();
}
`,
			expected: `if (a) {
  f();
} else {
  g();
}
`,
		},
		{
			name: "nested if removed inside a surviving branch",
			code: `if (a) {
  if (b) {
    console.log(x);
  }
  doWork();
}
`,
			expected: `if (a) {
  doWork();
}
`,
		},
		{
			name: "function body calls removed",
			code: `function run() {
  console.log(a);
  doWork();
}
`,
			expected: `function run() {
  doWork();
}
`,
		},
		{
			name: "arrow body emptied to an empty function body",
			code: `const f = () => {
  console.log(a);
};
`,
			expected: `const f = () => {};
`,
		},
		{
			name: "loop body call removed",
			code: `for (const x of xs) {
  console.log(x);
  use(x);
}
`,
			expected: `for (const x of xs) {
  use(x);
}
`,
		},
		{
			name: "similar but non-matching calls survive",
			code: `console.warn(a);
countEvent(a);
logger.log(a);
`,
			expected: `console.warn(a);
countEvent(a);
logger.log(a);
`,
		},
		{
			name: "call arguments are not statements",
			code: `report(console.log);
`,
			expected: `report(console.log);
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, removeCalls(t, tt.code))
		})
	}
}

func TestRemoveCallsReusesUnchangedTree(t *testing.T) {
	t.Parallel()
	prog, err := js.Parse("doWork();\n")
	require.NoError(t, err)

	m := NewMatcher("console", "log", nil)
	out := RemoveCalls(prog, m)
	assert.Same(t, prog, out, "an untouched program should come back as-is")
}
