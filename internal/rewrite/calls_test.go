package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardeum/sec-im-cleanup/internal/js"
)

func parseCall(t *testing.T, src string) *js.CallExpr {
	t.Helper()
	prog, err := js.Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)
	es, ok := prog.Body[0].(*js.ExprStmt)
	require.True(t, ok, "expected expression statement")
	call, ok := es.X.(*js.CallExpr)
	require.True(t, ok, "expected call expression")
	return call
}

func TestMatcherRemovable(t *testing.T) {
	t.Parallel()
	m := NewMatcher("console", "log", []string{"countEvent", "profileSectionStart"})

	tests := []struct {
		name string
		code string
		want bool
	}{
		{
			name: "sink call",
			code: "console.log(x);",
			want: true,
		},
		{
			name: "sink object with different method",
			code: "console.warn(x);",
			want: false,
		},
		{
			name: "different object with sink method",
			code: "logger.log(x);",
			want: false,
		},
		{
			name: "denylisted method on any receiver",
			code: "stats.countEvent('tx');",
			want: true,
		},
		{
			name: "denylisted method on nested receiver",
			code: "this.statistics.countEvent('tx');",
			want: true,
		},
		{
			name: "bare identifier call never matches",
			code: "countEvent('tx');",
			want: false,
		},
		{
			name: "bare sink method never matches",
			code: "log(x);",
			want: false,
		},
		{
			name: "sink behind nested receiver is not the sink",
			code: "a.console.log(x);",
			want: false,
		},
		{
			name: "optional chain to sink method",
			code: "console?.log(x);",
			want: true,
		},
		{
			name: "unrelated method",
			code: "stats.record('tx');",
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			call := parseCall(t, tt.code)
			assert.Equal(t, tt.want, m.Removable(call))
		})
	}
}

func TestMatcherIgnoresNonMemberCallees(t *testing.T) {
	t.Parallel()
	m := NewMatcher("console", "log", nil)

	call := parseCall(t, "(fn)();")
	assert.False(t, m.Removable(call))

	call = parseCall(t, "arr[0]();")
	assert.False(t, m.Removable(call))
}
