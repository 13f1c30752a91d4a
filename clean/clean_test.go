package clean

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shardeum/sec-im-cleanup/internal"
)

func defaultEngine() *internal.Engine {
	config := DefaultConfig()
	return internal.NewEngine(config.SinkObject, config.SinkMethod, config.Denylist, config.Marker)
}

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a.js":              "console.log(1);\nkeep();\n",
		"b.ts":              "const x = 1;\n",
		"broken.js":         "if (\n",
		"notes.md":          "not source\n",
		"node_modules/d.js": "console.log(1);\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	root := setupTree(t)

	results, summary, err := ProcessPath(
		context.Background(), zap.NewNop(), defaultEngine(), root, true, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, results, 3, "markdown and excluded files must not be visited")
	assert.Equal(t, Summary{Changed: 1, Skipped: 1, Failed: 1}, summary)

	// sorted by path
	assert.Equal(t, filepath.Join(root, "a.js"), results[0].Path)
	assert.Equal(t, filepath.Join(root, "b.ts"), results[1].Path)
	assert.Equal(t, filepath.Join(root, "broken.js"), results[2].Path)

	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].Result.Changed)
	assert.Equal(t, "keep();\n", results[0].Result.Output)

	assert.NoError(t, results[1].Err)
	assert.False(t, results[1].Result.Changed)

	assert.Error(t, results[2].Err, "a parse failure is reported, not fatal")
}

func TestProcessPathLiveRun(t *testing.T) {
	t.Parallel()
	root := setupTree(t)

	_, summary, err := ProcessPath(
		context.Background(), zap.NewNop(), defaultEngine(), root, false, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Changed)

	onDisk, err := os.ReadFile(filepath.Join(root, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "keep();\n", string(onDisk))

	// a failed file is never rewritten
	onDisk, err = os.ReadFile(filepath.Join(root, "broken.js"))
	require.NoError(t, err)
	assert.Equal(t, "if (\n", string(onDisk))
}

func TestProcessPathMissingRoot(t *testing.T) {
	t.Parallel()
	_, _, err := ProcessPath(
		context.Background(), zap.NewNop(), defaultEngine(),
		filepath.Join(t.TempDir(), "absent"), true, DefaultConfig())
	assert.Error(t, err)
}

func TestProcessPathCancelled(t *testing.T) {
	t.Parallel()
	root := setupTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ProcessPath(ctx, zap.NewNop(), defaultEngine(), root, true, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFromConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sink-object: logger\n"), 0o644))

	engine, config, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "logger", config.SinkObject)

	// logger.log is now the sink, console.log is not
	res, err := engine.RunSource([]byte("logger.log(1);\nconsole.log(1);\n"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1);\n", res.Output)
}

func TestSummaryString(t *testing.T) {
	t.Parallel()
	s := Summary{Changed: 2, Skipped: 5, Failed: 1}
	assert.Equal(t, "2 changed, 5 skipped, 1 failed", s.String())
}
