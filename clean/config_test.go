package clean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	assert.Equal(t, "console", config.SinkObject)
	assert.Equal(t, "log", config.SinkMethod)
	assert.Contains(t, config.Denylist, "countEvent")
	assert.Contains(t, config.Denylist, "playbackLogNote")
	assert.Equal(t, "eslint-disable", config.Marker)
	assert.Equal(t, []string{".js", ".ts"}, config.Extensions)
	assert.Contains(t, config.ExcludeDirs, "node_modules")
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `sink-object: logger
sink-method: debug
denylist:
  - traceCall
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		config, err := ParseConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "logger", config.SinkObject)
		assert.Equal(t, "debug", config.SinkMethod)
		assert.Equal(t, []string{"traceCall"}, config.Denylist)
		// untouched fields keep their defaults
		assert.Equal(t, "eslint-disable", config.Marker)
		assert.Equal(t, []string{".js", ".ts"}, config.Extensions)
	})

	t.Run("explicit missing path is an error", func(t *testing.T) {
		t.Parallel()
		_, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sink-object: [unclosed\n"), 0o644))

		_, err := ParseConfig(path)
		assert.Error(t, err)
	})

	t.Run("empty extensions fall back to defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("extensions: []\n"), 0o644))

		config, err := ParseConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{".js", ".ts"}, config.Extensions)
	})
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, WriteDefault(path))

	config, err := ParseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}
