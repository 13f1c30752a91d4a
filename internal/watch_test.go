package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherLifecycle(t *testing.T) {
	t.Parallel()
	w, err := NewWatcher(testEngine(), zap.NewNop(), []string{".js"}, []string{"node_modules"}, true)
	require.NoError(t, err)

	require.NoError(t, w.Start(t.TempDir()))
	assert.Error(t, w.Start(t.TempDir()), "a running watcher cannot be started again")
	require.NoError(t, w.Stop())
}

func TestWatcherStartMissingRoot(t *testing.T) {
	t.Parallel()
	w, err := NewWatcher(testEngine(), zap.NewNop(), []string{".js"}, nil, true)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	assert.Error(t, w.Start("/nonexistent-root-for-watch"))
}
