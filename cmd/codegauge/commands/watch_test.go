package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWatchedSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"main.py", true},
		{"pkg/util.PY", true},
		{"notebook.ipynb", true},
		{"README.md", false},
		{"main.go", false},
		{"noext", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isWatchedSource(tt.path), tt.path)
	}
}

func TestIsHiddenDir(t *testing.T) {
	t.Parallel()

	assert.True(t, isHiddenDir(".git"))
	assert.True(t, isHiddenDir(".venv"))
	assert.False(t, isHiddenDir("src"))
}

func TestWatchTreeAddsNestedDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "sub"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o750))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	defer watcher.Close()

	wc := &WatchCommand{}
	require.NoError(t, wc.watchTree(watcher, root))

	watched := watcher.WatchList()
	assert.Contains(t, watched, root)
	assert.Contains(t, watched, filepath.Join(root, "pkg"))
	assert.Contains(t, watched, filepath.Join(root, "pkg", "sub"))
	assert.NotContains(t, watched, filepath.Join(root, ".git"))
}

func TestHandleEventFiltersIrrelevantChanges(t *testing.T) {
	t.Parallel()

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	defer watcher.Close()

	wc := &WatchCommand{}

	assert.True(t, wc.handleEvent(watcher, fsnotify.Event{Name: "a.py", Op: fsnotify.Write}))
	assert.True(t, wc.handleEvent(watcher, fsnotify.Event{Name: "a.py", Op: fsnotify.Remove}))
	assert.False(t, wc.handleEvent(watcher, fsnotify.Event{Name: "a.md", Op: fsnotify.Write}))
	assert.False(t, wc.handleEvent(watcher, fsnotify.Event{Name: "a.py", Op: fsnotify.Chmod}))
}

func TestHandleEventWatchesNewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	newDir := filepath.Join(root, "created")
	require.NoError(t, os.Mkdir(newDir, 0o750))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	defer watcher.Close()

	wc := &WatchCommand{}

	triggered := wc.handleEvent(watcher, fsnotify.Event{Name: newDir, Op: fsnotify.Create})
	assert.False(t, triggered)
	assert.Contains(t, watcher.WatchList(), newDir)
}
