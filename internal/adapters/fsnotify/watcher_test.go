package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Vocabulary file watcher: detect edits to watched files, trigger reload
// Expectation: one debounced callback per save, unrelated files ignored,
// nothing fires after Stop.
// =============================================================================

const testDebounce = 20 * time.Millisecond

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, files ...string) <-chan string {
	t.Helper()
	w, err := NewWatcher(WithDebounce(testDebounce))
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(files, func(path string) {
		changed <- path
	}))
	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "keywords.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("rust"), 0644))

	changed := startWatcher(t, vocab)
	require.NoError(t, os.WriteFile(vocab, []byte("rust\ngo"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, vocab, path)
}

func TestWatcher_DetectsCreateOfMissingFile(t *testing.T) {
	// Configured vocabularies may not exist yet.
	dir := t.TempDir()
	vocab := filepath.Join(dir, "later.yaml")

	changed := startWatcher(t, vocab)
	require.NoError(t, os.WriteFile(vocab, []byte("- go"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new file")
	assert.Equal(t, vocab, path)
}

func TestWatcher_DetectsDeletedFile(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("x"), 0644))

	changed := startWatcher(t, vocab)
	require.NoError(t, os.Remove(vocab))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for deleted file")
	assert.Equal(t, vocab, path)
}

func TestWatcher_DetectsRenameOver(t *testing.T) {
	// Editors often write a temp file and rename it over the original.
	dir := t.TempDir()
	vocab := filepath.Join(dir, "keywords.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("a"), 0644))

	changed := startWatcher(t, vocab)
	tmp := filepath.Join(dir, ".keywords.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0644))
	require.NoError(t, os.Rename(tmp, vocab))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for rename-over")
	assert.Equal(t, vocab, path)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "keywords.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("a"), 0644))

	changed := startWatcher(t, vocab)

	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "keywords.txt.swp"), []byte("x"), 0644)

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "should not have received callback for unwatched files")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "keywords.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("a"), 0644))

	changed := startWatcher(t, vocab)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(vocab, []byte{byte('a' + i)}, 0644))
	}

	_, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok)
	_, ok = waitForCallback(changed, 200*time.Millisecond)
	assert.False(t, ok, "burst of writes should fire once")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch([]string{filepath.Join(t.TempDir(), "no", "such", "file.txt")}, func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopCleanup(t *testing.T) {
	// After Stop(), no more callbacks fire.
	dir := t.TempDir()
	vocab := filepath.Join(dir, "keywords.txt")

	w, err := NewWatcher(WithDebounce(testDebounce))
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	err = w.Watch([]string{vocab}, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	os.WriteFile(vocab, []byte("nope"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 0, callCount, "callbacks fired after Stop()")
	mu.Unlock()

	// Double-stop should be safe
	assert.NoError(t, w.Stop())
}
