package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Vocabulary import sources
// =============================================================================

func TestLoadVocabulary_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langs.txt")
	require.NoError(t, os.WriteFile(path, []byte("rust=>Java\ngo\n"), 0644))

	entries, err := loadVocabulary(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "rust", entries[0].Keyword)
	assert.Equal(t, "Java", entries[0].Clean)
}

func TestLoadVocabulary_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("nyc=>New York\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("sf=>San Francisco\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a vocabulary"), 0644))

	entries, err := loadVocabulary(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "New York", entries[0].Clean)
	assert.Equal(t, "San Francisco", entries[1].Clean)
}

func TestLoadVocabulary_Missing(t *testing.T) {
	_, err := loadVocabulary(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
