package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corey/flashtext/internal/adapters/bbolt"
	"github.com/corey/flashtext/internal/app"
	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/corey/flashtext/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Input reading
// =============================================================================

func TestReadInputs_StdinDefault(t *testing.T) {
	inputs, err := readInputs(nil, strings.NewReader("I love Rust"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, stdinName, inputs[0].name)
	assert.Equal(t, "I love Rust", inputs[0].text)
}

func TestReadInputs_FilesAndDash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	inputs, err := readInputs([]string{path, "-"}, strings.NewReader("piped"))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, path, inputs[0].name)
	assert.Equal(t, "hello world", inputs[0].text)
	assert.Equal(t, "piped", inputs[1].text)
}

func TestReadInputs_MissingFile(t *testing.T) {
	_, err := readInputs([]string{filepath.Join(t.TempDir(), "nope.txt")}, strings.NewReader(""))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// =============================================================================
// Flag resolution against project config
// =============================================================================

func TestMatchFlags_Overrides(t *testing.T) {
	assert.False(t, (&matchFlags{}).overrides())
	assert.True(t, (&matchFlags{vocabs: []string{"a.txt"}}).overrides())
	assert.True(t, (&matchFlags{sets: []string{"brands"}}).overrides())
	assert.True(t, (&matchFlags{ignoreCase: true}).overrides())
	assert.True(t, (&matchFlags{tokenizer: "grouped"}).overrides())
	assert.True(t, (&matchFlags{noDaemon: true}).overrides())
}

func TestMatchFlags_EngineConfigDefaults(t *testing.T) {
	root := t.TempDir()
	pc := app.DefaultProjectConfig()
	pc.Vocabularies = []string{"brands.yaml"}

	cfg, err := (&matchFlags{}).engineConfig(root, pc)
	require.NoError(t, err)
	assert.False(t, cfg.CaseSensitive)
	assert.Equal(t, tokenize.PolicyWords, cfg.Policy)
	assert.Equal(t, []string{filepath.Join(root, "brands.yaml")}, cfg.Vocabularies)
	assert.Equal(t, []string{app.DefaultSet}, cfg.Sets)
}

func TestMatchFlags_EngineConfigOverrides(t *testing.T) {
	root := t.TempDir()
	vocabPath := filepath.Join(root, "extra.txt")
	require.NoError(t, os.WriteFile(vocabPath, []byte("rust=>Rust\n"), 0644))

	pc := app.DefaultProjectConfig()
	pc.Vocabularies = []string{"brands.yaml"}

	f := &matchFlags{vocabs: []string{vocabPath}, caseSensitive: true, tokenizer: "grouped"}
	cfg, err := f.engineConfig(root, pc)
	require.NoError(t, err)
	assert.True(t, cfg.CaseSensitive)
	assert.Equal(t, tokenize.PolicyGrouped, cfg.Policy)
	assert.Equal(t, []string{vocabPath}, cfg.Vocabularies)
	assert.Empty(t, cfg.Sets, "explicit sources replace the configured ones")
}

func TestMatchFlags_EngineConfigErrors(t *testing.T) {
	root := t.TempDir()
	pc := app.DefaultProjectConfig()

	_, err := (&matchFlags{ignoreCase: true, caseSensitive: true}).engineConfig(root, pc)
	assert.Error(t, err)

	_, err = (&matchFlags{tokenizer: "regex"}).engineConfig(root, pc)
	assert.Error(t, err)

	_, err = (&matchFlags{vocabs: []string{filepath.Join(root, "missing.txt")}}).engineConfig(root, pc)
	assert.Error(t, err)
}

// =============================================================================
// Local matcher: vocabulary file plus stored set
// =============================================================================

func TestOpenMatcher_Local(t *testing.T) {
	root := t.TempDir()
	paths := app.NewPaths(root)
	require.NoError(t, paths.EnsureDirs())

	vocabPath := filepath.Join(root, "langs.txt")
	require.NoError(t, os.WriteFile(vocabPath, []byte("rust => Java\n"), 0644))
	require.NoError(t, bbolt.NewPathStore(paths.DB).SaveSet("cities", []ports.Entry{
		{Keyword: "big apple", Clean: "New York"},
	}))

	f := &matchFlags{vocabs: []string{vocabPath}, sets: []string{"cities"}, noDaemon: true}
	m, err := openMatcher(root, f)
	require.NoError(t, err)

	matches, err := m.Extract("I love rust and the big apple")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Java", matches[0].Keyword)
	assert.Equal(t, 7, matches[0].Start)
	assert.Equal(t, 11, matches[0].End)
	assert.Equal(t, "New York", matches[1].Keyword)

	out, n, err := m.Replace("I love Rust")
	require.NoError(t, err)
	assert.Equal(t, "I love Java", out)
	assert.Equal(t, 1, n)
}

// =============================================================================
// Exit codes
// =============================================================================

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitFound, ExitCode(exitStatus{ExitFound}))
	assert.Equal(t, ExitNoMatch, ExitCode(exitStatus{ExitNoMatch}))
	assert.Equal(t, ExitError, ExitCode(exitStatus{ExitError}))
	assert.Equal(t, -1, ExitCode(errors.New("boom")))
	assert.Equal(t, "no keyword found", exitStatus{ExitNoMatch}.Error())
}

func TestIsDBLockError(t *testing.T) {
	assert.False(t, isDBLockError(nil))
	assert.True(t, isDBLockError(errors.New("bbolt open: timeout")))
	assert.False(t, isDBLockError(errors.New("permission denied")))
}
