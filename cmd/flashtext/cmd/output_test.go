package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/ports"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Match lines: source, span, and color variants
// =============================================================================

func TestFormatMatches_Plain(t *testing.T) {
	lines := []matchLine{
		{Source: "a.txt", Keyword: "Java", Start: 7, End: 11},
		{Source: "a.txt", Keyword: "New York", Start: 20, End: 29},
	}
	assert.Equal(t, "Java\nNew York\n", formatMatches(lines, false, false, false))
}

func TestFormatMatches_SpansAndSource(t *testing.T) {
	lines := []matchLine{{Source: "a.txt", Keyword: "Java", Start: 7, End: 11}}
	assert.Equal(t, "7-11: Java\n", formatMatches(lines, true, false, false))
	assert.Equal(t, "a.txt: Java\n", formatMatches(lines, false, true, false))
	assert.Equal(t, "a.txt:7-11: Java\n", formatMatches(lines, true, true, false))
}

func TestFormatMatches_Color(t *testing.T) {
	lines := []matchLine{{Keyword: "Java", Start: 0, End: 4}}
	out := formatMatches(lines, false, false, true)
	assert.Equal(t, colorGreen+"Java"+colorReset+"\n", out)
}

func TestFormatMatches_Empty(t *testing.T) {
	assert.Empty(t, formatMatches(nil, true, true, true))
}

func TestFormatCounts(t *testing.T) {
	counts := map[string]int{"a.txt": 3, "b.txt": 0}
	assert.Equal(t, "3\n", formatCounts([]string{"a.txt"}, counts, false))
	assert.Equal(t, "a.txt:3\nb.txt:0\n", formatCounts([]string{"a.txt", "b.txt"}, counts, true))
}

// =============================================================================
// Daemon output
// =============================================================================

func TestFormatHealth(t *testing.T) {
	out := formatHealth(&socket.HealthResult{Status: "ok", KeywordCount: 12345, Uptime: "1m0s"})
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "1m0s")
	assert.Contains(t, out, "ok")
}

func TestFormatStats(t *testing.T) {
	s := &socket.StatsResult{
		KeywordCount:      2000000,
		CaseSensitive:     true,
		Tokenizer:         "words",
		PrefilterPatterns: 2000000,
		PrefilterSkips:    42,
		Extracts:          1500,
		Replaces:          7,
		BytesScanned:      5 * 1000 * 1000,
		P50Latency:        "1.2ms",
		Reloads:           3,
		LoadedAt:          time.Now().Add(-2 * time.Minute).Unix(),
		Sources: []socket.SourceInfo{
			{Kind: "file", Name: "brands.yaml", Entries: 1999990},
			{Kind: "file", Name: "gone.txt", Error: "not found"},
			{Kind: "set", Name: "default", Entries: 10},
		},
	}
	out := formatStats(s)

	assert.Contains(t, out, "2,000,000 (case-sensitive, words tokenizer)")
	assert.Contains(t, out, "42 texts skipped")
	assert.Contains(t, out, "1,500 extract, 7 replace")
	assert.Contains(t, out, "5.0 MB")
	assert.Contains(t, out, "p50 1.2ms")
	assert.Contains(t, out, "2 minutes ago, 3 reloads")
	assert.Contains(t, out, "brands.yaml")
	assert.Contains(t, out, "not found")
}

func TestFormatStats_NoPrefilter(t *testing.T) {
	out := formatStats(&socket.StatsResult{KeywordCount: 3, Tokenizer: "grouped"})
	assert.Contains(t, out, "case-insensitive, grouped tokenizer")
	assert.NotContains(t, out, "Prefilter")
	assert.NotContains(t, out, "Loaded")
}

// =============================================================================
// Keyword sets and entries
// =============================================================================

func TestFormatSets(t *testing.T) {
	assert.Contains(t, formatSets(nil, nil), "no keyword sets")

	sets := []ports.SetMeta{
		{Name: "brands", Count: 1200},
		{Name: "default", Count: 3, UpdatedAt: time.Now().Unix()},
	}
	out := formatSets(sets, []string{"default"})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "brands")
	assert.Contains(t, lines[1], "1,200 keywords")
	assert.NotContains(t, lines[1], "●")
	assert.Contains(t, lines[2], "●")
}

func TestFormatEntries(t *testing.T) {
	entries := []ports.Entry{
		{Keyword: "nyc", Clean: "New York City"},
		{Keyword: "Java", Clean: "Java"},
		{Keyword: "big apple", Clean: "New York"},
	}
	assert.Equal(t, "Java\nbig apple => New York\nnyc => New York City\n", formatEntries(entries))
	// input order is left alone
	assert.Equal(t, "nyc", entries[0].Keyword)
}
