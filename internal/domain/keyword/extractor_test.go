package keyword

import (
	"slices"
	"testing"

	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Extractor: greedy longest match with backtracking
// Expectation: matches never overlap, come out left to right, and the longest
// keyword starting at each scan position wins.
// =============================================================================

func spans(p *Processor, text string) []Match {
	return slices.Collect(p.ExtractKeywordsWithSpan(text))
}

func newWith(caseSensitive bool, words ...string) *Processor {
	p := New(caseSensitive)
	p.AddKeywordsFromIter(slices.Values(words))
	return p
}

func TestExtract_GreedyLongestMatch(t *testing.T) {
	p := newWith(true, "hello", "hello world")
	assert.Equal(t, []Match{{"hello world", 0, 11}}, spans(p, "hello world"))
}

func TestExtract_NoNesting(t *testing.T) {
	p := newWith(true, "hello", "world", "hello world")
	assert.Equal(t, []Match{
		{"hello", 0, 5},
		{"hello world", 6, 17},
	}, spans(p, "hello hello world"))
}

func TestExtract_NestedShorterSuppressed(t *testing.T) {
	p := newWith(true, "machine learning", "learning")
	assert.Equal(t, []Match{{"machine learning", 0, 16}}, spans(p, "machine learning rocks"))
}

func TestExtract_DeadEndRestartsOneTokenLater(t *testing.T) {
	p := newWith(true, "big apple pie", "apple")
	assert.Equal(t, []Match{{"apple", 4, 9}}, spans(p, "big apple tart"))
}

func TestExtract_ChainRunsOffEndWithoutMatch(t *testing.T) {
	// the text ends inside "new york city" with no terminal seen: extraction
	// stops there, "york" is never tried on its own
	p := newWith(true, "new york city", "york")
	assert.Empty(t, spans(p, "new york"))
	assert.Equal(t, []Match{{"york", 4, 8}}, spans(p, "new york!"))
}

func TestExtract_BreakGivesBackOnlyBreakingToken(t *testing.T) {
	// "a" matches, the chain continues toward "a b c" and breaks at "x".
	// Only "x" is given back, so "b" between the match and the break is
	// consumed by the failed chain.
	p := newWith(true, "a", "a b c", "b")
	assert.Equal(t, []Match{{"a", 0, 1}}, spans(p, "a b x"))
	assert.Equal(t, []Match{{"a", 0, 1}}, spans(p, "a b"))
	assert.Equal(t, []Match{{"a", 0, 1}, {"b", 6, 7}}, spans(p, "a b x b"))
}

func TestExtract_ResumesAtBreakingToken(t *testing.T) {
	p := newWith(true, "hello", "world")
	assert.Equal(t, []Match{{"hello", 0, 5}, {"world", 6, 11}}, spans(p, "hello world"))
}

func TestExtract_MatchAtEndOfText(t *testing.T) {
	p := newWith(true, "Rust")
	assert.Equal(t, []Match{{"Rust", 7, 11}}, spans(p, "I love Rust"))
}

func TestExtract_TokenAligned(t *testing.T) {
	p := newWith(true, "cat")
	assert.Empty(t, spans(p, "concatenate"))
	assert.Equal(t, []Match{{"cat", 4, 7}}, spans(p, "the cat."))
}

func TestExtract_AdjacentMatches(t *testing.T) {
	p := newWith(true, "a", "b")
	assert.Equal(t, []Match{{"a", 0, 1}, {"b", 2, 3}, {"a", 4, 5}}, spans(p, "a b a"))
}

func TestExtract_ReportsCleanWord(t *testing.T) {
	p := New(true)
	p.AddKeywordWithCleanWord("Big Apple", "New York")
	assert.Equal(t, []Match{{"New York", 3, 12}}, spans(p, "to Big Apple now"))
}

func TestExtract_CaseInsensitiveReportsRegisteredText(t *testing.T) {
	p := newWith(false, "Rust")
	assert.Equal(t, []Match{{"Rust", 7, 11}}, spans(p, "i love RUST"))
	assert.Equal(t, []string{"Rust", "Rust"}, slices.Collect(p.ExtractKeywords("rust or rUsT")))
}

func TestExtract_CaseSensitiveIgnoresOtherCasing(t *testing.T) {
	p := newWith(true, "Rust")
	assert.Empty(t, spans(p, "i love RUST"))
}

func TestExtract_UnicodeFolding(t *testing.T) {
	p := newWith(false, "Maße")
	assert.Equal(t, []Match{{"Maße", 4, 9}}, spans(p, "Die MASSE"))
}

func TestExtract_EmptyInputs(t *testing.T) {
	assert.Empty(t, spans(New(true), "nothing registered here"))
	assert.Empty(t, spans(newWith(true, "x"), ""))
}

func TestExtract_SingleUse(t *testing.T) {
	p := newWith(true, "go")
	seq := p.ExtractKeywords("go go go")
	assert.Len(t, slices.Collect(seq), 3)
	assert.Empty(t, slices.Collect(seq), "sequence is exhausted after one pass")
}

func TestExtractor_NextAndRemaining(t *testing.T) {
	p := newWith(true, "go")
	e := p.Extractor("go home")
	assert.Equal(t, 3, e.Remaining())

	m, ok := e.Next()
	require.True(t, ok)
	assert.Equal(t, Match{"go", 0, 2}, m)

	_, ok = e.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, e.Remaining())

	_, ok = e.Next()
	assert.False(t, ok, "stays exhausted")
}

func TestExtract_EarlyBreak(t *testing.T) {
	p := newWith(true, "go")
	var got []string
	for kw := range p.ExtractKeywords("go go go") {
		got = append(got, kw)
		break
	}
	assert.Equal(t, []string{"go"}, got)
}

// Tokenization policy decides whether multi-character punctuation keywords
// line up with the text.
func TestExtract_PunctuationPolicy(t *testing.T) {
	words := New(true, WithPolicy(tokenize.PolicyWords))
	words.AddKeyword("wait...")
	grouped := New(true, WithPolicy(tokenize.PolicyGrouped))
	grouped.AddKeyword("wait...")

	assert.Equal(t, []Match{{"wait...", 0, 7}}, spans(words, "wait... what"))
	assert.Equal(t, []Match{{"wait...", 0, 7}}, spans(grouped, "wait... what"))

	// four dots: the word policy still sees "wait" + three dots; the grouped
	// policy sees one "...." token that is not registered
	assert.Equal(t, []Match{{"wait...", 0, 7}}, spans(words, "wait.... what"))
	assert.Empty(t, spans(grouped, "wait.... what"))
}

func TestExtract_NonOverlappingOrderedProperty(t *testing.T) {
	p := newWith(false, "new", "new york", "york city", "city", "new york city hall", "hall")
	text := "New York City Hall and new york city, then York City again and city hall"
	ms := spans(p, text)
	require.NotEmpty(t, ms)
	for i, m := range ms {
		assert.Less(t, m.Start, m.End)
		if i > 0 {
			assert.LessOrEqual(t, ms[i-1].End, m.Start)
		}
	}
	assert.Equal(t, Match{"new york city hall", 0, 18}, ms[0])
}
