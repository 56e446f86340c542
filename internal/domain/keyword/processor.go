// Package keyword implements the keyword processor: a trie keyed by text
// tokens, scanned with greedy longest-match extraction. Extraction cost grows
// with the length of the text, not with the number of registered keywords.
//
// A Processor is single-writer: finish registering keywords before scanning,
// or guard it with a readers-exclude-writer lock. Any number of goroutines may
// extract from a Processor that is no longer being modified.
package keyword

import (
	"iter"

	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/corey/flashtext/internal/ports"
)

// Processor holds a keyword vocabulary and scans text against it.
type Processor struct {
	trie          *trie
	tokenizer     ports.Tokenizer
	caseSensitive bool
}

// Option configures a Processor at construction.
type Option func(*Processor)

// WithTokenizer sets the tokenizer used both for registering keywords and for
// scanning text. A nil tokenizer is ignored.
func WithTokenizer(t ports.Tokenizer) Option {
	return func(p *Processor) {
		if t != nil {
			p.tokenizer = t
		}
	}
}

// WithPolicy selects one of the built-in tokenizers.
func WithPolicy(policy tokenize.Policy) Option {
	return WithTokenizer(policy.Tokenizer())
}

// New creates an empty processor. caseSensitive selects exact token equality;
// otherwise tokens compare under Unicode case folding. The choice is fixed
// for the life of the processor.
func New(caseSensitive bool, opts ...Option) *Processor {
	p := &Processor{
		trie:          newTrie(caseSensitive),
		tokenizer:     tokenize.Words{},
		caseSensitive: caseSensitive,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Default returns an empty case-sensitive processor with word tokenization.
func Default() *Processor {
	return New(true)
}

// Len returns the number of registered keywords (not trie nodes).
func (p *Processor) Len() int { return p.trie.count }

// IsEmpty reports whether no keyword is registered.
func (p *Processor) IsEmpty() bool { return p.trie.count == 0 }

// CaseSensitive reports the matching policy chosen at construction.
func (p *Processor) CaseSensitive() bool { return p.caseSensitive }

// AddKeyword registers word as its own clean word.
func (p *Processor) AddKeyword(word string) {
	p.AddKeywordWithCleanWord(word, word)
}

// AddKeywordWithCleanWord registers word; matches of it report (and replace
// with) clean. Registering the same word again overwrites clean without
// changing Len. An empty word is ignored.
func (p *Processor) AddKeywordWithCleanWord(word, clean string) {
	p.trie.insert(p.tokenizer.Tokenize(word), clean)
}

// AddKeywordsFromIter registers every word in seq as its own clean word.
func (p *Processor) AddKeywordsFromIter(seq iter.Seq[string]) {
	for word := range seq {
		p.AddKeyword(word)
	}
}

// AddKeywordsWithCleanWordFromIter registers every (word, clean) pair in seq.
func (p *Processor) AddKeywordsWithCleanWordFromIter(seq iter.Seq2[string, string]) {
	for word, clean := range seq {
		p.AddKeywordWithCleanWord(word, clean)
	}
}

// RemoveKeyword unregisters word. Reports whether it was registered.
func (p *Processor) RemoveKeyword(word string) bool {
	return p.trie.remove(p.tokenizer.Tokenize(word))
}

// GetKeyword returns the clean word registered for word.
func (p *Processor) GetKeyword(word string) (string, bool) {
	n := p.trie.find(p.tokenizer.Tokenize(word))
	if n == nil || !n.terminal {
		return "", false
	}
	return n.clean, true
}

// Contains reports whether word is registered.
func (p *Processor) Contains(word string) bool {
	_, ok := p.GetKeyword(word)
	return ok
}

// Keywords yields every registered keyword with its clean word, ordered by
// token key. For case-insensitive processors the keyword text is spelled as
// it was first registered.
func (p *Processor) Keywords() iter.Seq2[string, string] {
	return p.trie.walk
}

// Extractor tokenizes text and returns a fresh single-use extractor over it.
func (p *Processor) Extractor(text string) *Extractor {
	return newExtractor(p.trie, p.tokenizer.Tokenize(text))
}

// ExtractKeywords yields the clean word of every match in text. The sequence
// is lazy and single-use.
func (p *Processor) ExtractKeywords(text string) iter.Seq[string] {
	e := p.Extractor(text)
	return func(yield func(string) bool) {
		for m := range e.All() {
			if !yield(m.Keyword) {
				return
			}
		}
	}
}

// ExtractKeywordsWithSpan yields every match in text with its byte span.
// The sequence is lazy and single-use.
func (p *Processor) ExtractKeywordsWithSpan(text string) iter.Seq[Match] {
	return p.Extractor(text).All()
}

// ReplaceKeywords returns text with every match replaced by its clean word.
// Text outside matches is preserved byte for byte.
func (p *Processor) ReplaceKeywords(text string) string {
	out, _ := replace(text, p.Extractor(text))
	return out
}

// ReplaceKeywordsCount is ReplaceKeywords that also reports how many
// matches were replaced.
func (p *Processor) ReplaceKeywordsCount(text string) (string, int) {
	return replace(text, p.Extractor(text))
}
