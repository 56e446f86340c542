// Package flashtext extracts and replaces keywords in text in a single pass.
//
// Keywords are split into tokens and stored in a trie; a scan walks the
// tokens of the text once, emitting the longest registered keyword at each
// position. The cost of a scan depends on the length of the text, not on the
// number of keywords.
//
//	p := flashtext.New(false)
//	p.AddKeywordWithCleanWord("big apple", "New York")
//	for m := range p.ExtractKeywordsWithSpan("I love the Big Apple") {
//		fmt.Println(m.Keyword, m.Start, m.End) // New York 11 20
//	}
package flashtext

import (
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/corey/flashtext/internal/ports"
)

type (
	// Processor holds a keyword vocabulary and scans text against it.
	Processor = keyword.Processor
	// Match is one keyword occurrence with byte offsets into the text.
	Match = keyword.Match
	// Extractor yields matches one at a time.
	Extractor = keyword.Extractor
	// Option configures a Processor at construction.
	Option = keyword.Option
	// Policy names a built-in tokenizer.
	Policy = tokenize.Policy
	// Token is one piece of tokenized text.
	Token = ports.Token
	// Tokenizer splits text into tokens covering it exactly.
	Tokenizer = ports.Tokenizer
)

// Built-in tokenizer policies.
const (
	Words   = tokenize.PolicyWords
	Grouped = tokenize.PolicyGrouped
)

// New creates an empty processor. caseSensitive selects exact token
// equality; otherwise tokens compare under Unicode case folding.
func New(caseSensitive bool, opts ...Option) *Processor {
	return keyword.New(caseSensitive, opts...)
}

// Default returns an empty case-sensitive processor with word tokenization.
func Default() *Processor {
	return keyword.Default()
}

// WithPolicy selects a built-in tokenizer.
func WithPolicy(p Policy) Option {
	return keyword.WithPolicy(p)
}

// WithTokenizer installs a custom tokenizer.
func WithTokenizer(t Tokenizer) Option {
	return keyword.WithTokenizer(t)
}

// ParsePolicy resolves a policy name such as "words" or "grouped".
func ParsePolicy(s string) (Policy, error) {
	return tokenize.ParsePolicy(s)
}
