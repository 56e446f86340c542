// Package tokenize splits text into the tokens that label keyword trie edges.
// Every tokenizer here partitions its input exactly: concatenating the token
// texts reproduces the input byte for byte, including invalid UTF-8.
package tokenize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/corey/flashtext/internal/ports"
	"github.com/rivo/uniseg"
)

// Policy names a tokenization granularity.
type Policy string

const (
	// PolicyWords splits on Unicode (UAX #29) word boundaries. Every
	// punctuation mark is its own token; runs of horizontal whitespace stay
	// together.
	PolicyWords Policy = "words"

	// PolicyGrouped splits into maximal runs of one character class:
	// word characters, whitespace, or everything else. "..." and "=>" are
	// single tokens under this policy.
	PolicyGrouped Policy = "grouped"
)

// Policies lists every supported policy in display order.
var Policies = []Policy{PolicyWords, PolicyGrouped}

// ParsePolicy validates a policy name. The empty string selects PolicyWords.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyWords:
		return PolicyWords, nil
	case PolicyGrouped:
		return PolicyGrouped, nil
	}
	return "", fmt.Errorf("unknown tokenizer %q (want one of: words, grouped)", s)
}

// Tokenizer returns the tokenizer implementing the policy.
// Unknown policies fall back to PolicyWords.
func (p Policy) Tokenizer() ports.Tokenizer {
	if p == PolicyGrouped {
		return Grouped{}
	}
	return Words{}
}

// Words tokenizes on UAX #29 word boundaries.
type Words struct{}

// Tokenize implements ports.Tokenizer.
func (Words) Tokenize(text string) []ports.Token {
	if len(text) == 0 {
		return nil
	}
	tokens := make([]ports.Token, 0, len(text)/3+1)
	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		tokens = append(tokens, ports.Token{Offset: offset, Text: word})
		offset += len(word)
	}
	return tokens
}

// Grouped tokenizes into runs of a single character class.
type Grouped struct{}

type runeClass uint8

const (
	classWord runeClass = iota
	classSpace
	classSymbol
)

func classify(r rune) runeClass {
	switch {
	case r == utf8.RuneError:
		return classSymbol
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_':
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classSymbol
	}
}

// Tokenize implements ports.Tokenizer.
func (Grouped) Tokenize(text string) []ports.Token {
	if len(text) == 0 {
		return nil
	}
	var tokens []ports.Token
	start := 0
	r, size := utf8.DecodeRuneInString(text)
	cur := classify(r)
	for i := size; i < len(text); i += size {
		r, size = utf8.DecodeRuneInString(text[i:])
		c := classify(r)
		if c != cur {
			tokens = append(tokens, ports.Token{Offset: start, Text: text[start:i]})
			start = i
			cur = c
		}
	}
	return append(tokens, ports.Token{Offset: start, Text: text[start:]})
}
