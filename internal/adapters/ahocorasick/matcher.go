// Package ahocorasick provides a substring prefilter for keyword scans using
// an Aho-Corasick automaton. It wraps the petar-dambovaliev/aho-corasick
// library for O(n + m + z) matching.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Prefilter reports whether a text contains any keyword as a raw substring.
// It only applies to case-sensitive vocabularies: a token-aligned exact match
// is always also a substring match, so a miss here proves the full scan would
// find nothing. Case-folded matching has no such guarantee and must not use it.
type Prefilter struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// NewPrefilter compiles the automaton from the given keywords.
// Empty and duplicate keywords are dropped.
func NewPrefilter(keywords []string) *Prefilter {
	seen := make(map[string]bool, len(keywords))
	p := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		p = append(p, kw)
	}

	f := &Prefilter{patterns: p}
	if len(p) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		f.automaton = builder.Build(p)
	}
	return f
}

// MayMatch returns false only when no keyword occurs anywhere in text.
// A nil Prefilter admits everything.
func (f *Prefilter) MayMatch(text string) bool {
	if f == nil {
		return true
	}
	if len(f.patterns) == 0 || len(text) == 0 {
		return false
	}
	iter := f.automaton.IterOverlappingByte([]byte(text))
	return iter.Next() != nil
}

// PatternCount returns the number of patterns in the automaton.
func (f *Prefilter) PatternCount() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
