package keyword

import (
	"iter"

	"github.com/corey/flashtext/internal/ports"
)

// Match is one extracted keyword occurrence. Start and End are byte offsets
// into the scanned text, End exclusive.
type Match struct {
	Keyword string `json:"keyword"` // clean word registered for the keyword
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

type scanState uint8

const (
	stateScanning scanState = iota
	stateExhausted
)

// Extractor walks a tokenized text against a trie and yields matches one at
// a time: greedy longest match at each position, non-overlapping, left to
// right. It is single-use; once Next reports false it stays exhausted.
//
// An Extractor only reads the trie. Registering or removing keywords while
// an Extractor is live is not supported.
type Extractor struct {
	tokens []ports.Token
	idx    int // next unconsumed token
	trie   *trie
	state  scanState
}

func newExtractor(t *trie, tokens []ports.Token) *Extractor {
	e := &Extractor{tokens: tokens, trie: t}
	if len(tokens) == 0 || t.count == 0 {
		e.state = stateExhausted
	}
	return e
}

// Next scans forward for the next match.
//
// Each attempt starts at the current token and follows trie edges as far as
// the text allows, remembering the deepest terminal seen. When the chain
// breaks after a terminal, only the breaking token is given back and the
// remembered match is emitted; tokens between the match and the break are
// not rescanned. A chain that breaks without any terminal restarts one token
// after its start. When the text runs out, the remembered match (if any) is
// the last one.
func (e *Extractor) Next() (Match, bool) {
	if e.state == stateExhausted {
		return Match{}, false
	}

	n := e.trie.root
	start := e.idx
	var longest Match
	found := false

	for e.idx < len(e.tokens) {
		tok := e.tokens[e.idx]
		e.idx++

		if child := n.child(e.trie.key(tok.Text)); child != nil {
			n = child
			if n.terminal {
				longest = Match{
					Keyword: n.clean,
					Start:   e.tokens[start].Offset,
					End:     tok.End(),
				}
				found = true
			}
			continue
		}

		if found {
			e.idx--
			return longest, true
		}
		// dead end: retry from the next token
		e.idx = start + 1
		n = e.trie.root
		start = e.idx
	}

	e.state = stateExhausted
	return longest, found
}

// Remaining returns an upper bound on the matches Next can still produce.
func (e *Extractor) Remaining() int {
	if e.state == stateExhausted {
		return 0
	}
	return len(e.tokens) - e.idx
}

// All drains the extractor as a sequence. Because the extractor is
// single-use, ranging over the sequence a second time yields nothing.
func (e *Extractor) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for {
			m, ok := e.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}
