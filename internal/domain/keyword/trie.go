package keyword

import (
	"sort"
	"strings"

	"github.com/corey/flashtext/internal/ports"
)

// node is one trie position. Children are owned exclusively by their parent.
type node struct {
	token    string // edge label as first inserted, used to list keywords back
	clean    string
	terminal bool
	children map[string]*node
}

func (n *node) child(key string) *node {
	if n.children == nil {
		return nil
	}
	return n.children[key]
}

// trie is a prefix tree over token keys. The key policy is fixed at
// construction and applies to every level.
type trie struct {
	root  *node
	count int // terminal nodes, not total nodes
	key   keyFunc
}

func newTrie(caseSensitive bool) *trie {
	key := foldKey
	if caseSensitive {
		key = exactKey
	}
	return &trie{root: &node{}, key: key}
}

// insert registers the token path with its clean word. The count only grows
// the first time a path becomes terminal; re-inserting overwrites the clean
// word in place. An empty path is a no-op: the root is never terminal.
func (t *trie) insert(tokens []ports.Token, clean string) bool {
	if len(tokens) == 0 {
		return false
	}
	n := t.root
	for _, tok := range tokens {
		k := t.key(tok.Text)
		next := n.child(k)
		if next == nil {
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			next = &node{token: tok.Text}
			n.children[k] = next
		}
		n = next
	}
	added := !n.terminal
	if added {
		t.count++
	}
	n.terminal = true
	n.clean = clean
	return added
}

// find returns the node at the end of the token path, or nil.
func (t *trie) find(tokens []ports.Token) *node {
	if len(tokens) == 0 {
		return nil
	}
	n := t.root
	for _, tok := range tokens {
		if n = n.child(t.key(tok.Text)); n == nil {
			return nil
		}
	}
	return n
}

// remove clears the terminal at the end of the token path and prunes every
// node left with neither a terminal nor children.
func (t *trie) remove(tokens []ports.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	path := make([]*node, 0, len(tokens)+1)
	keys := make([]string, len(tokens))
	n := t.root
	path = append(path, n)
	for i, tok := range tokens {
		keys[i] = t.key(tok.Text)
		if n = n.child(keys[i]); n == nil {
			return false
		}
		path = append(path, n)
	}
	if !n.terminal {
		return false
	}
	n.terminal = false
	n.clean = ""
	t.count--

	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.terminal || len(cur.children) > 0 {
			break
		}
		delete(path[i-1].children, keys[i-1])
	}
	return true
}

// walk visits every terminal path in key order, yielding the keyword text
// (rebuilt from first-inserted edge labels) and its clean word.
func (t *trie) walk(yield func(keyword, clean string) bool) {
	var parts []string
	var visit func(n *node) bool
	visit = func(n *node) bool {
		if n.terminal && !yield(strings.Join(parts, ""), n.clean) {
			return false
		}
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c := n.children[k]
			parts = append(parts, c.token)
			ok := visit(c)
			parts = parts[:len(parts)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	visit(t.root)
}
