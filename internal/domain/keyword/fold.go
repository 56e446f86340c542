package keyword

import (
	"sync"

	"golang.org/x/text/cases"
)

// keyFunc maps a token to the key its trie edge is stored under. It is the
// trie's equality policy: two tokens match iff their keys are equal.
type keyFunc func(token string) string

func exactKey(token string) string { return token }

// Casers carry transform state and must not be shared between goroutines.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// foldKey applies full Unicode case folding, so "MASSE" and "Maße" share a
// key, as do the Kelvin sign and "k".
func foldKey(token string) string {
	if key, ok := foldASCII(token); ok {
		return key
	}
	c := folders.Get().(*cases.Caser)
	key := c.String(token)
	folders.Put(c)
	return key
}

// foldASCII folds pure-ASCII tokens without touching the Caser. For ASCII
// input full case folding is exactly A-Z -> a-z. ok is false when the token
// contains any non-ASCII byte.
func foldASCII(token string) (key string, ok bool) {
	upper := false
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c >= 0x80 {
			return "", false
		}
		if 'A' <= c && c <= 'Z' {
			upper = true
		}
	}
	if !upper {
		return token, true
	}
	b := make([]byte, len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b), true
}
