package ports

// Prefilter answers a cheap necessary condition before a full token scan:
// whether any registered keyword occurs in the text as a raw substring.
// A false answer guarantees the scan would find nothing. A true answer
// promises nothing.
//
// The prefilter must be rebuilt whenever the vocabulary changes. Rebuild is
// expected to be infrequent (on reload, not per request).
type Prefilter interface {
	MayMatch(text string) bool
}
