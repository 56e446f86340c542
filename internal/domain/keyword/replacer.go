package keyword

import "strings"

// replace splices clean words into text over every match the extractor
// produces. Unmatched bytes are copied verbatim; prevEnd tracks the source
// offset so replacements of any length leave later spans correct. The
// second result is the number of matches replaced.
func replace(text string, e *Extractor) (string, int) {
	m, ok := e.Next()
	if !ok {
		return text, 0
	}

	var sb strings.Builder
	sb.Grow(len(text))
	prevEnd, n := 0, 0
	for ; ok; m, ok = e.Next() {
		sb.WriteString(text[prevEnd:m.Start])
		sb.WriteString(m.Keyword)
		prevEnd = m.End
		n++
	}
	sb.WriteString(text[prevEnd:])
	return sb.String(), n
}
