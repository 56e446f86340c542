// Binary encoding for keyword set blobs.
//
// Entry list format (little-endian):
//
//	entryCount: uint32
//	per entry:
//	  keywordLen: uint32
//	  keyword:    [keywordLen]byte
//	  cleanLen:   uint32
//	  clean:      [cleanLen]byte
package bbolt

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/corey/flashtext/internal/ports"
)

// normalizeEntries collapses duplicate keywords (last entry wins), drops
// empty keywords and sorts by keyword for deterministic output.
func normalizeEntries(entries []ports.Entry) []ports.Entry {
	pos := make(map[string]int, len(entries))
	out := make([]ports.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Keyword == "" {
			continue
		}
		if i, ok := pos[e.Keyword]; ok {
			out[i].Clean = e.Clean
			continue
		}
		pos[e.Keyword] = len(out)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

// encodeEntries encodes normalized entries. A single buffer is pre-allocated
// to avoid repeated growth.
func encodeEntries(entries []ports.Entry) []byte {
	// Header: 4 bytes (entryCount)
	// Per entry: 4 + len(keyword) + 4 + len(clean)
	totalSize := 4
	for _, e := range entries {
		totalSize += 8 + len(e.Keyword) + len(e.Clean)
	}

	buf := make([]byte, totalSize)
	offset := 0
	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(entries)))
	offset += 4

	for _, e := range entries {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(e.Keyword)))
		offset += 4
		offset += copy(buf[offset:], e.Keyword)
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(e.Clean)))
		offset += 4
		offset += copy(buf[offset:], e.Clean)
	}
	return buf
}

// decodeEntries decodes an entry list. Every read is bounds-checked to avoid
// panics on corrupt data.
func decodeEntries(data []byte) ([]ports.Entry, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("entry list too short: %d bytes", len(data))
	}

	offset := 0
	count := binary.LittleEndian.Uint32(data[offset:])
	offset += 4

	// every entry needs at least 8 bytes of headers
	if uint64(count)*8 > uint64(len(data)-offset) {
		return nil, fmt.Errorf("entry count %d exceeds data size %d", count, len(data))
	}

	readString := func(i uint32, what string) (string, error) {
		if offset+4 > len(data) {
			return "", fmt.Errorf("truncated at entry %d %s length (offset %d)", i, what, offset)
		}
		n := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
		if n < 0 || offset+n > len(data) {
			return "", fmt.Errorf("truncated at entry %d %s (offset %d, need %d)", i, what, offset, n)
		}
		s := string(data[offset : offset+n])
		offset += n
		return s, nil
	}

	entries := make([]ports.Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		kw, err := readString(i, "keyword")
		if err != nil {
			return nil, err
		}
		clean, err := readString(i, "clean")
		if err != nil {
			return nil, err
		}
		entries = append(entries, ports.Entry{Keyword: kw, Clean: clean})
	}
	if offset != len(data) {
		return nil, fmt.Errorf("trailing %d bytes after %d entries", len(data)-offset, count)
	}
	return entries, nil
}
