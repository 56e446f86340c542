// Package vocab loads keyword vocabularies from files.
//
// Supported formats, chosen by file extension:
//
//	.txt          one keyword per line, optionally "keyword=>clean word"
//	.yaml / .yml  dictionary {clean: [keyword, ...]}, a list of keywords,
//	              or a list of {keyword: ..., clean: ...} objects
//	.json         the same shapes as YAML
//
// Blank keywords are dropped; they can never match anything.
package vocab

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Separator splits a keyword from its clean word in text vocabularies.
const Separator = "=>"

// Extensions lists the file extensions Parse understands.
var Extensions = []string{".txt", ".yaml", ".yml", ".json"}

// Supported reports whether path has a vocabulary extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile reads and parses a single vocabulary file.
func LoadFile(path string) ([]ports.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read vocabulary")
	}
	return Parse(path, data)
}

// LoadFS parses every vocabulary file directly under dir.
// Files are loaded in sorted order so later files deterministically win
// when they redefine a keyword.
func LoadFS(fsys fs.FS, dir string) ([]ports.Entry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read vocabulary dir %q", dir)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var all []ports.Entry
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		parsed, err := Parse(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		all = append(all, parsed...)
	}
	return all, nil
}

// Parse decodes vocabulary data; name's extension selects the format.
func Parse(name string, data []byte) ([]ports.Entry, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", "":
		return ParseText(data), nil
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrapf(err, "parse %s", filepath.Base(name))
		}
		entries, err := fromValue(v)
		return entries, errors.Wrapf(err, "parse %s", filepath.Base(name))
	case ".json":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrapf(err, "parse %s", filepath.Base(name))
		}
		entries, err := fromValue(v)
		return entries, errors.Wrapf(err, "parse %s", filepath.Base(name))
	}
	return nil, errors.Errorf("unsupported vocabulary format %q", filepath.Ext(name))
}

// ParseText reads one keyword per line. "keyword=>clean" maps the keyword to
// a different clean word; "keyword=>" maps it to the empty string, which
// deletes it on replace. Lines starting with "#" are comments.
func ParseText(data []byte) []ports.Entry {
	var entries []ports.Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kw, clean, found := strings.Cut(line, Separator)
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if found {
			clean = strings.TrimSpace(clean)
		} else {
			clean = kw
		}
		entries = append(entries, ports.Entry{Keyword: kw, Clean: clean})
	}
	return entries
}

// fromValue walks a decoded YAML/JSON document.
func fromValue(v any) ([]ports.Entry, error) {
	switch doc := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return fromList(doc)
	case map[string]any:
		return fromDict(doc)
	}
	return nil, errors.Errorf("vocabulary must be a list or a mapping, got %T", v)
}

func fromList(items []any) ([]ports.Entry, error) {
	var entries []ports.Entry
	for i, item := range items {
		switch it := item.(type) {
		case string:
			if kw := strings.TrimSpace(it); kw != "" {
				entries = append(entries, ports.Entry{Keyword: kw, Clean: kw})
			}
		case map[string]any:
			kw, _ := it["keyword"].(string)
			kw = strings.TrimSpace(kw)
			if kw == "" {
				return nil, errors.Errorf("item %d: missing keyword", i)
			}
			clean, ok := it["clean"].(string)
			if !ok {
				clean = kw
			}
			entries = append(entries, ports.Entry{Keyword: kw, Clean: clean})
		default:
			return nil, errors.Errorf("item %d: unexpected %T", i, item)
		}
	}
	return entries, nil
}

// fromDict reads the {clean: [keywords]} form. Clean words are visited in
// sorted order so duplicate keywords resolve the same way every load.
func fromDict(dict map[string]any) ([]ports.Entry, error) {
	cleans := make([]string, 0, len(dict))
	for c := range dict {
		cleans = append(cleans, c)
	}
	sort.Strings(cleans)

	var entries []ports.Entry
	for _, clean := range cleans {
		switch kws := dict[clean].(type) {
		case string:
			if kw := strings.TrimSpace(kws); kw != "" {
				entries = append(entries, ports.Entry{Keyword: kw, Clean: clean})
			}
		case []any:
			for _, k := range kws {
				kw, ok := k.(string)
				if !ok {
					return nil, errors.Errorf("%q: keywords must be strings, got %T", clean, k)
				}
				if kw = strings.TrimSpace(kw); kw != "" {
					entries = append(entries, ports.Entry{Keyword: kw, Clean: clean})
				}
			}
		case nil:
		default:
			return nil, errors.Errorf("%q: unexpected %T", clean, kws)
		}
	}
	return entries, nil
}

// Apply registers entries into p in order and returns how many were applied.
func Apply(p *keyword.Processor, entries []ports.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Keyword == "" {
			continue
		}
		p.AddKeywordWithCleanWord(e.Keyword, e.Clean)
		n++
	}
	return n
}
