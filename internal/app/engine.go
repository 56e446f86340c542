package app

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cihub/seelog"
	"github.com/corey/flashtext/internal/adapters/ahocorasick"
	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/corey/flashtext/internal/domain/vocab"
	"github.com/corey/flashtext/internal/ports"
	"github.com/pkg/errors"
)

// maxMatchPrealloc caps the match slice capacity taken from the extractor's
// upper bound, which counts tokens rather than matches.
const maxMatchPrealloc = 64

// Source kinds reported in stats.
const (
	SourceFile = "file"
	SourceSet  = "set"
)

// EngineConfig selects what an Engine loads and how it matches.
type EngineConfig struct {
	CaseSensitive bool
	Policy        tokenize.Policy
	Vocabularies  []string           // absolute vocabulary file paths
	Sets          []string           // keyword set names in Store
	Store         ports.KeywordStore // nil = vocabulary files only
	Logger        seelog.LoggerInterface
}

// Engine serves extraction and replacement from a keyword processor that
// can be rebuilt while requests are in flight. Readers share the processor
// under an RWMutex; Reload builds a fresh one outside the lock and swaps it.
// Implements socket.Engine.
type Engine struct {
	cfg EngineConfig
	log seelog.LoggerInterface

	reloadMu sync.Mutex // serializes Reload; build runs outside mu

	mu        sync.RWMutex
	proc      *keyword.Processor
	prefilter ports.Prefilter // nil = scan everything
	patterns  int
	sources   []socket.SourceInfo
	loadedAt  time.Time
	reloads   int

	extracts atomic.Uint64
	replaces atomic.Uint64
	skips    atomic.Uint64

	statsMu    sync.Mutex
	throughput *ThroughputTracker
	latency    *LatencyTracker
}

// NewEngine loads every configured source and returns a ready engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = seelog.Disabled
	}
	if cfg.Policy == "" {
		cfg.Policy = tokenize.PolicyWords
	}
	e := &Engine{
		cfg:        cfg,
		log:        cfg.Logger,
		throughput: NewThroughputTracker(5 * time.Minute),
		latency:    NewLatencyTracker(30 * time.Minute),
	}
	b, err := e.build()
	if err != nil {
		return nil, err
	}
	e.swap(b)
	return e, nil
}

// built is a fully loaded processor waiting to be swapped in.
type built struct {
	proc      *keyword.Processor
	prefilter ports.Prefilter
	patterns  int
	sources   []socket.SourceInfo
}

// build loads vocabulary files, then stored sets, into a fresh processor.
// Later sources overwrite clean words of earlier ones. A configured file that
// does not exist yet is recorded and skipped; any other failure aborts.
func (e *Engine) build() (*built, error) {
	proc := keyword.New(e.cfg.CaseSensitive, keyword.WithPolicy(e.cfg.Policy))
	b := &built{proc: proc}

	for _, path := range e.cfg.Vocabularies {
		entries, err := vocab.LoadFile(path)
		if err != nil {
			if os.IsNotExist(errors.Cause(err)) {
				e.log.Warnf("vocabulary %s not found, skipping", path)
				b.sources = append(b.sources, socket.SourceInfo{Kind: SourceFile, Name: path, Error: "not found"})
				continue
			}
			return nil, errors.Wrapf(err, "load %s", path)
		}
		n := vocab.Apply(proc, entries)
		b.sources = append(b.sources, socket.SourceInfo{Kind: SourceFile, Name: path, Entries: n})
	}

	if e.cfg.Store != nil {
		for _, name := range e.cfg.Sets {
			entries, err := e.cfg.Store.LoadSet(name)
			if err != nil {
				return nil, errors.Wrapf(err, "load set %q", name)
			}
			n := vocab.Apply(proc, entries)
			b.sources = append(b.sources, socket.SourceInfo{Kind: SourceSet, Name: name, Entries: n})
		}
	}

	if e.cfg.CaseSensitive && !proc.IsEmpty() {
		var kws []string
		for kw := range proc.Keywords() {
			kws = append(kws, kw)
		}
		pf := ahocorasick.NewPrefilter(kws)
		b.prefilter = pf
		b.patterns = pf.PatternCount()
	}
	return b, nil
}

func (e *Engine) swap(b *built) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.proc = b.proc
	e.prefilter = b.prefilter
	e.patterns = b.patterns
	e.sources = b.sources
	e.loadedAt = time.Now()
}

// Reload rebuilds the processor from all sources. On failure the previous
// processor stays in service.
func (e *Engine) Reload() (socket.ReloadResult, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	start := time.Now()
	b, err := e.build()
	if err != nil {
		e.log.Errorf("reload failed, keeping previous vocabulary: %v", err)
		return socket.ReloadResult{}, err
	}
	e.swap(b)

	e.mu.Lock()
	e.reloads++
	e.mu.Unlock()

	elapsed := time.Since(start)
	e.log.Infof("reloaded %d keywords from %d sources in %v", b.proc.Len(), len(b.sources), elapsed)
	return socket.ReloadResult{
		KeywordCount: b.proc.Len(),
		SourceCount:  len(b.sources),
		ElapsedMs:    elapsed.Milliseconds(),
	}, nil
}

// Processor returns the processor currently in service. It must be treated
// as read-only; it is replaced, never mutated, by Reload.
func (e *Engine) Processor() *keyword.Processor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.proc
}

// KeywordCount returns the number of distinct keywords loaded.
func (e *Engine) KeywordCount() int {
	return e.Processor().Len()
}

// Extract returns every match in text with byte spans.
func (e *Engine) Extract(text string) []keyword.Match {
	start := time.Now()
	e.extracts.Add(1)
	defer e.record(len(text), start)

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.admit(text) {
		return nil
	}
	ex := e.proc.Extractor(text)
	matches := make([]keyword.Match, 0, min(ex.Remaining(), maxMatchPrealloc))
	for m := range ex.All() {
		matches = append(matches, m)
	}
	return matches
}

// Replace rewrites text with clean words and reports the replacement count.
func (e *Engine) Replace(text string) (string, int) {
	start := time.Now()
	e.replaces.Add(1)
	defer e.record(len(text), start)

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.admit(text) {
		return text, 0
	}
	return e.proc.ReplaceKeywordsCount(text)
}

// admit runs the prefilter. Caller holds mu.
func (e *Engine) admit(text string) bool {
	if e.proc.IsEmpty() || text == "" {
		return false
	}
	if e.prefilter != nil && !e.prefilter.MayMatch(text) {
		e.skips.Add(1)
		return false
	}
	return true
}

func (e *Engine) record(n int, start time.Time) {
	elapsed := time.Since(start)
	e.statsMu.Lock()
	e.throughput.Record(n)
	e.latency.Record(elapsed)
	e.statsMu.Unlock()
}

// Stats reports the loaded vocabulary and request counters.
func (e *Engine) Stats() socket.StatsResult {
	e.mu.RLock()
	result := socket.StatsResult{
		KeywordCount:      e.proc.Len(),
		CaseSensitive:     e.proc.CaseSensitive(),
		Tokenizer:         string(e.cfg.Policy),
		Sources:           append([]socket.SourceInfo(nil), e.sources...),
		PrefilterPatterns: e.patterns,
		Reloads:           e.reloads,
		LoadedAt:          e.loadedAt.Unix(),
	}
	e.mu.RUnlock()

	result.Extracts = e.extracts.Load()
	result.Replaces = e.replaces.Load()
	result.PrefilterSkips = e.skips.Load()

	e.statsMu.Lock()
	result.BytesScanned = e.throughput.TotalBytes()
	result.BytesPerMin = e.throughput.BytesPerMin()
	if p50 := e.latency.P50(); p50 > 0 {
		result.P50Latency = p50.String()
	}
	e.statsMu.Unlock()
	return result
}
