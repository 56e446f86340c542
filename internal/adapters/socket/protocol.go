// Package socket implements a JSON-over-Unix-socket protocol for the flashtext daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// SocketPath returns the Unix socket path for a given project root.
// Format: /tmp/flashtext-{first12hex}.sock
func SocketPath(projectRoot string) string {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/flashtext-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodExtract  = "extract"
	MethodReplace  = "replace"
	MethodHealth   = "health"
	MethodStats    = "stats"
	MethodReload   = "reload"
	MethodShutdown = "shutdown"
)

// maxMessage bounds a single request or response line. Texts are sent
// inline, so this is also the largest document the daemon accepts.
const maxMessage = 16 * 1024 * 1024

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ExtractParams is the params for an extract request.
type ExtractParams struct {
	Text string `json:"text"`
}

// ExtractResult is the result of an extract request.
type ExtractResult struct {
	Matches  []MatchInfo `json:"matches"`
	Count    int         `json:"count"`
	ExitCode int         `json:"exit_code"`
	Elapsed  string      `json:"elapsed"`
}

// MatchInfo is a single match (wire format). Start and End are byte offsets
// into the request text.
type MatchInfo struct {
	Keyword string `json:"keyword"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// ReplaceParams is the params for a replace request.
type ReplaceParams struct {
	Text string `json:"text"`
}

// ReplaceResult is the result of a replace request.
type ReplaceResult struct {
	Text    string `json:"text"`
	Count   int    `json:"count"`
	Elapsed string `json:"elapsed"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status       string `json:"status"`
	KeywordCount int    `json:"keyword_count"`
	Uptime       string `json:"uptime"`
}

// SourceInfo describes one vocabulary source loaded into the engine.
type SourceInfo struct {
	Kind    string `json:"kind"` // "file" or "set"
	Name    string `json:"name"`
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}

// StatsResult is the result of a stats request.
type StatsResult struct {
	KeywordCount      int          `json:"keyword_count"`
	CaseSensitive     bool         `json:"case_sensitive"`
	Tokenizer         string       `json:"tokenizer"`
	Sources           []SourceInfo `json:"sources"`
	PrefilterPatterns int          `json:"prefilter_patterns"`
	PrefilterSkips    uint64       `json:"prefilter_skips"`
	Extracts          uint64       `json:"extracts"`
	Replaces          uint64       `json:"replaces"`
	BytesScanned      int64        `json:"bytes_scanned"`
	BytesPerMin       float64      `json:"bytes_per_min"`
	P50Latency        string       `json:"p50_latency,omitempty"`
	Reloads           int          `json:"reloads"`
	LoadedAt          int64        `json:"loaded_at"`
}

// ReloadResult is the result of a reload request.
type ReloadResult struct {
	KeywordCount int   `json:"keyword_count"`
	SourceCount  int   `json:"source_count"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}

// decodeInto converts a generically decoded JSON value (params or result)
// into a concrete type by re-marshaling it.
func decodeInto(v interface{}, out interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
