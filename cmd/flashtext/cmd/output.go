package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/ports"
	"github.com/dustin/go-humanize"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// paint wraps s in an ANSI code when color is on.
func paint(on bool, code, s string) string {
	if !on {
		return s
	}
	return code + s + colorReset
}

// matchLine is one extracted keyword with the input it came from.
type matchLine struct {
	Source  string `json:"source,omitempty"`
	Keyword string `json:"keyword"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// formatMatches renders matches one per line, grep-style.
//
//	source:start-end: keyword    (with spans)
//	source: keyword              (multiple inputs)
//	keyword                      (single input)
func formatMatches(lines []matchLine, spans, withSource, color bool) string {
	var sb strings.Builder
	for _, m := range lines {
		if withSource {
			sb.WriteString(paint(color, colorCyan, m.Source))
			sb.WriteString(":")
		}
		if spans {
			sb.WriteString(paint(color, colorGray, fmt.Sprintf("%d-%d", m.Start, m.End)))
			sb.WriteString(":")
		}
		if withSource || spans {
			sb.WriteString(" ")
		}
		sb.WriteString(paint(color, colorGreen, m.Keyword))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatCounts renders per-input match counts for --count.
func formatCounts(sources []string, counts map[string]int, withSource bool) string {
	var sb strings.Builder
	for _, src := range sources {
		if withSource {
			sb.WriteString(fmt.Sprintf("%s:%d\n", src, counts[src]))
		} else {
			sb.WriteString(fmt.Sprintf("%d\n", counts[src]))
		}
	}
	return sb.String()
}

// formatHealth formats a HealthResult for terminal display.
func formatHealth(h *socket.HealthResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ flashtext daemon%s\n", colorBold, colorReset))
	sb.WriteString(fmt.Sprintf("  Status:    %s%s%s\n", colorGreen, h.Status, colorReset))
	sb.WriteString(fmt.Sprintf("  Keywords:  %s\n", humanize.Comma(int64(h.KeywordCount))))
	sb.WriteString(fmt.Sprintf("  Uptime:    %s\n", h.Uptime))
	return sb.String()
}

// formatStats formats a StatsResult for terminal display.
func formatStats(s *socket.StatsResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ flashtext stats%s\n", colorBold, colorReset))

	mode := "case-insensitive"
	if s.CaseSensitive {
		mode = "case-sensitive"
	}
	sb.WriteString(fmt.Sprintf("  Keywords:    %s (%s, %s tokenizer)\n",
		humanize.Comma(int64(s.KeywordCount)), mode, s.Tokenizer))
	if s.PrefilterPatterns > 0 {
		sb.WriteString(fmt.Sprintf("  Prefilter:   %s patterns, %s texts skipped\n",
			humanize.Comma(int64(s.PrefilterPatterns)), humanize.Comma(int64(s.PrefilterSkips))))
	}
	sb.WriteString(fmt.Sprintf("  Requests:    %s extract, %s replace\n",
		humanize.Comma(int64(s.Extracts)), humanize.Comma(int64(s.Replaces))))
	sb.WriteString(fmt.Sprintf("  Scanned:     %s", humanize.Bytes(uint64(max(s.BytesScanned, 0)))))
	if s.BytesPerMin > 0 {
		sb.WriteString(fmt.Sprintf(" (%s/min)", humanize.Bytes(uint64(s.BytesPerMin))))
	}
	sb.WriteString("\n")
	if s.P50Latency != "" {
		sb.WriteString(fmt.Sprintf("  Latency:     p50 %s\n", s.P50Latency))
	}
	if s.LoadedAt > 0 {
		sb.WriteString(fmt.Sprintf("  Loaded:      %s, %d reloads\n",
			humanize.Time(time.Unix(s.LoadedAt, 0)), s.Reloads))
	}

	if len(s.Sources) > 0 {
		sb.WriteString(fmt.Sprintf("%s  Sources%s\n", colorBold, colorReset))
		for _, src := range s.Sources {
			line := fmt.Sprintf("    %s%-4s%s %s", colorMagenta, src.Kind, colorReset, src.Name)
			if src.Error != "" {
				line += fmt.Sprintf("  %s%s%s", colorYellow, src.Error, colorReset)
			} else {
				line += fmt.Sprintf("  %s", humanize.Comma(int64(src.Entries)))
			}
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

// formatSets formats stored keyword set metadata.
func formatSets(sets []ports.SetMeta, loaded []string) string {
	if len(sets) == 0 {
		return "⚡ no keyword sets stored\n"
	}
	active := make(map[string]bool, len(loaded))
	for _, name := range loaded {
		active[name] = true
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d sets%s\n", colorBold, len(sets), colorReset))
	for _, s := range sets {
		marker := " "
		if active[s.Name] {
			marker = colorGreen + "●" + colorReset
		}
		updated := ""
		if s.UpdatedAt > 0 {
			updated = humanize.Time(time.Unix(s.UpdatedAt, 0))
		}
		sb.WriteString(fmt.Sprintf("  %s %s%s%s  %s keywords  %s%s%s\n",
			marker, colorCyan, s.Name, colorReset,
			humanize.Comma(int64(s.Count)), colorGray, updated, colorReset))
	}
	return sb.String()
}

// formatEntries lists set entries, "keyword => clean" when they differ.
func formatEntries(entries []ports.Entry) string {
	sorted := make([]ports.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Keyword < sorted[j].Keyword })

	var sb strings.Builder
	for _, e := range sorted {
		if e.Clean == "" || e.Clean == e.Keyword {
			sb.WriteString(e.Keyword + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s => %s\n", e.Keyword, e.Clean))
	}
	return sb.String()
}
