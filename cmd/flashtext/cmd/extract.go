package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	extractFlags   matchFlags
	extractSpans   bool
	extractJSON    bool
	extractCount   bool
	extractQuiet   bool
	extractColor   string
	extractNoColor bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] [file ...]",
	Short: "Print the keywords found in files or stdin",
	Long: "Scans each input once and prints every keyword occurrence, longest match first,\n" +
		"non-overlapping, left to right. Exit status is 0 if any keyword was found,\n" +
		"1 if none, 2 on error.",
	Args:          cobra.ArbitraryArgs,
	RunE:          runExtract,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	extractFlags.register(extractCmd)
	f := extractCmd.Flags()
	f.BoolVar(&extractSpans, "spans", false, "Print byte offsets of each match")
	f.BoolVar(&extractJSON, "json", false, "Print matches as JSON")
	f.BoolVarP(&extractCount, "count", "c", false, "Print the number of matches per input")
	f.BoolVarP(&extractQuiet, "quiet", "q", false, "Quiet mode (exit code only)")
	f.StringVar(&extractColor, "color", "auto", "Color output: auto, always, never")
	f.BoolVar(&extractNoColor, "no-color", false, "Suppress color output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := requireInput(args); err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		return exitStatus{ExitError}
	}
	inputs, err := readInputs(args, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		return exitStatus{ExitError}
	}

	m, err := openMatcher(projectRoot(), &extractFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		return exitStatus{ExitError}
	}

	var lines []matchLine
	counts := make(map[string]int, len(inputs))
	sources := make([]string, 0, len(inputs))
	for _, in := range inputs {
		matches, err := m.Extract(in.text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "extract: %s: %v\n", in.name, err)
			return exitStatus{ExitError}
		}
		sources = append(sources, in.name)
		counts[in.name] = len(matches)
		for _, match := range matches {
			lines = append(lines, matchLine{
				Source:  in.name,
				Keyword: match.Keyword,
				Start:   match.Start,
				End:     match.End,
			})
		}
	}

	withSource := len(inputs) > 1
	switch {
	case extractQuiet:
	case extractJSON:
		if lines == nil {
			lines = []matchLine{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lines); err != nil {
			fmt.Fprintf(os.Stderr, "extract: %v\n", err)
			return exitStatus{ExitError}
		}
	case extractCount:
		fmt.Print(formatCounts(sources, counts, withSource))
	default:
		useColor := resolveColor(extractColor, extractNoColor)
		fmt.Print(formatMatches(lines, extractSpans, withSource, useColor))
	}

	if len(lines) == 0 {
		return exitStatus{ExitNoMatch}
	}
	return exitStatus{ExitFound}
}
