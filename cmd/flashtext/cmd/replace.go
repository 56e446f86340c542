package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	replaceFlags   matchFlags
	replaceInPlace bool
	replaceSummary bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace [flags] [file ...]",
	Short: "Substitute keywords with their clean words",
	Long: "Rewrites every keyword occurrence to its clean word and prints the result.\n" +
		"With --in-place, files are rewritten instead. Exit status is 0 if any\n" +
		"keyword was replaced, 1 if none, 2 on error.",
	Args:          cobra.ArbitraryArgs,
	RunE:          runReplace,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	replaceFlags.register(replaceCmd)
	f := replaceCmd.Flags()
	f.BoolVarP(&replaceInPlace, "in-place", "w", false, "Rewrite files in place")
	f.BoolVar(&replaceSummary, "summary", false, "Print replacement counts to stderr")
}

func runReplace(cmd *cobra.Command, args []string) error {
	if err := requireInput(args); err != nil {
		fmt.Fprintf(os.Stderr, "replace: %v\n", err)
		return exitStatus{ExitError}
	}
	inputs, err := readInputs(args, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replace: %v\n", err)
		return exitStatus{ExitError}
	}

	m, err := openMatcher(projectRoot(), &replaceFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replace: %v\n", err)
		return exitStatus{ExitError}
	}

	total := 0
	for _, in := range inputs {
		out, n, err := m.Replace(in.text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replace: %s: %v\n", in.name, err)
			return exitStatus{ExitError}
		}
		total += n

		if replaceInPlace && in.name != stdinName {
			if n > 0 {
				if err := writeFileKeepMode(in.name, out); err != nil {
					fmt.Fprintf(os.Stderr, "replace: %v\n", err)
					return exitStatus{ExitError}
				}
			}
		} else {
			fmt.Print(out)
		}
		if replaceSummary {
			fmt.Fprintf(os.Stderr, "⚡ %s: %d replaced\n", in.name, n)
		}
	}

	if total == 0 {
		return exitStatus{ExitNoMatch}
	}
	return exitStatus{ExitFound}
}

// writeFileKeepMode overwrites path with text, preserving its permissions.
func writeFileKeepMode(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
