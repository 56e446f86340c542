// flashtext extracts and replaces keywords in text in a single pass,
// independent of vocabulary size.
package main

import (
	"os"

	"github.com/corey/flashtext/cmd/flashtext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(cmd.ExitError)
	}
}
