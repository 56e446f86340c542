package cmd

import "fmt"

// Exit codes, grep-style.
const (
	ExitFound   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// exitStatus is returned by extract/replace to signal a specific exit code.
type exitStatus struct{ code int }

func (e exitStatus) Error() string {
	switch e.code {
	case ExitFound:
		return ""
	case ExitNoMatch:
		return "no keyword found"
	default:
		return fmt.Sprintf("error (exit %d)", e.code)
	}
}

// ExitCode extracts the exit code from an exitStatus error.
// Returns -1 if the error is not an exitStatus.
func ExitCode(err error) int {
	if es, ok := err.(exitStatus); ok {
		return es.code
	}
	return -1
}
