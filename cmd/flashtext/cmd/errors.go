package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/corey/flashtext/internal/adapters/socket"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when a bbolt open fails due to
// lock contention. The daemon only holds the lock while reloading, so a
// persistent lock means some other process has the database open.
func diagnoseDBLock(root string) string {
	sockPath := socket.SocketPath(root)
	client := socket.NewClient(sockPath)

	if client.Ping() {
		return "database is busy (the daemon may be reloading)\n" +
			"  → retry in a moment\n" +
			"  → if it persists:  flashtext daemon stop"
	}

	if _, err := os.Stat(sockPath); err == nil {
		return fmt.Sprintf("database is locked and the daemon socket is not responding\n"+
			"  → a previous daemon may have crashed\n"+
			"  → find the process:  ps aux | grep 'flashtext daemon'\n"+
			"  → kill it:           kill <PID>\n"+
			"  → clean up socket:   rm %s", sockPath)
	}

	return "database is locked by another process\n" +
		"  → find the process:  ps aux | grep flashtext\n" +
		"  → kill it:           kill <PID>\n" +
		"  → then retry your command"
}

// wrapStoreError adds lock diagnostics to store errors.
func wrapStoreError(root string, err error) error {
	if isDBLockError(err) {
		return fmt.Errorf("%w\n%s", err, diagnoseDBLock(root))
	}
	return err
}
