package ports

// Watcher monitors vocabulary files and reports when any of them changes so
// the daemon can rebuild its keyword processor. Only one Watch call should be
// active at a time.
type Watcher interface {
	// Watch starts monitoring the given files. onChange is called with the
	// absolute path of the file that changed. The callback may be invoked
	// from any goroutine. Returns an error if a file's directory doesn't
	// exist or permissions are insufficient.
	Watch(files []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
