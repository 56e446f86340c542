package app

import (
	"path/filepath"
)

// onFileChanged handles a create/modify/delete event for a watched file.
// Vocabulary files and the set database rebuild the processor. Config
// changes only take effect on restart, since they can change the socket,
// port, and case policy under live clients.
func (a *App) onFileChanged(absPath string) {
	if filepath.Clean(absPath) == filepath.Clean(a.Paths.Config) {
		a.Log.Warnf("%s changed; restart the daemon to apply", absPath)
		return
	}

	a.Log.Infof("%s changed, reloading", absPath)
	// On failure Reload logs and keeps the previous vocabulary live.
	a.Engine.Reload()
}
