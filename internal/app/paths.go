package app

import (
	"os"
	"path/filepath"
)

// DirName is the project-local data directory.
const DirName = ".flashtext"

// Paths holds all resolved filesystem paths for the .flashtext/ project directory.
// All fields are pre-computed strings.
type Paths struct {
	Root   string // .flashtext/
	DB     string // .flashtext/flashtext.db
	Config string // .flashtext/config.yaml

	LogDir    string // .flashtext/log/
	DaemonLog string // .flashtext/log/daemon.log

	RunDir   string // .flashtext/run/
	PIDFile  string // .flashtext/run/daemon.pid
	PortFile string // .flashtext/run/http.port
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, DirName)
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "flashtext.db"),
		Config: filepath.Join(root, "config.yaml"),

		LogDir:    filepath.Join(root, "log"),
		DaemonLog: filepath.Join(root, "log", "daemon.log"),

		RunDir:   filepath.Join(root, "run"),
		PIDFile:  filepath.Join(root, "run", "daemon.pid"),
		PortFile: filepath.Join(root, "run", "http.port"),
	}
}

// EnsureDirs creates all subdirectories under .flashtext/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes ephemeral runtime files (PID file and port file).
// Called on clean daemon shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PIDFile)
	os.Remove(p.PortFile)
}

// FindProjectRoot walks up from dir looking for a .flashtext/ directory and
// returns the directory containing it. Falls back to dir itself.
func FindProjectRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for cur := abs; ; {
		if info, err := os.Stat(filepath.Join(cur, DirName)); err == nil && info.IsDir() {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		cur = parent
	}
}
