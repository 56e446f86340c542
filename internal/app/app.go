// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the flashtext daemon: create, start, stop.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cihub/seelog"
	"github.com/corey/flashtext/internal/adapters/bbolt"
	fsw "github.com/corey/flashtext/internal/adapters/fsnotify"
	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/adapters/web"
	"github.com/corey/flashtext/internal/ports"
	"github.com/pkg/errors"
)

// App is the top-level container wiring all components together.
type App struct {
	ProjectRoot string
	Paths       *Paths
	Project     *ProjectConfig

	Store     *bbolt.PathStore
	Engine    *Engine
	Watcher   ports.Watcher
	Server    *socket.Server
	WebServer *web.Server // nil when HTTP is disabled
	Log       seelog.LoggerInterface

	httpPort int       // preferred HTTP port (0 = auto from project root)
	started  time.Time // daemon start time
}

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot string
	DBPath      string         // path to bbolt file (default: .flashtext/flashtext.db)
	HTTPPort    int            // preferred HTTP port (default: config, then computed from project root)
	SocketPath  string         // default: derived from project root
	Project     *ProjectConfig // default: loaded from .flashtext/config.yaml
	LogFile     string         // "" = console
}

// New creates an App with all dependencies wired. Loads the vocabulary but
// does not start services.
func New(cfg Config) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	paths := NewPaths(cfg.ProjectRoot)
	if cfg.DBPath == "" {
		cfg.DBPath = paths.DB
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = socket.SocketPath(cfg.ProjectRoot)
	}
	if cfg.Project == nil {
		pc, err := LoadProjectConfig(paths.Config)
		if err != nil {
			return nil, err
		}
		cfg.Project = pc
	}
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = cfg.Project.HTTPPort
	}

	logger, err := InitLog(cfg.LogFile)
	if err != nil {
		return nil, errors.Wrap(err, "init log")
	}

	store := bbolt.NewPathStore(cfg.DBPath)
	engine, err := NewEngine(EngineConfig{
		CaseSensitive: cfg.Project.CaseSensitive,
		Policy:        cfg.Project.Policy(),
		Vocabularies:  cfg.Project.VocabularyPaths(cfg.ProjectRoot),
		Sets:          cfg.Project.Sets,
		Store:         store,
		Logger:        logger,
	})
	if err != nil {
		logger.Close()
		return nil, errors.Wrap(err, "load vocabulary")
	}

	watcher, err := fsw.NewWatcher(fsw.WithErrorHandler(func(err error) {
		logger.Warnf("watcher: %v", err)
	}))
	if err != nil {
		logger.Close()
		return nil, errors.Wrap(err, "create watcher")
	}

	a := &App{
		ProjectRoot: cfg.ProjectRoot,
		Paths:       paths,
		Project:     cfg.Project,
		Store:       store,
		Engine:      engine,
		Watcher:     watcher,
		Log:         logger,
		httpPort:    cfg.HTTPPort,
	}

	a.Server = socket.NewServer(engine, cfg.SocketPath)
	if cfg.Project.HTTPEnabled() {
		a.WebServer = web.NewServer(engine, paths.PortFile)
	}
	return a, nil
}

// Start begins the daemon (socket server + HTTP server + vocabulary watcher).
func (a *App) Start() error {
	a.started = time.Now()
	if err := a.Server.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	a.Log.Infof("listening on %s with %d keywords", a.Server.Addr(), a.Engine.KeywordCount())

	// HTTP API is non-fatal if the port is unavailable
	if a.WebServer != nil {
		httpPort := a.httpPort
		if httpPort == 0 {
			httpPort = web.DefaultPort(a.ProjectRoot)
		}
		if err := a.WebServer.Start(httpPort); err != nil {
			a.Log.Warnf("HTTP API unavailable: %v", err)
		} else {
			a.Log.Infof("HTTP API at %s", a.WebServer.URL())
		}
	}

	// File watcher is non-fatal if setup fails
	if err := a.Watcher.Watch(a.watchedFiles(), a.onFileChanged); err != nil {
		a.Log.Warnf("vocabulary watcher unavailable: %v", err)
	}
	return nil
}

// Stop gracefully shuts down all services.
func (a *App) Stop() error {
	a.Watcher.Stop()
	if a.WebServer != nil {
		a.WebServer.Stop()
	}
	a.Server.Stop()
	a.Log.Infof("stopped after %v", a.Uptime().Round(time.Second))
	a.Log.Flush()
	a.Log.Close()
	return nil
}

// Uptime returns how long the daemon has been running.
func (a *App) Uptime() time.Duration {
	if a.started.IsZero() {
		return 0
	}
	return time.Since(a.started)
}

// watchedFiles lists every file whose change triggers a reload: configured
// vocabularies, the keyword set database, and config.yaml.
func (a *App) watchedFiles() []string {
	files := a.Project.VocabularyPaths(a.ProjectRoot)
	files = append(files, filepath.Clean(a.Paths.DB), filepath.Clean(a.Paths.Config))
	return files
}
