// Package web serves the keyword engine as a JSON API over HTTP.
// Binds to localhost only, so there is no network exposure and no auth.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/corey/flashtext/internal/adapters/socket"
)

// maxBody bounds request bodies for extract and replace.
const maxBody = 16 << 20

// Server serves the JSON API over HTTP.
type Server struct {
	engine   socket.Engine
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once

	portFilePath string // .flashtext/run/http.port
}

// NewServer creates an HTTP server for the engine.
// The portFilePath is where the bound port is written for discovery.
func NewServer(engine socket.Engine, portFilePath string) *Server {
	return &Server{
		engine:       engine,
		portFilePath: portFilePath,
	}
}

// DefaultPort computes a project-specific port: 19000 + (hash(abs_path) % 1000).
func DefaultPort(projectRoot string) int {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	// Use first 4 bytes as uint32
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 19000 + int(n%1000)
}

// Start begins listening on the preferred port (0 picks a free one).
// Writes the bound port to the port file.
func (s *Server) Start(preferredPort int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", preferredPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	s.httpSrv = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.portFilePath != "" {
		os.WriteFile(s.portFilePath, []byte(fmt.Sprintf("%d", s.port)), 0644)
	}

	go s.httpSrv.Serve(ln)
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
		if s.portFilePath != "" {
			os.Remove(s.portFilePath)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the API base URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/replace", s.handleReplace)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return mux
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	start := time.Now()
	matches := s.engine.Extract(text)
	writeJSON(w, http.StatusOK, socket.NewExtractResult(matches, time.Since(start)))
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	start := time.Now()
	out, count := s.engine.Replace(text)
	writeJSON(w, http.StatusOK, socket.ReplaceResult{
		Text:    out,
		Count:   count,
		Elapsed: time.Since(start).String(),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.Reload()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, socket.HealthResult{
		Status:       "ok",
		KeywordCount: s.engine.KeywordCount(),
		Uptime:       time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

// errBadRequest marks client errors.
var errBadRequest = errors.New("bad request")

// readText accepts either a JSON body {"text": "..."} or a raw text/plain body.
func readText(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", fmt.Errorf("%w: body exceeds %d bytes", errBadRequest, tooLarge.Limit)
		}
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		return string(body), nil
	}

	var params socket.ExtractParams
	if err := json.Unmarshal(body, &params); err != nil {
		return "", fmt.Errorf("%w: invalid JSON body", errBadRequest)
	}
	return params.Text, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errBadRequest) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
