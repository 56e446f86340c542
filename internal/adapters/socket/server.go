package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/corey/flashtext/internal/domain/keyword"
)

// Engine is the keyword engine the server answers from.
// Thread safety is the implementor's responsibility.
type Engine interface {
	Extract(text string) []keyword.Match
	Replace(text string) (string, int)
	KeywordCount() int
	Stats() StatsResult
	Reload() (ReloadResult, error)
}

// Server is the daemon that listens on a Unix socket and serves keyword requests.
type Server struct {
	engine   Engine
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server backed by the given engine.
func NewServer(engine Engine, sockPath string) *Server {
	return &Server{
		engine:     engine,
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first. If the connection fails, the stale socket
// is removed before binding.
func (s *Server) Start() error {
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		// Stale socket
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop gracefully shuts down the server, closing the listener and removing the socket file.
// Idempotent: safe to call after a remote shutdown and again on signal.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine should select on this alongside
// OS signals so the process actually exits after a remote stop.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	// Unblock the scanner when the server stops.
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-s.done:
			conn.SetReadDeadline(time.Now())
		case <-closed:
		}
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxMessage)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
	if err := scanner.Err(); err == bufio.ErrTooLong {
		s.writeResponse(conn, Response{Error: fmt.Sprintf("request exceeds %d bytes", maxMessage)})
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodExtract:
		return s.handleExtract(req)
	case MethodReplace:
		return s.handleReplace(req)
	case MethodHealth:
		return s.handleHealth(req)
	case MethodStats:
		return Response{ID: req.ID, Result: s.engine.Stats()}
	case MethodReload:
		return s.handleReload(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

func (s *Server) handleExtract(req Request) Response {
	var params ExtractParams
	if err := decodeInto(req.Params, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid extract params"}
	}

	start := time.Now()
	matches := s.engine.Extract(params.Text)
	elapsed := time.Since(start)

	return Response{ID: req.ID, Result: NewExtractResult(matches, elapsed)}
}

// NewExtractResult converts engine matches to the wire format. A result
// with no matches carries exit code 1, grep-style.
func NewExtractResult(matches []keyword.Match, elapsed time.Duration) ExtractResult {
	infos := make([]MatchInfo, len(matches))
	for i, m := range matches {
		infos[i] = MatchInfo{Keyword: m.Keyword, Start: m.Start, End: m.End}
	}
	exitCode := 0
	if len(infos) == 0 {
		exitCode = 1
	}
	return ExtractResult{
		Matches:  infos,
		Count:    len(infos),
		ExitCode: exitCode,
		Elapsed:  elapsed.String(),
	}
}

func (s *Server) handleReplace(req Request) Response {
	var params ReplaceParams
	if err := decodeInto(req.Params, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid replace params"}
	}

	start := time.Now()
	text, count := s.engine.Replace(params.Text)
	elapsed := time.Since(start)

	return Response{
		ID: req.ID,
		Result: ReplaceResult{
			Text:    text,
			Count:   count,
			Elapsed: elapsed.String(),
		},
	}
}

func (s *Server) handleHealth(req Request) Response {
	return Response{
		ID: req.ID,
		Result: HealthResult{
			Status:       "ok",
			KeywordCount: s.engine.KeywordCount(),
			Uptime:       time.Since(s.started).Round(time.Second).String(),
		},
	}
}

func (s *Server) handleReload(req Request) Response {
	result, err := s.engine.Reload()
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
