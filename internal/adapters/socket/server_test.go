package socket

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Unix socket daemon: JSON-over-socket protocol for extract, replace, health,
// stats, reload, shutdown
// =============================================================================

// testEngine serves a real processor so the wire format is checked against
// actual match offsets.
type testEngine struct {
	mu        sync.Mutex
	proc      *keyword.Processor
	reloads   int
	reloadErr error
}

func newTestEngine() *testEngine {
	p := keyword.New(false)
	p.AddKeywordWithCleanWord("Big Apple", "New York")
	p.AddKeywordWithCleanWord("Rust", "Java")
	p.AddKeyword("hello world")
	return &testEngine{proc: p}
}

func (e *testEngine) Extract(text string) []keyword.Match {
	var out []keyword.Match
	for m := range e.proc.ExtractKeywordsWithSpan(text) {
		out = append(out, m)
	}
	return out
}

func (e *testEngine) Replace(text string) (string, int) {
	return e.proc.ReplaceKeywordsCount(text)
}

func (e *testEngine) KeywordCount() int { return e.proc.Len() }

func (e *testEngine) Stats() StatsResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return StatsResult{
		KeywordCount: e.proc.Len(),
		Tokenizer:    "words",
		Reloads:      e.reloads,
		Sources:      []SourceInfo{{Kind: "set", Name: "default", Entries: e.proc.Len()}},
	}
}

func (e *testEngine) Reload() (ReloadResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.reloadErr != nil {
		return ReloadResult{}, e.reloadErr
	}
	e.reloads++
	return ReloadResult{KeywordCount: e.proc.Len(), SourceCount: 1}, nil
}

// testSocketPath returns a unique socket path for a test.
func testSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.sock")
}

func startServer(t *testing.T, engine Engine) (*Server, *Client) {
	t.Helper()
	sockPath := testSocketPath(t)
	srv := NewServer(engine, sockPath)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Stop() })
	return srv, NewClient(sockPath)
}

func TestServer_ExtractRoundtrip(t *testing.T) {
	_, client := startServer(t, newTestEngine())

	result, err := client.Extract("I love rust and the big apple")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []MatchInfo{
		{Keyword: "Java", Start: 7, End: 11},
		{Keyword: "New York", Start: 20, End: 29},
	}, result.Matches)

	// Nothing found
	result, err = client.Extract("nothing to see")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, result.Matches)
}

func TestServer_Replace(t *testing.T) {
	_, client := startServer(t, newTestEngine())

	result, err := client.Replace("I love Rust")
	require.NoError(t, err)
	assert.Equal(t, "I love Java", result.Text)
	assert.Equal(t, 1, result.Count)

	result, err = client.Replace("")
	require.NoError(t, err)
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0, result.Count)
}

func TestServer_LargeText(t *testing.T) {
	// Texts bigger than bufio's default token size still round-trip.
	_, client := startServer(t, newTestEngine())

	text := strings.Repeat("filler ", 100_000) + "hello world"
	result, err := client.Extract(text)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, len(text), result.Matches[0].End)
}

func TestServer_Health(t *testing.T) {
	_, client := startServer(t, newTestEngine())

	health, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 3, health.KeywordCount)
	assert.NotEmpty(t, health.Uptime)
}

func TestServer_StatsAndReload(t *testing.T) {
	engine := newTestEngine()
	_, client := startServer(t, engine)

	reload, err := client.Reload()
	require.NoError(t, err)
	assert.Equal(t, 3, reload.KeywordCount)

	stats, err := client.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.KeywordCount)
	assert.Equal(t, 1, stats.Reloads)
	assert.Equal(t, "words", stats.Tokenizer)
	require.Len(t, stats.Sources, 1)
	assert.Equal(t, "default", stats.Sources[0].Name)

	engine.reloadErr = errors.New("vocabulary broken")
	_, err = client.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vocabulary broken")
}

func TestServer_UnknownMethod(t *testing.T) {
	srv, _ := startServer(t, newTestEngine())

	resp := srv.handleRequest(Request{ID: "7", Method: "search"})
	assert.Equal(t, "7", resp.ID)
	assert.Contains(t, resp.Error, "unknown method")
}

func TestServer_InvalidParams(t *testing.T) {
	srv, _ := startServer(t, newTestEngine())

	resp := srv.handleRequest(Request{ID: "1", Method: MethodExtract, Params: "not an object"})
	assert.Equal(t, "invalid extract params", resp.Error)

	resp = srv.handleRequest(Request{ID: "1", Method: MethodReplace, Params: []int{1}})
	assert.Equal(t, "invalid replace params", resp.Error)
}

func TestServer_Shutdown(t *testing.T) {
	sockPath := testSocketPath(t)
	srv := NewServer(newTestEngine(), sockPath)
	require.NoError(t, srv.Start())

	client := NewClient(sockPath)
	assert.True(t, client.Ping())

	require.NoError(t, client.Shutdown())

	select {
	case <-srv.ShutdownCh():
	default:
		t.Fatal("ShutdownCh should be closed after Shutdown request")
	}

	// The daemon is responsible for calling Stop() after receiving the signal.
	srv.Stop()

	_, err := os.Stat(sockPath)
	assert.True(t, os.IsNotExist(err), "socket file should be removed after shutdown")
	assert.False(t, client.Ping())
}

func TestServer_ConcurrentClients(t *testing.T) {
	_, client := startServer(t, newTestEngine())

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	// 10 clients x 10 requests each
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				result, err := client.Extract("rust and big apple")
				if err != nil {
					errs <- err
					return
				}
				if result.Count != 2 {
					errs <- assert.AnError
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent client error: %v", err)
	}
}

func TestServer_StaleSocket(t *testing.T) {
	sockPath := testSocketPath(t)

	// A stale socket file (not a real listener)
	require.NoError(t, os.WriteFile(sockPath, []byte("stale"), 0600))

	srv := NewServer(newTestEngine(), sockPath)
	require.NoError(t, srv.Start(), "should replace stale socket")
	defer srv.Stop()

	health, err := NewClient(sockPath).Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestServer_AlreadyRunning(t *testing.T) {
	srv, _ := startServer(t, newTestEngine())

	second := NewServer(newTestEngine(), srv.Addr())
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestSocketPath_Stable(t *testing.T) {
	a := SocketPath("/some/project")
	assert.Equal(t, a, SocketPath("/some/project"))
	assert.NotEqual(t, a, SocketPath("/other/project"))
	assert.True(t, strings.HasPrefix(a, "/tmp/flashtext-"))
	assert.True(t, strings.HasSuffix(a, ".sock"))
}
