package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/corey/flashtext/internal/adapters/bbolt"
	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/spf13/cobra"
)

// stdinName labels text read from standard input.
const stdinName = "(stdin)"

// matchFlags are the vocabulary and matching flags shared by extract and replace.
type matchFlags struct {
	vocabs        []string
	sets          []string
	ignoreCase    bool
	caseSensitive bool
	tokenizer     string
	noDaemon      bool
}

func (f *matchFlags) register(c *cobra.Command) {
	fl := c.Flags()
	fl.StringArrayVarP(&f.vocabs, "keywords", "k", nil, "Vocabulary file (.txt, .yaml, .json); repeatable")
	fl.StringArrayVar(&f.sets, "set", nil, "Stored keyword set; repeatable")
	fl.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "Match case-insensitively")
	fl.BoolVarP(&f.caseSensitive, "case-sensitive", "s", false, "Match case-sensitively")
	fl.StringVar(&f.tokenizer, "tokenizer", "", "Tokenizer policy: words, grouped")
	fl.BoolVar(&f.noDaemon, "no-daemon", false, "Build the vocabulary locally even if the daemon is running")
}

// overrides reports whether any flag departs from the project config, in
// which case the daemon's vocabulary cannot serve the request.
func (f *matchFlags) overrides() bool {
	return f.noDaemon || len(f.vocabs) > 0 || len(f.sets) > 0 ||
		f.ignoreCase || f.caseSensitive || f.tokenizer != ""
}

// engineConfig resolves flags against the project config. Explicit -k or
// --set replace the configured sources instead of adding to them.
func (f *matchFlags) engineConfig(root string, pc *app.ProjectConfig) (app.EngineConfig, error) {
	if f.ignoreCase && f.caseSensitive {
		return app.EngineConfig{}, fmt.Errorf("--ignore-case and --case-sensitive are mutually exclusive")
	}
	cfg := app.EngineConfig{
		CaseSensitive: pc.CaseSensitive,
		Policy:        pc.Policy(),
		Vocabularies:  pc.VocabularyPaths(root),
		Sets:          pc.Sets,
	}
	switch {
	case f.ignoreCase:
		cfg.CaseSensitive = false
	case f.caseSensitive:
		cfg.CaseSensitive = true
	}
	if f.tokenizer != "" {
		p, err := tokenize.ParsePolicy(f.tokenizer)
		if err != nil {
			return app.EngineConfig{}, err
		}
		cfg.Policy = p
	}
	if len(f.vocabs) > 0 || len(f.sets) > 0 {
		cfg.Vocabularies = nil
		for _, v := range f.vocabs {
			abs, err := filepath.Abs(v)
			if err != nil {
				return app.EngineConfig{}, err
			}
			if _, err := os.Stat(abs); err != nil {
				return app.EngineConfig{}, fmt.Errorf("vocabulary %s: %w", v, err)
			}
			cfg.Vocabularies = append(cfg.Vocabularies, abs)
		}
		cfg.Sets = f.sets
	}
	return cfg, nil
}

// matcher runs extraction and replacement either in-process or via the daemon.
type matcher interface {
	Extract(text string) ([]keyword.Match, error)
	Replace(text string) (string, int, error)
}

type localMatcher struct{ engine *app.Engine }

func (m localMatcher) Extract(text string) ([]keyword.Match, error) {
	return m.engine.Extract(text), nil
}

func (m localMatcher) Replace(text string) (string, int, error) {
	out, n := m.engine.Replace(text)
	return out, n, nil
}

type daemonMatcher struct{ client *socket.Client }

func (m daemonMatcher) Extract(text string) ([]keyword.Match, error) {
	res, err := m.client.Extract(text)
	if err != nil {
		return nil, err
	}
	matches := make([]keyword.Match, len(res.Matches))
	for i, mi := range res.Matches {
		matches[i] = keyword.Match{Keyword: mi.Keyword, Start: mi.Start, End: mi.End}
	}
	return matches, nil
}

func (m daemonMatcher) Replace(text string) (string, int, error) {
	res, err := m.client.Replace(text)
	if err != nil {
		return "", 0, err
	}
	return res.Text, res.Count, nil
}

// openMatcher routes through the daemon when it is running and no flag
// overrides the project vocabulary; otherwise it loads the vocabulary locally.
func openMatcher(root string, f *matchFlags) (matcher, error) {
	if !f.overrides() {
		client := socket.NewClient(socket.SocketPath(root))
		if client.Ping() {
			return daemonMatcher{client: client}, nil
		}
	}

	paths := app.NewPaths(root)
	pc, err := app.LoadProjectConfig(paths.Config)
	if err != nil {
		return nil, err
	}
	cfg, err := f.engineConfig(root, pc)
	if err != nil {
		return nil, err
	}
	cfg.Store = bbolt.NewPathStore(paths.DB)
	engine, err := app.NewEngine(cfg)
	if err != nil {
		return nil, wrapStoreError(root, err)
	}
	return localMatcher{engine: engine}, nil
}

// input is one named text to scan.
type input struct {
	name string
	text string
}

// readInputs reads each file argument, with "-" meaning stdin. No
// arguments reads stdin.
func readInputs(args []string, stdin io.Reader) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			inputs = append(inputs, input{name: stdinName, text: string(data)})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: arg, text: string(data)})
	}
	return inputs, nil
}

// requireInput rejects a bare invocation on a terminal, which would
// otherwise block waiting for stdin.
func requireInput(args []string) error {
	if len(args) == 0 && !isStdinPipe() {
		return fmt.Errorf("no input: pass files or pipe text on stdin")
	}
	return nil
}
