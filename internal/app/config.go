package app

import (
	"os"
	"path/filepath"

	"github.com/corey/flashtext/internal/domain/tokenize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSet is the keyword set `keywords add` writes to when --set is omitted.
const DefaultSet = "default"

// ProjectConfig is the on-disk .flashtext/config.yaml.
type ProjectConfig struct {
	CaseSensitive bool     `yaml:"case_sensitive"`
	Tokenizer     string   `yaml:"tokenizer"`
	Vocabularies  []string `yaml:"vocabularies,omitempty"` // relative to the project root
	Sets          []string `yaml:"sets,omitempty"`
	HTTP          *bool    `yaml:"http,omitempty"`      // nil = enabled
	HTTPPort      int      `yaml:"http_port,omitempty"` // 0 = derived from project root
}

// DefaultProjectConfig returns the configuration used when no config file exists.
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Tokenizer: string(tokenize.PolicyWords),
		Sets:      []string{DefaultSet},
	}
}

// LoadProjectConfig reads a config file. A missing file yields defaults.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	cfg := DefaultProjectConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *ProjectConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Validate checks values that cannot be represented in YAML types alone.
func (c *ProjectConfig) Validate() error {
	if _, err := tokenize.ParsePolicy(c.Tokenizer); err != nil {
		return err
	}
	for _, name := range c.Sets {
		if name == "" {
			return errors.New("empty set name")
		}
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return errors.Errorf("http_port %d out of range", c.HTTPPort)
	}
	return nil
}

// Policy returns the configured tokenizer policy. Validate has already
// rejected unknown names, so failures fall back to the default.
func (c *ProjectConfig) Policy() tokenize.Policy {
	p, err := tokenize.ParsePolicy(c.Tokenizer)
	if err != nil {
		return tokenize.PolicyWords
	}
	return p
}

// HTTPEnabled reports whether the daemon should serve the HTTP API.
func (c *ProjectConfig) HTTPEnabled() bool {
	return c.HTTP == nil || *c.HTTP
}

// VocabularyPaths resolves vocabulary files against the project root.
func (c *ProjectConfig) VocabularyPaths(projectRoot string) []string {
	paths := make([]string, 0, len(c.Vocabularies))
	for _, v := range c.Vocabularies {
		if !filepath.IsAbs(v) {
			v = filepath.Join(projectRoot, v)
		}
		paths = append(paths, filepath.Clean(v))
	}
	return paths
}
