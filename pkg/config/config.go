// Package config holds the settings of a generation run: built-in defaults,
// an optional YAML file and command-line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"gopkg.in/yaml.v3"

	nglog "github.com/holon-run/nativegen/pkg/log"
)

const (
	// DefaultSourceURL is the community native catalog.
	DefaultSourceURL = "https://github.com/alloc8or/gta5-nativedb-data/blob/master/natives.json?raw=true"
	// DefaultOutput is written to the working directory.
	DefaultOutput = "Native.cs"
)

// Config describes one generation run. Empty fields fall back to defaults.
type Config struct {
	SourceURL string `yaml:"source_url,omitempty"`
	Output    string `yaml:"output,omitempty"`
	// Template is the template file path. Empty means NativeTemplate.txt
	// next to the executable.
	Template string `yaml:"template,omitempty"`
	// Namespaces restricts generation to namespaces matching any of these
	// wildcard patterns. Empty means all.
	Namespaces []string `yaml:"namespaces,omitempty"`
	LogLevel   string   `yaml:"log_level,omitempty"`
	UserAgent  string   `yaml:"user_agent,omitempty"`
}

// Default returns the fixed settings used when nothing is configured.
func Default() Config {
	return Config{
		SourceURL: DefaultSourceURL,
		Output:    DefaultOutput,
		LogLevel:  string(nglog.LevelProgress),
	}
}

// Load reads a YAML config file. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge returns c with every non-empty field of override applied.
func (c Config) Merge(override Config) Config {
	if override.SourceURL != "" {
		c.SourceURL = override.SourceURL
	}
	if override.Output != "" {
		c.Output = override.Output
	}
	if override.Template != "" {
		c.Template = override.Template
	}
	if len(override.Namespaces) > 0 {
		c.Namespaces = append([]string(nil), override.Namespaces...)
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	if override.UserAgent != "" {
		c.UserAgent = override.UserAgent
	}
	return c
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil {
		return fmt.Errorf("invalid source_url %q: %w", c.SourceURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid source_url %q: scheme must be http or https", c.SourceURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid source_url %q: missing host", c.SourceURL)
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output is required")
	}
	for i, p := range c.Namespaces {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("namespaces[%d] is empty", i)
		}
	}
	if _, err := nglog.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NamespaceFilter returns a predicate accepting namespaces that match any
// configured pattern, or every namespace when no pattern is set.
func (c Config) NamespaceFilter() func(string) bool {
	if len(c.Namespaces) == 0 {
		return func(string) bool { return true }
	}
	patterns := make([]string, len(c.Namespaces))
	for i, p := range c.Namespaces {
		patterns[i] = strings.TrimSpace(p)
	}
	return func(namespace string) bool {
		for _, p := range patterns {
			if wildcard.Match(p, namespace) {
				return true
			}
		}
		return false
	}
}
