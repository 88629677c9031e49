package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/asslrc/internal/subtitle"
	"gopkg.in/yaml.v3"
)

// summary rendering modes
const (
	SummaryAuto  = "auto"
	SummaryTable = "table"
	SummaryPlain = "plain"
)

// Config holds the settings for a conversion run.
type Config struct {
	InputDir    string `yaml:"input_dir"`
	OutputDir   string `yaml:"output_dir"` // empty means next to each input
	Pattern     string `yaml:"pattern"`
	Extension   string `yaml:"extension"`
	Concurrency int    `yaml:"concurrency"`
	Summary     string `yaml:"summary"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		InputDir:    ".",
		OutputDir:   "",
		Pattern:     "*" + subtitle.GetExtensionForFormat(subtitle.FormatASS),
		Extension:   subtitle.GetExtensionForFormat(subtitle.FormatLRC),
		Concurrency: 1,
		Summary:     SummaryAuto,
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.InputDir = strings.TrimSpace(c.InputDir)
	if c.InputDir == "" {
		c.InputDir = "."
	}
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	c.Pattern = strings.TrimSpace(c.Pattern)
	c.Extension = strings.TrimSpace(c.Extension)
	c.Summary = strings.ToLower(strings.TrimSpace(c.Summary))
	if c.Summary == "" {
		c.Summary = SummaryAuto
	}
}

// Validate checks the configuration for values a run cannot use.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	switch c.Summary {
	case SummaryAuto, SummaryTable, SummaryPlain:
	default:
		return fmt.Errorf(
			"unsupported summary %q: use auto, table, or plain",
			c.Summary,
		)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
