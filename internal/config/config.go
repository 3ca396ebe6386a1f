// Package config loads the scheduler configuration once at process
// start. The resulting struct is immutable for the process lifetime and
// passed by reference; nothing deeper in the call graph reads process
// environment state.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceType selects the adapter implementation for a source.
type SourceType string

const (
	// SourceHTML is a listing page scraped as an HTML table.
	SourceHTML SourceType = "html"
	// SourceJSON is a JSON feed with category and date-window filtering.
	SourceJSON SourceType = "json"
)

// Duration wraps time.Duration so YAML values like "500ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// StoreConfig locates the remote table service.
type StoreConfig struct {
	BaseURL string   `yaml:"base_url"`
	Token   string   `yaml:"token"`
	Timeout Duration `yaml:"timeout"` // per-call timeout, default 15s
}

// FetchConfig tunes the shared rate-limited HTTP client.
type FetchConfig struct {
	MinInterval Duration `yaml:"min_interval"` // pause between requests, default 500ms
	Timeout     Duration `yaml:"timeout"`      // per-request timeout, default 30s
	UserAgent   string   `yaml:"user_agent"`
}

// Source configures one external source. One main table plus one
// history table per source, fixed at startup.
type Source struct {
	ID           string     `yaml:"id"`
	Type         SourceType `yaml:"type"`
	BaseURL      string     `yaml:"base_url"`
	ListingPath  string     `yaml:"listing_path"` // html sources
	FeedPath     string     `yaml:"feed_path"`    // json sources
	Category     string     `yaml:"category"`     // json sources, optional filter
	MainTable    string     `yaml:"main_table"`
	HistoryTable string     `yaml:"history_table"`
}

// Config is the full scheduler configuration.
type Config struct {
	Store   StoreConfig `yaml:"store"`
	Fetch   FetchConfig `yaml:"fetch"`
	Sources []Source    `yaml:"sources"`
}

// Load reads and validates the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Store.BaseURL == "" {
		return fmt.Errorf("store.base_url is required")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		if src.ID == "" {
			return fmt.Errorf("sources[%d]: id is required", i)
		}
		if seen[src.ID] {
			return fmt.Errorf("duplicate source id %q", src.ID)
		}
		seen[src.ID] = true

		if src.BaseURL == "" {
			return fmt.Errorf("source %s: base_url is required", src.ID)
		}
		if src.MainTable == "" || src.HistoryTable == "" {
			return fmt.Errorf("source %s: main_table and history_table are required", src.ID)
		}

		switch src.Type {
		case SourceHTML:
			if src.ListingPath == "" {
				return fmt.Errorf("source %s: listing_path is required for html sources", src.ID)
			}
		case SourceJSON:
			if src.FeedPath == "" {
				return fmt.Errorf("source %s: feed_path is required for json sources", src.ID)
			}
		default:
			return fmt.Errorf("source %s: unknown type %q", src.ID, src.Type)
		}
	}
	return nil
}
