package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/irtelemetry/live"
)

type logConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
}

type config struct {
	// PollInterval throttles printed samples; zero prints every tick.
	PollInterval   time.Duration `yaml:"poll_interval"`
	Timeout        time.Duration `yaml:"timeout"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	Vars           []string      `yaml:"vars"`
	Logs           logConfig     `yaml:"logs"`
}

func defaultConfig() config {
	return config{
		Timeout:        live.DefaultTimeout,
		ReconnectDelay: 2 * time.Second,
		Logs: logConfig{
			MaxSizeMB:  25,
			MaxAgeDays: 7,
			MaxBackups: 5,
			Level:      "info",
			Format:     "text",
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	if cfg.Logs.File != "" && !filepath.IsAbs(cfg.Logs.File) {
		cfg.Logs.File = filepath.Join(filepath.Dir(path), cfg.Logs.File)
	}

	return cfg, cfg.validate()
}

func (c *config) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval must not be negative, got %s", c.PollInterval)
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect_delay must be positive, got %s", c.ReconnectDelay)
	}

	switch strings.ToLower(c.Logs.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logs.Format)
	}

	if _, err := parseLevel(c.Logs.Level); err != nil {
		return err
	}

	return nil
}
