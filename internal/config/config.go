package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSubjects seeds a fresh tracker.
var DefaultSubjects = []string{"Japanese", "Math", "English", "Science", "Social Studies"}

// Config holds application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string `yaml:"db_path"`

	// LogPath is the log file. Empty means logger.DefaultLogPath.
	LogPath string `yaml:"log_path"`

	// LogLevel is a zap level name. Default: "info".
	LogLevel string `yaml:"log_level"`

	// LogMode selects "dev" (console) or "prod" (JSON) encoding. Default: "dev".
	LogMode string `yaml:"log_mode"`

	// DefaultSubjects seeds the subject list when nothing is stored.
	DefaultSubjects []string `yaml:"default_subjects"`

	// ExportDir is where `scorebook export` writes chart files. Default: "charts".
	ExportDir string `yaml:"export_dir"`

	Charts ChartConfig `yaml:"charts"`
}

// ChartConfig sizes exported chart images, in pixels.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		LogMode:         "dev",
		DefaultSubjects: append([]string(nil), DefaultSubjects...),
		ExportDir:       "charts",
		Charts: ChartConfig{
			Width:  800,
			Height: 400,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (if it exists),
// a .env file in the working directory (if it exists), and SCOREBOOK_*
// environment variables, in that order. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := cfg.mergeFile(path, explicit); err != nil {
		return cfg, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile overlays YAML values onto cfg. A missing file is only an
// error when it was named explicitly.
func (c *Config) mergeFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("SCOREBOOK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SCOREBOOK_LOG"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("SCOREBOOK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SCOREBOOK_LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("SCOREBOOK_EXPORT_DIR"); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv("SCOREBOOK_SUBJECTS"); v != "" {
		c.DefaultSubjects = splitList(v)
	}
	if v := os.Getenv("SCOREBOOK_CHART_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCOREBOOK_CHART_WIDTH: %w", err)
		}
		c.Charts.Width = n
	}
	if v := os.Getenv("SCOREBOOK_CHART_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCOREBOOK_CHART_HEIGHT: %w", err)
		}
		c.Charts.Height = n
	}
	return nil
}

// Validate checks the configuration for values the app cannot use.
func (c Config) Validate() error {
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Charts.Width, c.Charts.Height)
	}
	seen := make(map[string]bool, len(c.DefaultSubjects))
	for _, s := range c.DefaultSubjects {
		if strings.TrimSpace(s) == "" {
			return errors.New("default_subjects contains an empty name")
		}
		if seen[s] {
			return fmt.Errorf("default_subjects contains %q twice", s)
		}
		seen[s] = true
	}
	return nil
}

// DefaultPath resolves the config file path:
// 1. SCOREBOOK_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/scorebook/config.yaml
// 3. ~/.config/scorebook/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("SCOREBOOK_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scorebook", "config.yaml"), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
