// Package config handles configuration loading and validation for todonext.
package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/todonext/internal/core/styles"
)

// Property keys whose display can be shortened in listings.
const (
	ShortenURL  = "url"
	ShortenFile = "file"
)

// Config holds the application configuration.
type Config struct {
	TodoFile     string            `yaml:"todo_file"`
	IDSupport    bool              `yaml:"id_support"`
	Sort         bool              `yaml:"sort"`
	DonePrefix   string            `yaml:"done_prefix"`
	ReportPrefix string            `yaml:"report_prefix"`
	DateFormats  []string          `yaml:"date_formats"`
	Shorten      []string          `yaml:"shorten"`
	Suppress     []string          `yaml:"suppress"`
	Editor       string            `yaml:"editor"`
	BackupDir    string            `yaml:"backup_dir"`
	Archive      ArchiveConfig     `yaml:"archive"`
	Theme        string            `yaml:"theme"`
	Colors       map[string]string `yaml:"colors"`
	NoColors     bool              `yaml:"no_colors"`
	DataDir      string            `yaml:"-"` // set by caller, not from config file
}

// ArchiveConfig controls where archived items are written.
type ArchiveConfig struct {
	// FilenameScheme is a strftime template applied to an item's done date.
	FilenameScheme string `yaml:"filename_scheme"`
	// UnsortedFilename receives items without a done date.
	UnsortedFilename string `yaml:"unsorted_filename"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IDSupport:    true,
		Sort:         true,
		DonePrefix:   "x ",
		ReportPrefix: "* ",
		DateFormats:  []string{},
		Shorten:      []string{"due", "done", "created", "started", ShortenURL, ShortenFile},
		Suppress:     []string{},
		BackupDir:    "backup",
		Archive: ArchiveConfig{
			FilenameScheme:   "archive/%Y-%m.txt",
			UnsortedFilename: "archive/unsorted.txt",
		},
		Theme:  styles.DefaultTheme,
		Colors: map[string]string{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.TodoFile == "" && c.DataDir != "" {
		c.TodoFile = filepath.Join(c.DataDir, "todo.txt")
	}
	c.TodoFile = expandHome(c.TodoFile)

	c.DonePrefix = cmp.Or(c.DonePrefix, defaults.DonePrefix)
	c.ReportPrefix = cmp.Or(c.ReportPrefix, defaults.ReportPrefix)
	c.BackupDir = cmp.Or(c.BackupDir, defaults.BackupDir)
	c.Archive.FilenameScheme = cmp.Or(c.Archive.FilenameScheme, defaults.Archive.FilenameScheme)
	c.Archive.UnsortedFilename = cmp.Or(c.Archive.UnsortedFilename, defaults.Archive.UnsortedFilename)
	c.Theme = cmp.Or(c.Theme, defaults.Theme)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.TodoFile == "" {
		return fmt.Errorf("todo_file cannot be empty")
	}

	if c.DonePrefix == c.ReportPrefix {
		return fmt.Errorf("done_prefix and report_prefix must differ")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames())
	}

	for role := range c.Colors {
		if !slices.Contains(styles.RoleNames(), role) {
			return fmt.Errorf("colors: unknown role %q", role)
		}
	}

	return nil
}

// TodoDir returns the directory holding the todo file. Archive and backup
// paths are relative to it.
func (c *Config) TodoDir() string {
	return filepath.Dir(c.TodoFile)
}

// BackupPath returns the directory backups are written to.
func (c *Config) BackupPath() string {
	if filepath.IsAbs(c.BackupDir) {
		return c.BackupDir
	}
	return filepath.Join(c.TodoDir(), c.BackupDir)
}

// EditorCommand returns the configured editor, falling back to $EDITOR and vi.
func (c *Config) EditorCommand() string {
	return cmp.Or(c.Editor, os.Getenv("EDITOR"), "vi")
}

// Palette returns the theme palette with color overrides applied.
func (c *Config) Palette() styles.Palette {
	p, ok := styles.GetPalette(c.Theme)
	if !ok {
		p, _ = styles.GetPalette(styles.DefaultTheme)
	}
	return p.WithOverrides(c.Colors)
}

// ShouldShorten reports whether display of key is shortened.
func (c *Config) ShouldShorten(key string) bool {
	return slices.Contains(c.Shorten, key)
}

// ShouldSuppress reports whether key is hidden in listings.
func (c *Config) ShouldSuppress(key string) bool {
	return slices.Contains(c.Suppress, key)
}

func expandHome(path string) string {
	if path == "~" || (len(path) > 1 && path[:2] == "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
