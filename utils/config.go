package utils

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/noelzubin/notefind/search"
	"github.com/spf13/viper"
)

// Config is the cofiguration for the application
type Config struct {
	NotesPath    string         `mapstructure:"notes_path"`    // Snapshot file or directory with notes.json
	Editor       string         `mapstructure:"editor"`        // Editor to open the notes with
	ContextSize  int            `mapstructure:"context_size"`  // Characters shown around a match
	Debounce     time.Duration  `mapstructure:"debounce"`      // Wait after the last keystroke before searching
	MatchTimeout time.Duration  `mapstructure:"match_timeout"` // Limit for a single regex scan
	ResultLimit  int            `mapstructure:"result_limit"`  // Results shown in the list, 0 for all
	Search       SearchDefaults `mapstructure:"search"`        // Initial search toggles
}

// SearchDefaults are the toggles a search starts with.
type SearchDefaults struct {
	CaseSensitive      bool `mapstructure:"case_sensitive"`
	WholeWord          bool `mapstructure:"whole_word"`
	UseRegex           bool `mapstructure:"use_regex"`
	SearchInCategories bool `mapstructure:"search_in_categories"`
}

// DefaultConfigPath returns where the config file is looked for.
func DefaultConfigPath() string {
	homedir, _ := os.UserHomeDir()
	return path.Join(homedir, "/.config/notefind/config.yaml")
}

// DataDir is where logs are written.
func DataDir() string {
	homedir, _ := os.UserHomeDir()
	return path.Join(homedir, "/.config/notefind")
}

// NewConfig reads the config file at configPath, falling back to
// DefaultConfigPath when it is empty. A missing file is not an error;
// every value then comes from the defaults or NOTEFIND_* variables.
func NewConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	v.SetConfigFile(configPath)

	v.SetDefault("notes_path", path.Join(DataDir(), "notes"))
	v.SetDefault("editor", "vi")
	v.SetDefault("context_size", search.DefaultContextSize)
	v.SetDefault("debounce", 150*time.Millisecond)
	v.SetDefault("match_timeout", 250*time.Millisecond)
	v.SetDefault("result_limit", 100)
	v.SetDefault("search.case_sensitive", false)
	v.SetDefault("search.whole_word", false)
	v.SetDefault("search.use_regex", false)
	v.SetDefault("search.search_in_categories", true)

	v.SetEnvPrefix("notefind")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to parse the config file: %w", err)
	}

	if config.ContextSize < 0 {
		config.ContextSize = search.DefaultContextSize
	}

	return config, nil
}

// SearchOptions returns the options a new search starts with.
func (c *Config) SearchOptions() search.Options {
	opts := search.DefaultOptions()
	opts.CaseSensitive = c.Search.CaseSensitive
	opts.MatchWholeWord = c.Search.WholeWord
	opts.UseRegex = c.Search.UseRegex
	opts.SearchInCategories = c.Search.SearchInCategories
	return opts
}
