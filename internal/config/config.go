package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file at the repository root
const FileName = ".stepwise.yml"

// Config represents the repository configuration
type Config struct {
	// Binary is the shell command exec lines and hooks use to invoke
	// stepwise, written as it would be typed. Empty means the
	// running executable.
	Binary  string        `yaml:"binary,omitempty"`
	Manuals ManualsConfig `yaml:"manuals"`
	Diff    DiffConfig    `yaml:"diff"`
	Log     LogConfig     `yaml:"log"`
}

// ManualsConfig locates the manual templates and their rendered views
type ManualsConfig struct {
	Root      string `yaml:"root"`
	Templates string `yaml:"templates"`
	Views     string `yaml:"views"`
	// Renderer is the manual renderer command. Empty means "<binary> manual".
	Renderer string `yaml:"renderer,omitempty"`
}

// DiffConfig tunes rendered step diffs
type DiffConfig struct {
	// Exclude lists doublestar patterns of paths left out of rendered diffs
	Exclude []string `yaml:"exclude,omitempty"`
}

// LogConfig configures the log file
type LogConfig struct {
	// File is resolved against the git directory. Empty disables file logging.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Manuals: ManualsConfig{
			Root:      "README.md",
			Templates: ".stepwise/manuals/templates",
			Views:     ".stepwise/manuals/views",
		},
		Log: LogConfig{File: "stepwise/stepwise.log"},
	}
}

// Path returns the configuration file path for a repository root
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads the configuration of a repository. Keys missing from the file
// keep their default values.
func Load(repoRoot string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes the configuration to the repository root
func (c *Config) Save(repoRoot string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(Path(repoRoot), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}

// LogPath resolves the log file against the git directory. It returns ""
// when file logging is disabled.
func (c *Config) LogPath(gitDir string) string {
	if c.Log.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(gitDir, c.Log.File)
}

// key binds a dotted configuration key to a field
type key struct {
	get func(c *Config) string
	set func(c *Config, value string)
}

func stringKey(field func(c *Config) *string) key {
	return key{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, value string) { *field(c) = value },
	}
}

var keys = map[string]key{
	"binary":            stringKey(func(c *Config) *string { return &c.Binary }),
	"manuals.root":      stringKey(func(c *Config) *string { return &c.Manuals.Root }),
	"manuals.templates": stringKey(func(c *Config) *string { return &c.Manuals.Templates }),
	"manuals.views":     stringKey(func(c *Config) *string { return &c.Manuals.Views }),
	"manuals.renderer":  stringKey(func(c *Config) *string { return &c.Manuals.Renderer }),
	"log.file":          stringKey(func(c *Config) *string { return &c.Log.File }),
	"diff.exclude": {
		get: func(c *Config) string { return strings.Join(c.Diff.Exclude, ",") },
		set: func(c *Config, value string) {
			c.Diff.Exclude = nil
			for _, p := range strings.Split(value, ",") {
				if p = strings.TrimSpace(p); p != "" {
					c.Diff.Exclude = append(c.Diff.Exclude, p)
				}
			}
		},
	},
}

// Keys lists the configuration keys accepted by Get and Set
func Keys() []string {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of a dotted key. diff.exclude is comma separated.
func (c *Config) Get(name string) (string, error) {
	k, ok := keys[name]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", name, strings.Join(Keys(), ", "))
	}
	return k.get(c), nil
}

// Set updates a dotted key and validates the result
func (c *Config) Set(name, value string) error {
	k, ok := keys[name]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", name, strings.Join(Keys(), ", "))
	}
	updated := *c
	updated.Diff.Exclude = append([]string(nil), c.Diff.Exclude...)
	k.set(&updated, value)
	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}
