// Package config provides configuration loading and discovery for yamlvet.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (YAMLVET_* prefix)
//  3. Config file (closest .yamlvet.toml or yamlvet.toml)
//  4. Built-in defaults
//
// Config file discovery follows a cascading pattern: starting from the
// target file's directory, walk up the filesystem until a config file is
// found. The closest config wins (no merging).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".yamlvet.toml", "yamlvet.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "YAMLVET_"

// Config represents the complete yamlvet configuration.
type Config struct {
	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output"`

	// Tools configures the external checker tools.
	Tools ToolsConfig `json:"tools" koanf:"tools"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format.
	Format string `json:"format,omitempty" koanf:"format"`

	// Path specifies where to write output.
	Path string `json:"path,omitempty" koanf:"path"`

	// ShowSource enables source line snippets in text output.
	ShowSource bool `json:"show-source,omitempty" koanf:"show-source"`
}

// ToolsConfig configures the external tools the checkers invoke.
//
// Example TOML configuration:
//
//	[tools.yamllint]
//	command = ["python", "-m", "yamllint"]
//
//	[tools.checkov]
//	enabled = false
type ToolsConfig struct {
	// Yamllint configures the external linter (required for a run).
	Yamllint ToolConfig `json:"yamllint" koanf:"yamllint"`

	// Checkov configures the external security scanner (optional; skipped
	// when unavailable).
	Checkov ToolConfig `json:"checkov" koanf:"checkov"`
}

// ToolConfig configures one external tool invocation.
type ToolConfig struct {
	// Command is the tool's argv prefix; checker-specific arguments are
	// appended at invocation time.
	Command []string `json:"command,omitempty" koanf:"command"`

	// Enabled controls whether the tool is invoked at all.
	Enabled bool `json:"enabled" koanf:"enabled"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     "text",
			Path:       "stdout",
			ShowSource: true,
		},
		Tools: ToolsConfig{
			Yamllint: ToolConfig{
				Command: []string{"yamllint"},
				Enabled: true,
			},
			Checkov: ToolConfig{
				Command: []string{"checkov"},
				Enabled: true,
			},
		},
	}
}

// Load loads configuration for a target file path.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return loadWithConfigPath(Discover(targetPath))
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath)
}

// loadWithConfigPath is an internal helper that loads config with an optional config file path.
func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Load config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load environment variables (YAMLVET_* prefix)
	// YAMLVET_OUTPUT_SHOW_SOURCE -> output.show-source
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.ConfigFile = configPath
	return cfg, nil
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated equivalents.
var knownHyphenatedKeys = map[string]string{
	"show.source": "show-source",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"output": {},
	"tools":  {},
}

// envKeyTransform converts environment variable names to config keys.
// YAMLVET_OUTPUT_FORMAT -> output.format
// YAMLVET_OUTPUT_SHOW_SOURCE -> output.show-source
func envKeyTransform(k, v string) (string, any) {
	// Remove YAMLVET_ prefix (already stripped by Prefix option, but keeping for safety)
	s := strings.TrimPrefix(k, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	// Fix known hyphenated keys using lookup table
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}

	return s, v
}

// Discover finds the closest config file for a target file path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level.
// Returns empty string if no config file is found.
func Discover(targetPath string) string {
	// Get absolute path to handle relative paths correctly
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	// Start from the target's directory
	dir := filepath.Dir(absPath)

	for {
		// Check each config file name in priority order
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		// Move up to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
