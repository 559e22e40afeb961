package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "stdout", cfg.Output.Path)
	assert.True(t, cfg.Output.ShowSource)

	assert.Equal(t, []string{"yamllint"}, cfg.Tools.Yamllint.Command)
	assert.True(t, cfg.Tools.Yamllint.Enabled)
	assert.Equal(t, []string{"checkov"}, cfg.Tools.Checkov.Command)
	assert.True(t, cfg.Tools.Checkov.Enabled)
}

func TestLoad_NoConfigFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a.yaml")

	cfg, err := Load(target)
	require.NoError(t, err)

	assert.Equal(t, Default().Output, cfg.Output)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".yamlvet.toml")
	content := `
[output]
format = "json"
show-source = false

[tools.yamllint]
command = ["python3", "-m", "yamllint"]

[tools.checkov]
enabled = false
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.ShowSource)
	assert.Equal(t, configPath, cfg.ConfigFile)

	assert.Equal(t, []string{"python3", "-m", "yamllint"}, cfg.Tools.Yamllint.Command)
	assert.True(t, cfg.Tools.Yamllint.Enabled, "unset keys keep their defaults")
	assert.False(t, cfg.Tools.Checkov.Enabled)
	assert.Equal(t, []string{"checkov"}, cfg.Tools.Checkov.Command, "unset keys keep their defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("YAMLVET_OUTPUT_FORMAT", "sarif")
	t.Setenv("YAMLVET_OUTPUT_SHOW_SOURCE", "false")

	target := filepath.Join(t.TempDir(), "a.yaml")
	cfg, err := Load(target)
	require.NoError(t, err)

	assert.Equal(t, "sarif", cfg.Output.Format)
	assert.False(t, cfg.Output.ShowSource)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "yamlvet.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[output]\nformat = \"json\"\n"), 0o644))

	t.Setenv("YAMLVET_OUTPUT_FORMAT", "github-actions")

	cfg, err := Load(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "github-actions", cfg.Output.Format)
	assert.Equal(t, configPath, cfg.ConfigFile)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	configPath := filepath.Join(root, ".yamlvet.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(""), 0o644))

	// Walks up from the target's directory until it finds a config.
	assert.Equal(t, configPath, Discover(filepath.Join(nested, "deploy.yaml")))

	// The closest config wins.
	closer := filepath.Join(nested, "yamlvet.toml")
	require.NoError(t, os.WriteFile(closer, []byte(""), 0o644))
	assert.Equal(t, closer, Discover(filepath.Join(nested, "deploy.yaml")))
}

func TestDiscover_HiddenNameTakesPriority(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".yamlvet.toml")
	plain := filepath.Join(dir, "yamlvet.toml")
	require.NoError(t, os.WriteFile(hidden, []byte(""), 0o644))
	require.NoError(t, os.WriteFile(plain, []byte(""), 0o644))

	assert.Equal(t, hidden, Discover(filepath.Join(dir, "a.yaml")))
}

func TestEnvKeyTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"OUTPUT_FORMAT", "output.format"},
		{"OUTPUT_SHOW_SOURCE", "output.show-source"},
		{"TOOLS_CHECKOV_ENABLED", "tools.checkov.enabled"},
		{"HOME", ""}, // unrelated variables are dropped
	}

	for _, tc := range tests {
		key, _ := envKeyTransform(tc.in, "x")
		assert.Equal(t, tc.want, key, "envKeyTransform(%q)", tc.in)
	}
}
