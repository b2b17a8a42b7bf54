package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	fs.String("format", FormatTable, "")
	fs.Duration("sample-window", 250*time.Millisecond, "")
	fs.StringSlice("packages-disabled", nil, "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.CPU.SampleWindow)
	assert.True(t, cfg.Packages.Concurrent)
	assert.Empty(t, cfg.Packages.Disabled)
	assert.Equal(t, 5*time.Second, cfg.Packages.Timeout)
	assert.Equal(t, "unknown", cfg.Output.Unknown)
	assert.Equal(t, FormatTable, cfg.Output.Format)
	assert.Equal(t, "/", cfg.Root)
}

func TestLoadFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "sysreadout.yaml",
			content: "log:\n  level: debug\ncpu:\n  sample_window: 1s\n" +
				"packages:\n  concurrent: false\n  disabled: [snap, flatpak]\noutput:\n  format: json\n",
		},
		{
			name:    "json",
			file:    "sysreadout.json",
			content: `{"log":{"level":"debug"},"cpu":{"sample_window":"1s"},"packages":{"concurrent":false,"disabled":["snap","flatpak"]},"output":{"format":"json"}}`,
		},
		{
			name: "toml",
			file: "sysreadout.toml",
			content: "[log]\nlevel = \"debug\"\n[cpu]\nsample_window = \"1s\"\n" +
				"[packages]\nconcurrent = false\ndisabled = [\"snap\", \"flatpak\"]\n[output]\nformat = \"json\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(nil, writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "debug", cfg.Log.Level)
			assert.Equal(t, time.Second, cfg.CPU.SampleWindow)
			assert.False(t, cfg.Packages.Concurrent)
			assert.Equal(t, []string{"snap", "flatpak"}, cfg.Packages.Disabled)
			assert.Equal(t, FormatJSON, cfg.Output.Format)
			assert.Equal(t, "unknown", cfg.Output.Unknown, "unset keys keep defaults")
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	cfg, err := Load(nil, writeConfig(t, "sysreadout.env", "root=/srv/fixture\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/fixture", cfg.Root)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(nil, writeConfig(t, "sysreadout.ini", "[log]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".ini")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SYSREADOUT_LOG_LEVEL", "warn")
	t.Setenv("SYSREADOUT_CPU_SAMPLE_WINDOW", "500ms")
	t.Setenv("SYSREADOUT_PACKAGES_DISABLED", "snap,cargo")
	t.Setenv("SYSREADOUT_ROOT", "/mnt/sysroot")

	cfg, err := Load(nil, writeConfig(t, "c.yaml", "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, "environment overrides the file")
	assert.Equal(t, 500*time.Millisecond, cfg.CPU.SampleWindow)
	assert.Equal(t, []string{"snap", "cargo"}, cfg.Packages.Disabled)
	assert.Equal(t, "/mnt/sysroot", cfg.Root)
}

func TestLoadEnvList(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "single backend", value: "snap", expected: []string{"snap"}},
		{name: "spaces and trailing comma", value: " snap , flatpak ,", expected: []string{"snap", "flatpak"}},
		{name: "three backends", value: "snap,cargo,flatpak", expected: []string{"snap", "cargo", "flatpak"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SYSREADOUT_PACKAGES_DISABLED", tt.value)

			cfg, err := Load(nil, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Packages.Disabled)
		})
	}
}

func TestLoadFlags(t *testing.T) {
	t.Setenv("SYSREADOUT_LOG_LEVEL", "warn")
	t.Setenv("SYSREADOUT_OUTPUT_FORMAT", FormatPlain)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--log-level=error", "--sample-window=2s", "--verbose"}))

	cfg, err := Load(fs, "")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level, "flags override the environment")
	assert.Equal(t, 2*time.Second, cfg.CPU.SampleWindow)
	assert.Equal(t, FormatPlain, cfg.Output.Format, "unchanged flags keep lower layers")
	assert.Empty(t, cfg.Packages.Disabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "zero window", mutate: func(c *Config) { c.CPU.SampleWindow = 0 }, wantErr: "cpu.sample_window"},
		{name: "negative timeout", mutate: func(c *Config) { c.Packages.Timeout = -time.Second }, wantErr: "packages.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(nil, "")
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFillsUnknownMarker(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	cfg.Output.Unknown = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "unknown", cfg.Output.Unknown)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("SYSREADOUT_LOG_LEVEL"))
	assert.Equal(t, "cpu.sample_window", envKey("SYSREADOUT_CPU_SAMPLE_WINDOW"))
	assert.Equal(t, "root", envKey("SYSREADOUT_ROOT"))
}

func TestContext(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	cfg.Output.Unknown = "?"

	ctx := cfg.WithContext(context.Background())
	assert.Same(t, cfg, Ctx(ctx))

	assert.Equal(t, "unknown", Ctx(context.Background()).Output.Unknown)
}
