// Package config loads sysreadout settings with koanf. Sources are layered
// defaults < config file < SYSREADOUT_* environment < command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/redjax/sysreadout/internal/readout"
)

// EnvPrefix prefixes every environment override, SYSREADOUT_LOG_LEVEL
// mapping to log.level.
const EnvPrefix = "SYSREADOUT_"

// DefaultPackagesTimeout bounds the whole package count, not each backend.
const DefaultPackagesTimeout = 5 * time.Second

// Output formats.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

type Config struct {
	Log      LogConfig      `koanf:"log"`
	CPU      CPUConfig      `koanf:"cpu"`
	Packages PackagesConfig `koanf:"packages"`
	Output   OutputConfig   `koanf:"output"`
	// Root prefixes absolute paths read by file sources.
	Root string `koanf:"root"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type CPUConfig struct {
	SampleWindow time.Duration `koanf:"sample_window"`
}

type PackagesConfig struct {
	Concurrent bool          `koanf:"concurrent"`
	Disabled   []string      `koanf:"disabled"`
	Timeout    time.Duration `koanf:"timeout"`
}

type OutputConfig struct {
	Unknown string `koanf:"unknown"`
	Format  string `koanf:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":           "info",
		"log.format":          "console",
		"cpu.sample_window":   readout.DefaultSampleWindow.String(),
		"packages.concurrent": true,
		"packages.disabled":   []string{},
		"packages.timeout":    DefaultPackagesTimeout.String(),
		"output.unknown":      "unknown",
		"output.format":       FormatTable,
		"root":                "/",
	}
}

// Load layers the configuration sources. flags may be nil; only flags the
// user actually set override lower layers. An empty path skips the file.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		parser, err := parserForFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// SYSREADOUT_CPU_SAMPLE_WINDOW cannot be split on every "_", so only the
	// first underscore separates section from key.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FlagKeys maps command-line flag names to configuration keys. Flags not
// listed here are not configuration.
var FlagKeys = map[string]string{
	"log-level":           "log.level",
	"log-format":          "log.format",
	"sample-window":       "cpu.sample_window",
	"packages-concurrent": "packages.concurrent",
	"packages-disabled":   "packages.disabled",
	"packages-timeout":    "packages.timeout",
	"unknown":             "output.unknown",
	"format":              "output.format",
	"root":                "root",
}

func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		key, ok := FlagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// listKeys are read from the environment as comma-separated lists.
var listKeys = map[string]bool{
	"packages.disabled": true,
}

func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}
	return key, splitList(value)
}

// splitList splits "snap, cargo," into ["snap" "cargo"].
func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "root" {
		return key
	}
	return strings.Replace(key, "_", ".", 1)
}

// Validate rejects values the commands cannot act on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatPlain, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %s, %s or %s, got %q", FormatTable, FormatPlain, FormatJSON, c.Output.Format)
	}
	if c.CPU.SampleWindow <= 0 {
		return fmt.Errorf("cpu.sample_window must be positive, got %s", c.CPU.SampleWindow)
	}
	if c.Packages.Timeout < 0 {
		return fmt.Errorf("packages.timeout must not be negative, got %s", c.Packages.Timeout)
	}
	if c.Output.Unknown == "" {
		c.Output.Unknown = "unknown"
	}
	return nil
}

func parserForFile(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown config file extension: %q", ext)
	}
}
