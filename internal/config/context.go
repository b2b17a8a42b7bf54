package config

import (
	"context"

	"github.com/redjax/sysreadout/internal/readout"
)

type ctxKey struct{}

// WithContext returns a copy of ctx carrying cfg.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// Ctx returns the Config stored in ctx, or the defaults when none is.
func Ctx(ctx context.Context) *Config {
	if c, ok := ctx.Value(ctxKey{}).(*Config); ok && c != nil {
		return c
	}

	c, err := Load(nil, "")
	if err != nil {
		// Defaults always validate; an environment override may not.
		return &Config{
			Log:      LogConfig{Level: "info", Format: "console"},
			CPU:      CPUConfig{SampleWindow: readout.DefaultSampleWindow},
			Packages: PackagesConfig{Concurrent: true, Timeout: DefaultPackagesTimeout},
			Output:   OutputConfig{Unknown: "unknown", Format: FormatTable},
			Root:     "/",
		}
	}
	return c
}
