package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/sysreadout/internal/readout"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug level", level: "debug", expected: zerolog.DebugLevel},
		{name: "warn level", level: "warn", expected: zerolog.WarnLevel},
		{name: "trace level", level: "trace", expected: zerolog.TraceLevel},
		{name: "uppercase level", level: "DEBUG", expected: zerolog.DebugLevel},
		{name: "whitespace level", level: " error ", expected: zerolog.ErrorLevel},
		{name: "empty level", level: "", expected: zerolog.InfoLevel},
		{name: "invalid level", level: "verbose", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "sysreadout", "info", "json")

	logger.Debug().Msg("hidden")
	logger.Info().Str("field", "general.hostname").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "sysreadout", entry["app"])
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "general.hostname", entry["field"])
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "sysreadout", "debug", "console")
	logger.Debug().Msg("console message")

	assert.Contains(t, buf.String(), "console message")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "sysreadout", "warn", "json")
	observe := Observer(&logger)

	_, err := readout.ResolveWith(readout.FieldHostname, readout.Chain[string]{
		readout.Source("missing", func() (string, error) { return "", readout.Unavailable("not here") }),
		readout.Source("broken", func() (string, error) { return "", readout.Other("parse failure") }),
		readout.Fixed("fixed", "box"),
	}, observe)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "only Other failures reach warn")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "broken", entry["adapter"])
	assert.Equal(t, "general.hostname", entry["field"])
	assert.Equal(t, readout.KindOther.String(), entry["kind"])
}
