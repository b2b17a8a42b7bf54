package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToHumanReadable(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{16 * 1024 * 1024 * 1024, "16.0 GiB"},
		{^uint64(0), "16.0 EiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BytesToHumanReadable(tt.in), tt.in)
	}
}

func TestSecondsToHumanReadable(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0s"},
		{59, "59s"},
		{60, "1m"},
		{3600, "1h"},
		{93784, "1d 2h 3m"},
		{86400 * 3, "3d"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondsToHumanReadable(tt.in), tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75%", Percent(75))
	assert.Equal(t, "12.3%", Percent(12.34))
	assert.Equal(t, "0%", Percent(0))
}
