package platformservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/sysreadout/internal/readout"
)

func TestParseBoottime(t *testing.T) {
	now := time.Unix(1710003600, 0)

	up, err := parseBoottime("{ sec = 1710000000, usec = 123456 } Sat Mar  9 16:00:00 2024\n", now)
	require.NoError(t, err)
	assert.Equal(t, uint64(3600), up)

	_, err = parseBoottime("kern.boottime: unknown", now)
	assert.Equal(t, readout.KindOther, readout.KindOf(err))

	_, err = parseBoottime("{ sec = 1810000000, usec = 0 }", now)
	assert.Equal(t, readout.KindOther, readout.KindOf(err))
}

func TestUptimeFromClock(t *testing.T) {
	tests := []struct {
		name      string
		sec, nsec int64
		expected  uint64
		kind      readout.Kind
	}{
		{name: "whole seconds", sec: 93784, expected: 93784},
		{name: "fraction truncated", sec: 59, nsec: 999_999_999, expected: 59},
		{name: "zero", kind: readout.KindMetricNotAvailable},
		{name: "negative", sec: -1, kind: readout.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uptimeFromClock(tt.sec, tt.nsec)
			if tt.kind != 0 {
				assert.Equal(t, tt.kind, readout.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePmset(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want pmsetBattery
		kind readout.Kind
	}{
		{
			name: "charging",
			out:  "Now drawing from 'AC Power'\n -InternalBattery-0 (id=4653155)\t95%; charging; 1:05 remaining present: true\n",
			want: pmsetBattery{Percentage: 95, State: readout.BatteryCharging},
		},
		{
			name: "discharging",
			out:  "Now drawing from 'Battery Power'\n -InternalBattery-0 (id=4653155)\t42%; discharging; 3:12 remaining present: true\n",
			want: pmsetBattery{Percentage: 42, State: readout.BatteryDischarging},
		},
		{
			name: "charged",
			out:  "Now drawing from 'AC Power'\n -InternalBattery-0 (id=4653155)\t100%; charged; 0:00 remaining present: true\n",
			want: pmsetBattery{Percentage: 100, State: readout.BatteryFull},
		},
		{
			name: "desktop without battery",
			out:  "Now drawing from 'AC Power'\n",
			kind: readout.KindMetricNotAvailable,
		},
		{
			name: "unknown state",
			out:  " -InternalBattery-0 (id=1)\t50%; resting; present: true\n",
			kind: readout.KindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePmset(tt.out)
			if tt.kind != 0 {
				assert.Equal(t, tt.kind, readout.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIORegUUID(t *testing.T) {
	out := `+-o J316sAP  <class IOPlatformExpertDevice, id 0x100000219, registered, matched, active, busy 0 (0 ms), retain 41>
    {
      "IOPlatformSerialNumber" = "C02XXXXXXX"
      "IOPlatformUUID" = "5E1B3C2A-9F0D-4E7B-8A6C-1D2E3F405162"
    }
`
	id, err := parseIORegUUID(out)
	require.NoError(t, err)
	assert.Equal(t, "5e1b3c2a-9f0d-4e7b-8a6c-1d2e3f405162", id)

	_, err = parseIORegUUID("{}\n")
	assert.True(t, readout.IsUnavailable(err))
}

func TestMacHelpers(t *testing.T) {
	family, err := macFamily("MacBookPro18,3")
	require.NoError(t, err)
	assert.Equal(t, "MacBookPro", family)

	_, err = macFamily("18,3")
	assert.True(t, readout.IsUnavailable(err))

	name, err := macOSName("14.4.1\n")
	require.NoError(t, err)
	assert.Equal(t, "macOS 14.4.1", name)
}

func TestCommandSourceMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := commandSource(trimmedOutput, "sysreadout-no-such-tool").Fetch()
	assert.True(t, readout.IsUnavailable(err))
}
