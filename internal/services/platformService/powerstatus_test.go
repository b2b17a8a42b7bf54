package platformservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redjax/sysreadout/internal/readout"
)

func TestPowerStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    powerStatus
		pct       uint8
		pctKind   readout.Kind
		state     readout.BatteryState
		stateKind readout.Kind
	}{
		{
			name:   "on battery",
			status: powerStatus{ACLineStatus: acLineOffline, BatteryFlag: 1, BatteryLifePercent: 70},
			pct:    70,
			state:  readout.BatteryDischarging,
		},
		{
			name:   "charging flag",
			status: powerStatus{ACLineStatus: acLineOnline, BatteryFlag: batteryFlagCharging, BatteryLifePercent: 30},
			pct:    30,
			state:  readout.BatteryCharging,
		},
		{
			name:   "plugged in and full",
			status: powerStatus{ACLineStatus: acLineOnline, BatteryFlag: 1, BatteryLifePercent: 100},
			pct:    100,
			state:  readout.BatteryFull,
		},
		{
			name:   "plugged in not charging",
			status: powerStatus{ACLineStatus: acLineOnline, BatteryFlag: 1, BatteryLifePercent: 80},
			pct:    80,
			state:  readout.BatteryNotCharging,
		},
		{
			name:      "unknown percentage sentinel",
			status:    powerStatus{ACLineStatus: statusUnknown, BatteryFlag: statusUnknown, BatteryLifePercent: statusUnknown},
			pctKind:   readout.KindMetricNotAvailable,
			stateKind: readout.KindMetricNotAvailable,
		},
		{
			name:      "no system battery",
			status:    powerStatus{ACLineStatus: acLineOnline, BatteryFlag: batteryFlagNoBattery, BatteryLifePercent: statusUnknown},
			pctKind:   readout.KindMetricNotAvailable,
			stateKind: readout.KindMetricNotAvailable,
		},
		{
			name:      "unexpected AC line status",
			status:    powerStatus{ACLineStatus: 7, BatteryFlag: 1, BatteryLifePercent: 50},
			pct:       50,
			stateKind: readout.KindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, err := tt.status.percentage()
			if tt.pctKind != 0 {
				assert.Equal(t, tt.pctKind, readout.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.pct, pct)
			}

			state, err := tt.status.state()
			if tt.stateKind != 0 {
				assert.Equal(t, tt.stateKind, readout.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.state, state)
			}
		})
	}
}

func TestWindowsProductName(t *testing.T) {
	assert.Equal(t, "Windows 11 Pro", windowsProductName("Windows 10 Pro", 22631))
	assert.Equal(t, "Windows 10 Pro", windowsProductName("Windows 10 Pro", 19045))
	assert.Equal(t, "Windows Server 2022 Standard", windowsProductName("Windows Server 2022 Standard", 20348))
}
