package platformservice

import (
	"strings"

	"github.com/redjax/sysreadout/internal/readout"
)

// Values of SYSTEM_POWER_STATUS as returned by GetSystemPowerStatus.
const (
	acLineOffline byte = 0
	acLineOnline  byte = 1
	statusUnknown byte = 255

	batteryFlagCharging  byte = 8
	batteryFlagNoBattery byte = 128
)

type powerStatus struct {
	ACLineStatus        byte
	BatteryFlag         byte
	BatteryLifePercent  byte
	SystemStatusFlag    byte
	BatteryLifeTime     uint32
	BatteryFullLifeTime uint32
}

func (p powerStatus) percentage() (uint8, error) {
	if p.BatteryFlag == batteryFlagNoBattery {
		return 0, readout.Unavailable("no system battery")
	}
	if p.BatteryLifePercent == statusUnknown {
		return 0, readout.Unavailable("battery percentage unknown")
	}
	if p.BatteryLifePercent > 100 {
		return 0, readout.Otherf("battery percentage %d out of range", p.BatteryLifePercent)
	}
	return p.BatteryLifePercent, nil
}

func (p powerStatus) state() (readout.BatteryState, error) {
	if p.BatteryFlag == batteryFlagNoBattery {
		return readout.BatteryUnknown, readout.Unavailable("no system battery")
	}
	if p.BatteryFlag != statusUnknown && p.BatteryFlag&batteryFlagCharging != 0 {
		return readout.BatteryCharging, nil
	}

	switch p.ACLineStatus {
	case acLineOffline:
		return readout.BatteryDischarging, nil
	case acLineOnline:
		if p.BatteryLifePercent == 100 {
			return readout.BatteryFull, nil
		}
		return readout.BatteryNotCharging, nil
	case statusUnknown:
		return readout.BatteryUnknown, readout.Unavailable("AC line status unknown")
	default:
		return readout.BatteryUnknown, readout.Otherf("unexpected AC line status %d", p.ACLineStatus)
	}
}

// windowsProductName corrects the registry ProductName, which still reads
// "Windows 10" on Windows 11 builds.
func windowsProductName(product string, build int) string {
	product = strings.TrimSpace(product)
	if build >= 22000 && strings.HasPrefix(product, "Windows 10") {
		return "Windows 11" + strings.TrimPrefix(product, "Windows 10")
	}
	return product
}
