package climate

import "fmt"

// HVACMode is the platform-facing operation mode, using Home Assistant's
// climate mode identifiers.
type HVACMode string

const (
	HVACOff     HVACMode = "off"
	HVACAuto    HVACMode = "auto"
	HVACCool    HVACMode = "cool"
	HVACDry     HVACMode = "dry"
	HVACFanOnly HVACMode = "fan_only"
	HVACHeat    HVACMode = "heat"
)

// ButtonPowerOff turns an AC off. It is a button command on the vendor API,
// not an operation_mode value, so it never appears in the reverse table.
const ButtonPowerOff = "power-off"

var modeToRemo = map[HVACMode]string{
	HVACAuto:    "auto",
	HVACFanOnly: "blow",
	HVACCool:    "cool",
	HVACDry:     "dry",
	HVACHeat:    "warm",
	HVACOff:     ButtonPowerOff,
}

var modeFromRemo = map[string]HVACMode{
	"auto": HVACAuto,
	"blow": HVACFanOnly,
	"cool": HVACCool,
	"dry":  HVACDry,
	"warm": HVACHeat,
}

// RemoMode translates a platform mode to the vendor mode string.
func RemoMode(mode HVACMode) (string, error) {
	if remoMode, ok := modeToRemo[mode]; ok {
		return remoMode, nil
	}
	return "", fmt.Errorf("unknown hvac mode: %v", mode)
}

// HVACModeOf translates a vendor mode string back to the platform mode. An
// unknown string means the API broke contract, so this fails instead of
// guessing.
func HVACModeOf(remoMode string) (HVACMode, error) {
	if mode, ok := modeFromRemo[remoMode]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("unknown vendor mode: %v", remoMode)
}
