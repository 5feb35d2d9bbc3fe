package climate

import (
	"strconv"

	"github.com/victorjacobs/go-natureremo/remo"
)

// State is the normalized view of one AC appliance. Reduce rebuilds it
// wholesale on every settings update; only the per-mode temperature memory
// and the current room temperature carry over between updates.
type State struct {
	HVACMode           HVACMode
	RemoMode           string
	TargetTemperature  *float64
	CurrentTemperature *float64
	FanMode            string
	SwingMode          string
	// LastTargetTemperature remembers, per vendor mode, the raw temperature
	// string last seen in that mode, so switching back to a mode can restore
	// the temperature that was used there.
	LastTargetTemperature map[string]string
}

// Reduce folds a settings object, and optionally the linked hub's telemetry,
// into a new State. prev is not mutated. The vendor mode is retained even
// while the AC is powered off, so turning back on can restore it.
func Reduce(prev State, settings remo.AirconSettings, device *remo.Device) (State, error) {
	next := State{
		RemoMode:              settings.Mode,
		CurrentTemperature:    prev.CurrentTemperature,
		LastTargetTemperature: cloneTemperatures(prev.LastTargetTemperature),
	}

	// An unparsable temp (often an empty string) only blanks the target, it
	// never fails the whole update.
	if target, err := strconv.ParseFloat(settings.Temp, 64); err == nil {
		next.TargetTemperature = &target
		next.LastTargetTemperature[next.RemoMode] = settings.Temp
	}

	if settings.Button == ButtonPowerOff {
		next.HVACMode = HVACOff
	} else {
		mode, err := HVACModeOf(next.RemoMode)
		if err != nil {
			return State{}, err
		}
		next.HVACMode = mode
	}

	next.FanMode = settings.Vol
	next.SwingMode = settings.Dir

	if device != nil {
		if event, ok := device.NewestEvents[remo.EventTemperature]; ok {
			current := event.Val
			next.CurrentTemperature = &current
		}
	}

	return next, nil
}

func cloneTemperatures(temperatures map[string]string) map[string]string {
	cloned := make(map[string]string, len(temperatures))
	for mode, temp := range temperatures {
		cloned[mode] = temp
	}
	return cloned
}
