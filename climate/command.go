package climate

import (
	"math"
	"strconv"

	"github.com/victorjacobs/go-natureremo/remo"
)

// Command is a user intent that serializes to the vendor wire format at the
// boundary. The API responds to every accepted command with a fresh settings
// object, which the caller must feed back through Reduce; commands never
// update state optimistically.
type Command interface {
	Request() (remo.AirconSettingsRequest, error)
}

// Defaults holds the configured fallback target temperatures, as vendor
// format strings. Only cool and heat carry defaults.
type Defaults struct {
	Cool string
	Heat string
}

func (d Defaults) forMode(mode HVACMode) string {
	switch mode {
	case HVACCool:
		return d.Cool
	case HVACHeat:
		return d.Heat
	default:
		return ""
	}
}

// SetHVACMode switches the operation mode. A mode change is sent together
// with a target temperature when one is known: first the temperature last
// used in the target mode, then the configured default, else none.
type SetHVACMode struct {
	Mode                  HVACMode
	LastTargetTemperature map[string]string
	Defaults              Defaults
}

func (c SetHVACMode) Request() (remo.AirconSettingsRequest, error) {
	remoMode, err := RemoMode(c.Mode)
	if err != nil {
		return remo.AirconSettingsRequest{}, err
	}

	if remoMode == ButtonPowerOff {
		return remo.AirconSettingsRequest{Button: ButtonPowerOff}, nil
	}

	request := remo.AirconSettingsRequest{OperationMode: remoMode}
	if last := c.LastTargetTemperature[remoMode]; last != "" {
		request.Temperature = last
	} else if fallback := c.Defaults.forMode(c.Mode); fallback != "" {
		request.Temperature = fallback
	}

	return request, nil
}

// SetTemperature changes the target temperature.
type SetTemperature struct {
	Value float64
}

func (c SetTemperature) Request() (remo.AirconSettingsRequest, error) {
	return remo.AirconSettingsRequest{Temperature: FormatTemperature(c.Value)}, nil
}

// SetFanMode passes the fan speed through verbatim; the platform only offers
// options from the mode's vol range, so no validation happens here.
type SetFanMode struct {
	Mode string
}

func (c SetFanMode) Request() (remo.AirconSettingsRequest, error) {
	return remo.AirconSettingsRequest{AirVolume: c.Mode}, nil
}

// SetSwingMode passes the swing direction through verbatim.
type SetSwingMode struct {
	Mode string
}

func (c SetSwingMode) Request() (remo.AirconSettingsRequest, error) {
	return remo.AirconSettingsRequest{AirDirection: c.Mode}, nil
}

// FormatTemperature renders a temperature the way the vendor expects: whole
// degrees without a decimal point, since the API rejects "23.0".
func FormatTemperature(value float64) string {
	if value == math.Trunc(value) {
		return strconv.Itoa(int(value))
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// TurnOnMode resolves what a bare "turn on" means: restore the remembered
// vendor mode, or cool when none is known yet.
func TurnOnMode(remoMode string) (HVACMode, error) {
	if remoMode == "" {
		return HVACCool, nil
	}
	return HVACModeOf(remoMode)
}
