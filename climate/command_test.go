package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorjacobs/go-natureremo/remo"
)

func TestSetHVACModeOff(t *testing.T) {
	request, err := SetHVACMode{Mode: HVACOff}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{Button: "power-off"}, request)
}

func TestSetHVACModeRestoresLastTemperature(t *testing.T) {
	request, err := SetHVACMode{
		Mode:                  HVACCool,
		LastTargetTemperature: map[string]string{"cool": "20", "warm": "23"},
		Defaults:              Defaults{Cool: "26"},
	}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{OperationMode: "cool", Temperature: "20"}, request)
}

func TestSetHVACModeFallsBackToDefault(t *testing.T) {
	request, err := SetHVACMode{
		Mode:     HVACHeat,
		Defaults: Defaults{Cool: "26", Heat: "22"},
	}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{OperationMode: "warm", Temperature: "22"}, request)
}

func TestSetHVACModeOmitsTemperature(t *testing.T) {
	// Neither a remembered temperature nor a default: fan_only has no
	// configured default.
	request, err := SetHVACMode{Mode: HVACFanOnly, Defaults: Defaults{Cool: "26", Heat: "22"}}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{OperationMode: "blow"}, request)
}

func TestSetHVACModeUnknownMode(t *testing.T) {
	_, err := SetHVACMode{Mode: HVACMode("heat_cool")}.Request()
	assert.Error(t, err)
}

func TestSetTemperature(t *testing.T) {
	request, err := SetTemperature{Value: 23.0}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{Temperature: "23"}, request)

	request, err = SetTemperature{Value: 23.5}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{Temperature: "23.5"}, request)
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{16, "16"},
		{23.0, "23"},
		{23.5, "23.5"},
		{0, "0"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatTemperature(test.value))
	}
}

func TestSetFanMode(t *testing.T) {
	request, err := SetFanMode{Mode: "3"}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{AirVolume: "3"}, request)
}

func TestSetSwingMode(t *testing.T) {
	request, err := SetSwingMode{Mode: "still"}.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{AirDirection: "still"}, request)
}

func TestTurnOnMode(t *testing.T) {
	// Without a known vendor mode, turning on defaults to cooling.
	mode, err := TurnOnMode("")
	require.NoError(t, err)
	assert.Equal(t, HVACCool, mode)

	mode, err = TurnOnMode("warm")
	require.NoError(t, err)
	assert.Equal(t, HVACHeat, mode)

	_, err = TurnOnMode("defrost")
	assert.Error(t, err)
}
