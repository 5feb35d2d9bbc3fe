package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorjacobs/go-natureremo/climate"
	"github.com/victorjacobs/go-natureremo/remo"
)

func testDefaults() climate.Defaults {
	return climate.Defaults{Cool: "26", Heat: "22"}
}

func newTestAircon(t *testing.T, client *fakeClient) *Aircon {
	t.Helper()
	coordinator := refreshedCoordinator(t, client)
	aircon, err := NewAircon(client, coordinator, testAppliance(), testDefaults())
	require.NoError(t, err)
	return aircon
}

func TestNewAirconAppliesInitialSettings(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})

	state := aircon.State()
	assert.Equal(t, "cool", state.HVACMode)
	require.NotNil(t, state.TargetTemperature)
	assert.Equal(t, 20.0, *state.TargetTemperature)
	assert.Equal(t, "20", state.PreviousTargetTemperature["cool"])
}

func TestNewAirconRejectsUnknownMode(t *testing.T) {
	appliance := testAppliance()
	appliance.Settings.Mode = "defrost"
	coordinator := refreshedCoordinator(t, &fakeClient{})

	_, err := NewAircon(&fakeClient{}, coordinator, appliance, testDefaults())
	assert.Error(t, err)
}

func TestHvacModes(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})

	modes, err := aircon.hvacModes()
	require.NoError(t, err)
	assert.Equal(t, []string{"cool", "heat", "off"}, modes)
}

func TestFanAndSwingModes(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})

	assert.Equal(t, []string{"1", "auto"}, aircon.fanModes())
	assert.Equal(t, []string{"still", "swing"}, aircon.swingModes())
}

func TestModeCommandCarriesTemperatureMemory(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})

	request, err := aircon.modeCommand(climate.HVACCool).Request()
	require.NoError(t, err)
	// The temperature last seen in cool mode rides along with the mode change.
	assert.Equal(t, remo.AirconSettingsRequest{OperationMode: "cool", Temperature: "20"}, request)

	request, err = aircon.modeCommand(climate.HVACHeat).Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{OperationMode: "warm", Temperature: "22"}, request)
}

func TestPowerCommand(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})

	command, err := aircon.powerCommand("OFF")
	require.NoError(t, err)
	request, err := command.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{Button: "power-off"}, request)

	// Turning on restores the remembered cool mode.
	command, err = aircon.powerCommand("ON")
	require.NoError(t, err)
	request, err = command.Request()
	require.NoError(t, err)
	assert.Equal(t, "cool", request.OperationMode)
}

func TestPowerCommandDefaultsToCool(t *testing.T) {
	appliance := testAppliance()
	appliance.Settings = nil
	coordinator := refreshedCoordinator(t, &fakeClient{})
	aircon, err := NewAircon(&fakeClient{}, coordinator, appliance, testDefaults())
	require.NoError(t, err)

	command, err := aircon.powerCommand("ON")
	require.NoError(t, err)
	request, err := command.Request()
	require.NoError(t, err)
	assert.Equal(t, "cool", request.OperationMode)
	assert.Equal(t, "26", request.Temperature)
}

func TestTemperatureCommand(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})

	command, err := aircon.temperatureCommand("23.5")
	require.NoError(t, err)
	request, err := command.Request()
	require.NoError(t, err)
	assert.Equal(t, remo.AirconSettingsRequest{Temperature: "23.5"}, request)

	// An empty payload is a no-op, not an error.
	command, err = aircon.temperatureCommand("")
	require.NoError(t, err)
	assert.Nil(t, command)

	_, err = aircon.temperatureCommand("warm")
	assert.Error(t, err)
}

func TestSendCommandAppliesResponse(t *testing.T) {
	client := &fakeClient{
		appliances: []remo.Appliance{testAppliance()},
		response:   &remo.AirconSettings{Mode: "cool", Temp: "25", Vol: "auto", Dir: "swing"},
	}
	aircon := newTestAircon(t, client)
	mqttClient := newStubMqtt()

	require.NoError(t, aircon.sendCommand(mqttClient, climate.SetTemperature{Value: 25}))

	require.Len(t, client.updates, 1)
	assert.Equal(t, remo.AirconSettingsRequest{Temperature: "25"}, client.updates[0])

	// State comes from the API response, not from the command.
	state := aircon.State()
	require.NotNil(t, state.TargetTemperature)
	assert.Equal(t, 25.0, *state.TargetTemperature)

	assert.Equal(t, "cool", mqttClient.published[aircon.stateTopic("mode")])
	assert.Equal(t, "25", mqttClient.published[aircon.stateTopic("temperature")])
}

func TestOnRefreshPublishesState(t *testing.T) {
	client := &fakeClient{
		appliances: []remo.Appliance{testAppliance()},
		devices:    []remo.Device{testDevice()},
	}
	aircon := newTestAircon(t, client)
	mqttClient := newStubMqtt()

	aircon.OnRefresh(mqttClient)

	assert.Equal(t, "cool", mqttClient.published[aircon.stateTopic("mode")])
	assert.Equal(t, "auto", mqttClient.published[aircon.stateTopic("fan")])
	assert.Equal(t, "21.3", mqttClient.published[aircon.currentTemperatureTopic()])
}

func TestOnRefreshToleratesMissingAppliance(t *testing.T) {
	client := &fakeClient{appliances: []remo.Appliance{testAppliance()}}
	aircon := newTestAircon(t, client)

	client.appliances = nil
	require.NoError(t, aircon.coordinator.Refresh())

	mqttClient := newStubMqtt()
	aircon.OnRefresh(mqttClient)

	assert.Empty(t, mqttClient.published)
}

func TestRegisterPublishesDiscovery(t *testing.T) {
	aircon := newTestAircon(t, &fakeClient{appliances: []remo.Appliance{testAppliance()}})
	mqttClient := newStubMqtt()

	require.NoError(t, aircon.Register(mqttClient))

	payload, ok := mqttClient.published["homeassistant/climate/ac-1/config"]
	require.True(t, ok)
	assert.Contains(t, payload, `"mode_command_topic":"natureremo/ac/ac-1/mode/cmd"`)
	assert.Contains(t, payload, `"min_temp":16`)
	assert.Contains(t, payload, `"temp_step":1`)
}
