package bridge

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-natureremo/climate"
	"github.com/victorjacobs/go-natureremo/config"
	"github.com/victorjacobs/go-natureremo/homeassistant"
	"github.com/victorjacobs/go-natureremo/remo"
)

// Aircon bridges one AC appliance between the cloud API and Home Assistant.
// It holds the appliance's normalized state, rebuilt by the reducer from
// every cache refresh and every command response.
type Aircon struct {
	client      remoClient
	coordinator *Coordinator
	applianceID string
	deviceID    string
	name        string
	modes       map[string]remo.AirconModeRange
	defaults    climate.Defaults

	mutex sync.Mutex
	state climate.State
}

func NewAircon(client remoClient, coordinator *Coordinator, appliance remo.Appliance, defaults climate.Defaults) (*Aircon, error) {
	aircon := &Aircon{
		client:      client,
		coordinator: coordinator,
		applianceID: appliance.ID,
		deviceID:    appliance.Device.ID,
		name:        strings.TrimSpace(appliance.Nickname),
		defaults:    defaults,
	}

	if appliance.Aircon != nil {
		aircon.modes = appliance.Aircon.Range.Modes
	}

	if appliance.Settings != nil {
		if err := aircon.applySettings(*appliance.Settings, nil); err != nil {
			return nil, fmt.Errorf("appliance %v: %w", appliance.ID, err)
		}
	}

	return aircon, nil
}

// Register announces the climate entity over MQTT discovery.
func (a *Aircon) Register(mqttClient mqtt.Client) error {
	hvacModes, err := a.hvacModes()
	if err != nil {
		return err
	}

	discovery := homeassistant.Climate{
		UniqueId:                a.applianceID,
		Name:                    a.name,
		Modes:                   hvacModes,
		ModeStateTopic:          a.stateTopic("mode"),
		ModeCommandTopic:        a.commandTopic("mode"),
		PowerCommandTopic:       a.commandTopic("power"),
		TemperatureStateTopic:   a.stateTopic("temperature"),
		TemperatureCommandTopic: a.commandTopic("temperature"),
		CurrentTemperatureTopic: a.currentTemperatureTopic(),
		FanModes:                a.fanModes(),
		FanModeStateTopic:       a.stateTopic("fan"),
		FanModeCommandTopic:     a.commandTopic("fan"),
		SwingModes:              a.swingModes(),
		SwingModeStateTopic:     a.stateTopic("swing"),
		SwingModeCommandTopic:   a.commandTopic("swing"),
		JsonAttributesTopic:     a.attributesTopic(),
		TemperatureUnit:         "C",
	}

	if modeRange, ok := a.currentModeRange(); ok {
		discovery.MinTemp = climate.MinTemp(modeRange)
		discovery.MaxTemp = climate.MaxTemp(modeRange)
		discovery.TempStep = climate.TempStep(modeRange)
	}

	if err := homeassistant.NewClient(mqttClient).RegisterClimate(discovery); err != nil {
		return err
	}

	log.Printf("Registered climate entity %v", a.name)
	return nil
}

// SubscribeToCommands hooks the entity's command topics up. Called from the
// MQTT OnConnect handler so subscriptions survive reconnects.
func (a *Aircon) SubscribeToCommands(mqttClient mqtt.Client) {
	a.subscribe(mqttClient, a.commandTopic("mode"), func(client mqtt.Client, msg mqtt.Message) {
		command := a.modeCommand(climate.HVACMode(string(msg.Payload())))
		if err := a.sendCommand(client, command); err != nil {
			log.Printf("Error setting hvac mode on %v: %v", a.name, err)
		}
	})

	a.subscribe(mqttClient, a.commandTopic("power"), func(client mqtt.Client, msg mqtt.Message) {
		command, err := a.powerCommand(string(msg.Payload()))
		if err != nil {
			log.Printf("Error turning %v on: %v", a.name, err)
			return
		}
		if err := a.sendCommand(client, command); err != nil {
			log.Printf("Error switching power on %v: %v", a.name, err)
		}
	})

	a.subscribe(mqttClient, a.commandTopic("temperature"), func(client mqtt.Client, msg mqtt.Message) {
		command, err := a.temperatureCommand(string(msg.Payload()))
		if err != nil {
			log.Printf("Error setting temperature on %v: %v", a.name, err)
			return
		}
		if command == nil {
			return
		}
		if err := a.sendCommand(client, command); err != nil {
			log.Printf("Error setting temperature on %v: %v", a.name, err)
		}
	})

	a.subscribe(mqttClient, a.commandTopic("fan"), func(client mqtt.Client, msg mqtt.Message) {
		if err := a.sendCommand(client, climate.SetFanMode{Mode: string(msg.Payload())}); err != nil {
			log.Printf("Error setting fan mode on %v: %v", a.name, err)
		}
	})

	a.subscribe(mqttClient, a.commandTopic("swing"), func(client mqtt.Client, msg mqtt.Message) {
		if err := a.sendCommand(client, climate.SetSwingMode{Mode: string(msg.Payload())}); err != nil {
			log.Printf("Error setting swing mode on %v: %v", a.name, err)
		}
	})
}

// OnRefresh re-reads the cached snapshot after a coordinator refresh. When
// the appliance dropped out of the snapshot the previous published state is
// left alone.
func (a *Aircon) OnRefresh(mqttClient mqtt.Client) {
	appliance, ok := a.coordinator.Appliance(a.applianceID)
	if !ok || appliance.Settings == nil {
		log.Printf("Appliance %v missing from snapshot", a.applianceID)
		return
	}

	var device *remo.Device
	if linked, ok := a.coordinator.Device(a.deviceID); ok {
		device = &linked
	}

	if err := a.applySettings(*appliance.Settings, device); err != nil {
		log.Printf("Error updating %v: %v", a.name, err)
		return
	}

	if err := a.PublishState(mqttClient); err != nil {
		log.Printf("MQTT publishing failed: %v", err)
	}
}

// PublishState pushes the normalized state to the entity's state topics.
func (a *Aircon) PublishState(mqttClient mqtt.Client) error {
	a.mutex.Lock()
	state := a.state
	a.mutex.Unlock()

	messages := map[string]string{
		a.stateTopic("mode"):        string(state.HVACMode),
		a.stateTopic("temperature"): "",
		a.stateTopic("fan"):         state.FanMode,
		a.stateTopic("swing"):       state.SwingMode,
	}

	if state.TargetTemperature != nil {
		messages[a.stateTopic("temperature")] = climate.FormatTemperature(*state.TargetTemperature)
	}

	if state.CurrentTemperature != nil {
		messages[a.currentTemperatureTopic()] = strconv.FormatFloat(*state.CurrentTemperature, 'f', -1, 64)
	}

	attributes, _ := json.Marshal(map[string]interface{}{
		"previous_target_temperature": state.LastTargetTemperature,
	})
	messages[a.attributesTopic()] = string(attributes)

	for topic, payload := range messages {
		if t := mqttClient.Publish(topic, 0, true, payload); t.Wait() && t.Error() != nil {
			return t.Error()
		}
	}

	return nil
}

// State returns a copy of the normalized state for the debug endpoint.
func (a *Aircon) State() AirconState {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return AirconState{
		ID:                        a.applianceID,
		Name:                      a.name,
		HVACMode:                  string(a.state.HVACMode),
		RemoMode:                  a.state.RemoMode,
		TargetTemperature:         a.state.TargetTemperature,
		CurrentTemperature:        a.state.CurrentTemperature,
		FanMode:                   a.state.FanMode,
		SwingMode:                 a.state.SwingMode,
		PreviousTargetTemperature: a.state.LastTargetTemperature,
	}
}

func (a *Aircon) modeCommand(mode climate.HVACMode) climate.Command {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return climate.SetHVACMode{
		Mode:                  mode,
		LastTargetTemperature: a.state.LastTargetTemperature,
		Defaults:              a.defaults,
	}
}

// powerCommand maps the ON/OFF payloads of the power topic. ON restores the
// remembered vendor mode, or cooling when none is known yet.
func (a *Aircon) powerCommand(payload string) (climate.Command, error) {
	if payload == "OFF" {
		return a.modeCommand(climate.HVACOff), nil
	}

	a.mutex.Lock()
	remoMode := a.state.RemoMode
	a.mutex.Unlock()

	mode, err := climate.TurnOnMode(remoMode)
	if err != nil {
		return nil, err
	}
	return a.modeCommand(mode), nil
}

// temperatureCommand returns a nil command for an empty payload: a
// temperature change without a temperature is a no-op.
func (a *Aircon) temperatureCommand(payload string) (climate.Command, error) {
	if payload == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid temperature payload: %v", payload)
	}

	return climate.SetTemperature{Value: value}, nil
}

// sendCommand posts a command and folds the settings the API responds with
// back into the normalized state. There is no optimistic update.
func (a *Aircon) sendCommand(mqttClient mqtt.Client, command climate.Command) error {
	request, err := command.Request()
	if err != nil {
		return err
	}

	settings, err := a.client.UpdateAirconSettings(a.applianceID, request)
	if err != nil {
		return err
	}

	if err := a.applySettings(*settings, nil); err != nil {
		return err
	}

	return a.PublishState(mqttClient)
}

func (a *Aircon) applySettings(settings remo.AirconSettings, device *remo.Device) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	next, err := climate.Reduce(a.state, settings, device)
	if err != nil {
		return err
	}
	a.state = next
	return nil
}

// hvacModes lists the platform modes this AC supports: the translation of
// every vendor mode it reports, plus off.
func (a *Aircon) hvacModes() ([]string, error) {
	modes := make([]string, 0, len(a.modes)+1)
	for remoMode := range a.modes {
		mode, err := climate.HVACModeOf(remoMode)
		if err != nil {
			return nil, err
		}
		modes = append(modes, string(mode))
	}
	sort.Strings(modes)
	return append(modes, string(climate.HVACOff)), nil
}

func (a *Aircon) fanModes() []string {
	return a.collectOptions(func(modeRange remo.AirconModeRange) []string { return modeRange.Vol })
}

func (a *Aircon) swingModes() []string {
	return a.collectOptions(func(modeRange remo.AirconModeRange) []string { return modeRange.Dir })
}

// collectOptions unions an option list over all vendor modes, since the
// discovery payload is static while the per-mode options vary.
func (a *Aircon) collectOptions(options func(remo.AirconModeRange) []string) []string {
	seen := map[string]bool{}
	var collected []string
	for _, modeRange := range a.modes {
		for _, option := range options(modeRange) {
			if option == "" || seen[option] {
				continue
			}
			seen[option] = true
			collected = append(collected, option)
		}
	}
	sort.Strings(collected)
	return collected
}

func (a *Aircon) currentModeRange() (remo.AirconModeRange, bool) {
	a.mutex.Lock()
	remoMode := a.state.RemoMode
	a.mutex.Unlock()

	modeRange, ok := a.modes[remoMode]
	return modeRange, ok
}

func (a *Aircon) subscribe(mqttClient mqtt.Client, topic string, handler mqtt.MessageHandler) {
	if t := mqttClient.Subscribe(topic, 0, handler); t.Wait() && t.Error() != nil {
		log.Printf("MQTT receive error: %v", t.Error())
	}
}

func (a *Aircon) stateTopic(kind string) string {
	return fmt.Sprintf("%v/ac/%v/%v/state", config.TopicPrefix, a.applianceID, kind)
}

func (a *Aircon) commandTopic(kind string) string {
	return fmt.Sprintf("%v/ac/%v/%v/cmd", config.TopicPrefix, a.applianceID, kind)
}

func (a *Aircon) currentTemperatureTopic() string {
	return fmt.Sprintf("%v/ac/%v/current_temperature", config.TopicPrefix, a.applianceID)
}

func (a *Aircon) attributesTopic() string {
	return fmt.Sprintf("%v/ac/%v/attributes", config.TopicPrefix, a.applianceID)
}
