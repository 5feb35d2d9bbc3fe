package bridge

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-natureremo/homeassistant"
	"github.com/victorjacobs/go-natureremo/remo"
)

// Sensor exposes one scalar reading out of the cached snapshot: either the
// smart meter's instantaneous power or one of a hub's telemetry events.
type Sensor struct {
	coordinator *Coordinator
	name        string
	uniqueId    string
	class       string
	unit        string
	applianceID string // set for the smart meter power sensor
	deviceID    string // set for hub telemetry sensors
	event       string
	stateTopic  string
}

type sensorDefinition struct {
	suffix string
	class  string
	unit   string
	event  string
}

var deviceSensorDefinitions = [...]sensorDefinition{
	{suffix: "Temperature", class: "temperature", unit: "°C", event: remo.EventTemperature},
	{suffix: "Humidity", class: "humidity", unit: "%", event: remo.EventHumidity},
	{suffix: "Illuminance", class: "illuminance", unit: "lx", event: remo.EventIlluminance},
}

func newPowerSensor(coordinator *Coordinator, appliance remo.Appliance) *Sensor {
	return &Sensor{
		coordinator: coordinator,
		name:        strings.TrimSpace(appliance.Nickname) + " Power",
		uniqueId:    appliance.ID + "-power",
		class:       "power",
		unit:        "W",
		applianceID: appliance.ID,
	}
}

// newDeviceSensors creates one sensor per telemetry key the hub reports.
func newDeviceSensors(coordinator *Coordinator, device remo.Device) []*Sensor {
	var sensors []*Sensor
	for _, definition := range deviceSensorDefinitions {
		if _, ok := device.NewestEvents[definition.event]; !ok {
			continue
		}
		sensors = append(sensors, &Sensor{
			coordinator: coordinator,
			name:        strings.TrimSpace(device.Name) + " " + definition.suffix,
			uniqueId:    device.ID + "-" + definition.event,
			class:       definition.class,
			unit:        definition.unit,
			deviceID:    device.ID,
			event:       definition.event,
		})
	}
	return sensors
}

func (s *Sensor) Register(mqttClient mqtt.Client) error {
	stateTopic, err := homeassistant.NewClient(mqttClient).RegisterSensor(s.uniqueId, s.name, s.class, s.unit)
	if err != nil {
		return err
	}
	s.stateTopic = stateTopic

	log.Printf("Registered sensor %v", s.name)
	return nil
}

// Value reads the current value out of the snapshot. Discovery guaranteed
// the keys existed when the sensor was created, so a missing one now is a
// real fault, not something to paper over.
func (s *Sensor) Value() (string, error) {
	if s.applianceID != "" {
		appliance, ok := s.coordinator.Appliance(s.applianceID)
		if !ok {
			return "", fmt.Errorf("appliance %v missing from snapshot", s.applianceID)
		}
		return instantaneousPower(appliance)
	}

	device, ok := s.coordinator.Device(s.deviceID)
	if !ok {
		return "", fmt.Errorf("device %v missing from snapshot", s.deviceID)
	}

	event, ok := device.NewestEvents[s.event]
	if !ok {
		return "", fmt.Errorf("device %v has no %v event", s.deviceID, s.event)
	}
	return strconv.FormatFloat(event.Val, 'f', -1, 64), nil
}

func (s *Sensor) Publish(mqttClient mqtt.Client) {
	value, err := s.Value()
	if err != nil {
		log.Printf("Error reading %v: %v", s.name, err)
		return
	}

	if t := mqttClient.Publish(s.stateTopic, 0, true, value); t.Wait() && t.Error() != nil {
		log.Printf("MQTT publishing failed: %v", t.Error())
	}
}

// instantaneousPower scans the smart meter's ECHONET Lite property list for
// measured instantaneous energy and returns it in watts.
func instantaneousPower(appliance remo.Appliance) (string, error) {
	if appliance.SmartMeter == nil {
		return "", fmt.Errorf("appliance %v has no smart meter", appliance.ID)
	}

	for _, property := range appliance.SmartMeter.EchonetLiteProperties {
		if property.EPC == remo.EPCInstantaneousEnergy {
			return property.Val, nil
		}
	}
	return "", fmt.Errorf("appliance %v reports no instantaneous energy", appliance.ID)
}
