package bridge

import (
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-natureremo/climate"
	"github.com/victorjacobs/go-natureremo/config"
	"github.com/victorjacobs/go-natureremo/remo"
)

// Bridge wires the coordinator's snapshot to Home Assistant entities. It is
// built from the first snapshot: one climate entity per AC, one power sensor
// per smart meter, and one sensor per telemetry key each hub reports.
type Bridge struct {
	cfg         *config.Configuration
	coordinator *Coordinator
	aircons     []*Aircon
	sensors     []*Sensor
}

func New(cfg *config.Configuration) (*Bridge, error) {
	return newWithClient(cfg, remo.NewClient(cfg.AccessToken))
}

func newWithClient(cfg *config.Configuration, client remoClient) (*Bridge, error) {
	coordinator := NewCoordinator(client)
	if err := coordinator.Refresh(); err != nil {
		return nil, err
	}

	bridge := &Bridge{
		cfg:         cfg,
		coordinator: coordinator,
	}

	defaults := climate.Defaults{
		Cool: cfg.CoolDefaultTemperature,
		Heat: cfg.HeatDefaultTemperature,
	}

	for _, appliance := range coordinator.Appliances() {
		switch appliance.Type {
		case remo.ApplianceTypeAC:
			aircon, err := NewAircon(client, coordinator, appliance, defaults)
			if err != nil {
				return nil, err
			}
			bridge.aircons = append(bridge.aircons, aircon)
		case remo.ApplianceTypeSmartMeter:
			bridge.sensors = append(bridge.sensors, newPowerSensor(coordinator, appliance))
		}
	}

	for _, device := range coordinator.Devices() {
		bridge.sensors = append(bridge.sensors, newDeviceSensors(coordinator, device)...)
	}

	log.Printf("Discovered %v air conditioners and %v sensors", len(bridge.aircons), len(bridge.sensors))

	return bridge, nil
}

// RegisterEntities announces every entity over MQTT discovery and hooks it
// up to the coordinator's refresh notifications.
func (b *Bridge) RegisterEntities(mqttClient mqtt.Client) error {
	for _, aircon := range b.aircons {
		aircon := aircon
		if err := aircon.Register(mqttClient); err != nil {
			return err
		}
		b.coordinator.AddListener(func() {
			aircon.OnRefresh(mqttClient)
		})
	}

	for _, sensor := range b.sensors {
		sensor := sensor
		if err := sensor.Register(mqttClient); err != nil {
			return err
		}
		b.coordinator.AddListener(func() {
			sensor.Publish(mqttClient)
		})
	}

	return nil
}

// SubscribeToCommands is called from the MQTT OnConnect handler so that
// subscriptions are restored after a reconnect.
func (b *Bridge) SubscribeToCommands(mqttClient mqtt.Client) {
	for _, aircon := range b.aircons {
		aircon.SubscribeToCommands(mqttClient)
	}
}

// Poll refreshes the shared snapshot; registered entities publish from the
// refresh notification.
func (b *Bridge) Poll() {
	if err := b.coordinator.Refresh(); err != nil {
		log.Panicf("Failed to refresh: %v", err)
	}
}

// RequestRefresh is the on-demand refresh used by the debug endpoint.
func (b *Bridge) RequestRefresh() error {
	return b.coordinator.Refresh()
}

func (b *Bridge) AirconStates() []AirconState {
	states := make([]AirconState, 0, len(b.aircons))
	for _, aircon := range b.aircons {
		states = append(states, aircon.State())
	}
	return states
}

func (b *Bridge) LastRefreshed() time.Time {
	return b.coordinator.LastRefreshed()
}
