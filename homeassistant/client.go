package homeassistant

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-natureremo/config"
)

type Client struct {
	mqtt mqtt.Client
}

func NewClient(mqtt mqtt.Client) *Client {
	return &Client{
		mqtt: mqtt,
	}
}

// RegisterClimate announces a climate entity on the discovery topic. The
// caller supplies all topics since they are derived from the appliance id.
func (h *Client) RegisterClimate(climate Climate) error {
	climateConfiguration, _ := json.Marshal(climate)

	configTopic := fmt.Sprintf("%v/climate/%v/config", config.HomeAssistantPrefix, climate.UniqueId)

	if t := h.mqtt.Publish(configTopic, 0, true, climateConfiguration); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	return nil
}

// RegisterSensor announces a sensor entity and returns the state topic it
// should publish readings on.
func (h *Client) RegisterSensor(uniqueId string, name string, class string, unit string) (string, error) {
	var stateTopic string
	if class == "" {
		stateTopic = fmt.Sprintf("%v/%v", config.TopicPrefix, uniqueId)
	} else {
		stateTopic = fmt.Sprintf("%v/%v/%v", config.TopicPrefix, class, uniqueId)
	}

	sensorConfiguration, _ := json.Marshal(sensorConfiguration{
		UniqueId:          uniqueId,
		Name:              name,
		DeviceClass:       class,
		StateTopic:        stateTopic,
		UnitOfMeasurement: unit,
	})

	configTopic := fmt.Sprintf("%v/sensor/%v/config", config.HomeAssistantPrefix, uniqueId)

	if t := h.mqtt.Publish(configTopic, 0, true, sensorConfiguration); t.Wait() && t.Error() != nil {
		return "", t.Error()
	}

	return stateTopic, nil
}
