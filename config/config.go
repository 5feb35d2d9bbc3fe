package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const HomeAssistantPrefix = "homeassistant"
const TopicPrefix = "natureremo"

type Configuration struct {
	AccessToken string `json:"access_token"`
	Mqtt        Mqtt   `json:"mqtt"`
	// Fallback target temperatures sent along with a mode change when no
	// previous temperature is known, as vendor format strings ("26", not
	// "26.0"). Only cool and heat have one.
	CoolDefaultTemperature string `json:"cool_default_temperature"`
	HeatDefaultTemperature string `json:"heat_default_temperature"`
}

type Mqtt struct {
	IpAddress string `json:"ip_address"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func LoadConfiguration(filename string) (*Configuration, error) {
	var file *os.File
	var err error
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}

	defer file.Close()
	decoder := json.NewDecoder(file)
	configuration := &Configuration{}
	if err := decoder.Decode(configuration); err != nil {
		return nil, err
	}

	if configuration.AccessToken == "" {
		return nil, errors.New("configuration is missing access_token")
	}

	return configuration, nil
}

func (m *Mqtt) ClientOptions() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%v:1883", m.IpAddress)).
		SetUsername(m.Username).
		SetPassword(m.Password).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
			log.Printf("MQTT reconnecting")
		})
}
