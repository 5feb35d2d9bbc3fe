package main

import (
	"log"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/julienschmidt/httprouter"
	"github.com/victorjacobs/go-natureremo/bridge"
	"github.com/victorjacobs/go-natureremo/config"
	"github.com/victorjacobs/go-natureremo/routes"
)

func main() {
	cfg, err := config.LoadConfiguration("natureremo.json")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
		return
	}

	bridge, err := bridge.New(cfg)
	if err != nil {
		log.Fatalf("Error setting up bridge: %v", err)
		return
	}

	mqttOpts := cfg.Mqtt.ClientOptions()
	// Configure MQTT subscriptions in the ConnectHandler to make sure they are set up after reconnect
	mqttOpts.SetOnConnectHandler(func(client mqtt.Client) {
		bridge.SubscribeToCommands(client)
	})

	mqttClient := mqtt.NewClient(mqttOpts)
	if t := mqttClient.Connect(); t.Wait() && t.Error() != nil {
		log.Printf("MQTT connection error: %v", t.Error())
		return
	}

	if err := bridge.RegisterEntities(mqttClient); err != nil {
		log.Fatalf("Error registering entities: %v", err)
		return
	}

	go loopSafely(func() {
		bridge.Poll()

		time.Sleep(time.Minute)
	})

	// Start httprouter
	router := httprouter.New()
	router.GET("/state", routes.State(bridge))

	go loopSafely(func() {
		http.ListenAndServe(":8080", router)
	})

	select {}
}
