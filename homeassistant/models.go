package homeassistant

type sensorConfiguration struct {
	UniqueId          string `json:"unique_id"`
	Name              string `json:"name"`
	DeviceClass       string `json:"device_class,omitempty"`
	StateTopic        string `json:"state_topic"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
}

// Climate describes an MQTT climate entity for Home Assistant discovery.
type Climate struct {
	UniqueId                string   `json:"unique_id"`
	Name                    string   `json:"name"`
	Modes                   []string `json:"modes"`
	ModeStateTopic          string   `json:"mode_state_topic"`
	ModeCommandTopic        string   `json:"mode_command_topic"`
	PowerCommandTopic       string   `json:"power_command_topic"`
	TemperatureStateTopic   string   `json:"temperature_state_topic"`
	TemperatureCommandTopic string   `json:"temperature_command_topic"`
	CurrentTemperatureTopic string   `json:"current_temperature_topic"`
	FanModes                []string `json:"fan_modes,omitempty"`
	FanModeStateTopic       string   `json:"fan_mode_state_topic"`
	FanModeCommandTopic     string   `json:"fan_mode_command_topic"`
	SwingModes              []string `json:"swing_modes,omitempty"`
	SwingModeStateTopic     string   `json:"swing_mode_state_topic"`
	SwingModeCommandTopic   string   `json:"swing_mode_command_topic"`
	JsonAttributesTopic     string   `json:"json_attributes_topic"`
	MinTemp                 float64  `json:"min_temp,omitempty"`
	MaxTemp                 float64  `json:"max_temp,omitempty"`
	TempStep                float64  `json:"temp_step,omitempty"`
	TemperatureUnit         string   `json:"temperature_unit"`
}
