package bridge

// AirconState is the external representation of one AC's normalized state,
// served by the /state endpoint.
type AirconState struct {
	ID                        string            `json:"id"`
	Name                      string            `json:"name"`
	HVACMode                  string            `json:"hvac_mode"`
	RemoMode                  string            `json:"remo_mode"`
	TargetTemperature         *float64          `json:"target_temperature"`
	CurrentTemperature        *float64          `json:"current_temperature"`
	FanMode                   string            `json:"fan_mode,omitempty"`
	SwingMode                 string            `json:"swing_mode,omitempty"`
	PreviousTargetTemperature map[string]string `json:"previous_target_temperature"`
}
