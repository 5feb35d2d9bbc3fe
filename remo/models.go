package remo

// Appliance types as reported by the cloud API.
const (
	ApplianceTypeAC         = "AC"
	ApplianceTypeSmartMeter = "EL_SMART_METER"
)

// EPC code of the "measured instantaneous energy" ECHONET Lite property.
const EPCInstantaneousEnergy = 231

type Appliance struct {
	ID         string          `json:"id"`
	Device     Device          `json:"device"`
	Nickname   string          `json:"nickname"`
	Type       string          `json:"type"`
	Settings   *AirconSettings `json:"settings"`
	Aircon     *Aircon         `json:"aircon"`
	SmartMeter *SmartMeter     `json:"smart_meter"`
}

// AirconSettings is the remote state of an AC appliance. Temperature is kept
// as the vendor's string so it can be replayed verbatim in commands.
type AirconSettings struct {
	Mode   string `json:"mode"`
	Temp   string `json:"temp"`
	Vol    string `json:"vol"`
	Dir    string `json:"dir"`
	Button string `json:"button"`
}

type Aircon struct {
	Range    AirconRange `json:"range"`
	TempUnit string      `json:"tempUnit"`
}

type AirconRange struct {
	Modes        map[string]AirconModeRange `json:"modes"`
	FixedButtons []string                   `json:"fixedButtons"`
}

// AirconModeRange lists the options an AC accepts in one mode. Temp entries
// may be empty strings, the vendor's sentinel for "not applicable".
type AirconModeRange struct {
	Temp []string `json:"temp"`
	Vol  []string `json:"vol"`
	Dir  []string `json:"dir"`
}

type SmartMeter struct {
	EchonetLiteProperties []EchonetLiteProperty `json:"echonetlite_properties"`
}

type EchonetLiteProperty struct {
	Name      string `json:"name"`
	EPC       int    `json:"epc"`
	Val       string `json:"val"`
	UpdatedAt string `json:"updated_at"`
}

type Device struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	FirmwareVersion string                 `json:"firmware_version"`
	MacAddress      string                 `json:"mac_address"`
	SerialNumber    string                 `json:"serial_number"`
	NewestEvents    map[string]SensorEvent `json:"newest_events"`
}

// Sensor event keys in Device.NewestEvents.
const (
	EventTemperature = "te"
	EventHumidity    = "hu"
	EventIlluminance = "il"
)

type SensorEvent struct {
	Val       float64 `json:"val"`
	CreatedAt string  `json:"created_at"`
}

// AirconSettingsRequest is the body of POST /appliances/{id}/aircon_settings.
// Only set fields are sent.
type AirconSettingsRequest struct {
	OperationMode string `json:"operation_mode,omitempty"`
	Temperature   string `json:"temperature,omitempty"`
	Button        string `json:"button,omitempty"`
	AirVolume     string `json:"air_volume,omitempty"`
	AirDirection  string `json:"air_direction,omitempty"`
}
