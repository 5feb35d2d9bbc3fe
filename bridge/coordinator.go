package bridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/victorjacobs/go-natureremo/remo"
)

// remoClient is the slice of the cloud API the bridge uses. *remo.Client
// satisfies it; tests substitute a fake.
type remoClient interface {
	GetAppliances() ([]remo.Appliance, error)
	GetDevices() ([]remo.Device, error)
	UpdateAirconSettings(applianceID string, settings remo.AirconSettingsRequest) (*remo.AirconSettings, error)
}

// Coordinator owns the shared snapshot of appliances and devices. A refresh
// replaces the snapshot wholesale and notifies listeners without payload;
// entities then re-read whatever they need by id.
type Coordinator struct {
	client remoClient

	mutex         sync.RWMutex
	appliances    map[string]remo.Appliance
	devices       map[string]remo.Device
	lastRefreshed time.Time

	listeners []func()
}

func NewCoordinator(client remoClient) *Coordinator {
	return &Coordinator{
		client:     client,
		appliances: map[string]remo.Appliance{},
		devices:    map[string]remo.Device{},
	}
}

// AddListener registers a callback to run after every successful refresh.
// Listeners are registered during setup, before polling starts.
func (c *Coordinator) AddListener(listener func()) {
	c.listeners = append(c.listeners, listener)
}

// Refresh fetches the full dataset and swaps the snapshot.
func (c *Coordinator) Refresh() error {
	appliances, err := c.client.GetAppliances()
	if err != nil {
		return fmt.Errorf("failed to refresh appliances: %w", err)
	}

	devices, err := c.client.GetDevices()
	if err != nil {
		return fmt.Errorf("failed to refresh devices: %w", err)
	}

	c.mutex.Lock()
	c.appliances = make(map[string]remo.Appliance, len(appliances))
	for _, appliance := range appliances {
		c.appliances[appliance.ID] = appliance
	}
	c.devices = make(map[string]remo.Device, len(devices))
	for _, device := range devices {
		c.devices[device.ID] = device
	}
	c.lastRefreshed = time.Now()
	c.mutex.Unlock()

	for _, listener := range c.listeners {
		listener()
	}

	return nil
}

func (c *Coordinator) Appliance(id string) (remo.Appliance, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	appliance, ok := c.appliances[id]
	return appliance, ok
}

func (c *Coordinator) Device(id string) (remo.Device, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	device, ok := c.devices[id]
	return device, ok
}

func (c *Coordinator) Appliances() []remo.Appliance {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	appliances := make([]remo.Appliance, 0, len(c.appliances))
	for _, appliance := range c.appliances {
		appliances = append(appliances, appliance)
	}
	return appliances
}

func (c *Coordinator) Devices() []remo.Device {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	devices := make([]remo.Device, 0, len(c.devices))
	for _, device := range c.devices {
		devices = append(devices, device)
	}
	return devices
}

func (c *Coordinator) LastRefreshed() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.lastRefreshed
}
