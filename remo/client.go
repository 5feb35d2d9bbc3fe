package remo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const baseURL = "https://api.nature.global/1"

// Client talks to the Nature Remo cloud API with a personal access token.
type Client struct {
	token      string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "go-natureremo")
}

// GetAppliances fetches every appliance registered on the account.
func (c *Client) GetAppliances() ([]Appliance, error) {
	var appliances []Appliance
	if err := c.get("/appliances", &appliances); err != nil {
		return nil, err
	}
	return appliances, nil
}

// GetDevices fetches every Remo hub with its latest sensor events.
func (c *Client) GetDevices() ([]Device, error) {
	var devices []Device
	if err := c.get("/devices", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// UpdateAirconSettings sends an AC command and returns the settings the API
// reports back. Callers must treat that response as the new remote state.
func (c *Client) UpdateAirconSettings(applianceID string, settings AirconSettingsRequest) (*AirconSettings, error) {
	body, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aircon settings: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%v/appliances/%v/aircon_settings", baseURL, applianceID), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to update aircon settings for %v: %w", applianceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("updating aircon settings for %v failed with status %v", applianceID, resp.StatusCode)
	}

	updated := &AirconSettings{}
	if err := json.NewDecoder(resp.Body).Decode(updated); err != nil {
		return nil, fmt.Errorf("failed to decode aircon settings response: %w", err)
	}

	return updated, nil
}

func (c *Client) get(path string, v interface{}) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %v: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %v failed with status %v", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", path, err)
	}

	return nil
}
