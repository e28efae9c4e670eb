package config

import "fmt"

func (c *Config) validate() error {
	if c.LogPath == "" {
		return fmt.Errorf("LOG_PATH is required")
	}
	if c.ServerURL == "" {
		return fmt.Errorf("SERVER_URL is required")
	}
	if c.ProbeIntervalMs <= 0 {
		return fmt.Errorf("PROBE_INTERVAL_MS must be positive")
	}
	if c.DispatchIntervalMs <= 0 {
		return fmt.Errorf("DISPATCH_INTERVAL_MS must be positive")
	}
	if c.Relay.URL != "" && c.Relay.SecretKey == "" {
		return fmt.Errorf("RELAY_SECKEY is required when RELAY_URL is set")
	}
	return nil
}
