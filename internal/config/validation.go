package config

import "fmt"

// Validate rejects configurations the process cannot run with.
func Validate(c Config) error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Toolsets.Cache.MaxSize < 1 {
		return fmt.Errorf("invalid cache maxSize: %d", c.Toolsets.Cache.MaxSize)
	}
	if c.Toolsets.Cache.TTLMinutes < 1 {
		return fmt.Errorf("invalid cache ttlMinutes: %d", c.Toolsets.Cache.TTLMinutes)
	}
	for i, p := range c.Toolsets.Plugins {
		if p.ID == "" {
			return fmt.Errorf("plugin %d: missing id", i)
		}
		if p.Command == "" {
			return fmt.Errorf("plugin %s: missing command", p.ID)
		}
	}
	return nil
}
