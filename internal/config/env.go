package config

import (
	"os"
	"strconv"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "PGBOX_RUNTIME",
		apply: func(c *Config, v string) {
			c.Runtime.Binary = v
		},
	},
	{
		envVar: "PGBOX_IMAGE",
		apply: func(c *Config, v string) {
			c.Image.Name = v
		},
	},
	{
		envVar: "PGBOX_PORT",
		apply: func(c *Config, v string) {
			// Non-numeric values are left to validation to reject
			if port, err := strconv.Atoi(v); err == nil {
				c.Database.Port = port
			} else {
				c.Database.Port = 0
			}
		},
	},
	{
		envVar: "PGBOX_LOG_LEVEL",
		apply: func(c *Config, v string) {
			c.LogLevel = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
