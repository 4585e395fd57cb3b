package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds environment-based settings
type Config struct {
	Environment   string `env:"APP_ENV"        envDefault:"production"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`

	// ClockURL is the base URL of the clock exposing /settings.
	ClockURL      string        `env:"CLOCK_URL,notEmpty"`
	ClockTimeout  time.Duration `env:"CLOCK_TIMEOUT"   envDefault:"5s"`
	ClockDeviceID string        `env:"CLOCK_DEVICE_ID" envDefault:"doubleclock"`

	// MQTTBrokerURL enables publishing saved alarms when set.
	MQTTBrokerURL string `env:"MQTT_BROKER_URL"`
	MQTTClientID  string `env:"MQTT_CLIENT_ID" envDefault:"doubleclock-settings"`

	DisplayTick time.Duration `env:"DISPLAY_TICK" envDefault:"300ms"`
}

// Development reports whether the service runs with APP_ENV=development.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Load reads configuration from environment variables, after merging a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not found, using system environment")
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ClockTimeout <= 0 {
		return nil, fmt.Errorf("CLOCK_TIMEOUT must be positive, got %s", cfg.ClockTimeout)
	}
	if cfg.DisplayTick <= 0 {
		return nil, fmt.Errorf("DISPLAY_TICK must be positive, got %s", cfg.DisplayTick)
	}
	return &cfg, nil
}
