package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("CLOCK_URL", "http://clock.local")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "http://clock.local", cfg.ClockURL)
	assert.Equal(t, 5*time.Second, cfg.ClockTimeout)
	assert.Equal(t, "doubleclock", cfg.ClockDeviceID)
	assert.Empty(t, cfg.MQTTBrokerURL)
	assert.False(t, cfg.Development())
}

func TestParseRequiresClockURL(t *testing.T) {
	t.Setenv("CLOCK_URL", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("CLOCK_URL", "http://10.0.0.9")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CLOCK_TIMEOUT", "750ms")
	t.Setenv("MQTT_BROKER_URL", "tcp://broker:1883")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.Development())
	assert.Equal(t, 750*time.Millisecond, cfg.ClockTimeout)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTTBrokerURL)
}

func TestParseRejectsNonPositiveTick(t *testing.T) {
	t.Setenv("CLOCK_URL", "http://clock.local")
	t.Setenv("DISPLAY_TICK", "0s")

	_, err := Parse()
	assert.Error(t, err)
}
