package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/config"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/middleware"
)

// InitNotifier selects and returns the configured notifier backend together
// with its cleanup function.
func InitNotifier(cfg *config.Config) (middleware.Notifier, func()) {
	if cfg.MQTTBrokerURL == "" {
		log.Info().Msg("MQTT_BROKER_URL not set, saved alarms are not published")
		return middleware.NopNotifier{}, func() {}
	}

	client, err := middleware.CreateMQTTClient(cfg.MQTTBrokerURL, cfg.MQTTClientID)
	if err != nil {
		// the clock itself stays reachable over HTTP, so keep serving
		log.Error().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("MQTT unavailable, saved alarms are not published")
		return middleware.NopNotifier{}, func() {}
	}

	notifier := middleware.NewMQTTNotifier(client, cfg.ClockDeviceID)
	log.Info().Str("topic", middleware.AlarmsTopic(cfg.ClockDeviceID)).Msg("publishing saved alarms over MQTT")
	return notifier, notifier.Close
}
