package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

const publishTimeout = 5 * time.Second

// Notifier is told about every settings document accepted by the clock.
type Notifier interface {
	NotifyAlarms(ctx context.Context, settings model.Settings) error
}

// NopNotifier drops notifications; used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyAlarms(context.Context, model.Settings) error { return nil }

// MQTT message handler for anything arriving on subscribed topics
var messagePubHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	log.Debug().Str("topic", msg.Topic()).Bytes("payload", msg.Payload()).Msg("mqtt message received")
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// CreateMQTTClient connects to brokerURL under clientName.
func CreateMQTTClient(brokerURL, clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetDefaultPublishHandler(messagePubHandler)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT client initialized successfully")
	return client, nil
}

// AlarmsTopic is where saved alarms for deviceID are published.
func AlarmsTopic(deviceID string) string {
	return fmt.Sprintf("doubleclock/%s/alarms", deviceID)
}

// MQTTNotifier publishes saved settings, retained, so a clock coming back
// online picks up the latest alarms from the broker.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

var _ Notifier = (*MQTTNotifier)(nil)

func NewMQTTNotifier(client mqtt.Client, deviceID string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: AlarmsTopic(deviceID)}
}

func (n *MQTTNotifier) NotifyAlarms(ctx context.Context, settings model.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode alarms: %w", err)
	}

	token := n.client.Publish(n.topic, 1, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", n.topic, ctx.Err())
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s: timed out after %s", n.topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", n.topic, err)
	}

	log.Info().Str("topic", n.topic).Int("alarms", len(settings.Alarms)).Msg("alarms published")
	return nil
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
	log.Info().Msg("MQTT client disconnected")
}
