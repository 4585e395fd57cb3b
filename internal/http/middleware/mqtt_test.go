package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

type fakeToken struct {
	err  error
	done chan struct{}
}

func newToken(err error, complete bool) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient only implements Publish and Disconnect; any other call panics.
type fakeClient struct {
	mqtt.Client
	token        *fakeToken
	sent         []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic, qos, retained, payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestMQTTNotifierPublishesRetained(t *testing.T) {
	client := &fakeClient{token: newToken(nil, true)}
	n := NewMQTTNotifier(client, "kitchen")

	settings := model.Settings{Alarms: []model.Alarm{{Hour: 7, Minute: 30, Days: [7]bool{false, true}}}}
	require.NoError(t, n.NotifyAlarms(context.Background(), settings))

	require.Len(t, client.sent, 1)
	msg := client.sent[0]
	assert.Equal(t, "doubleclock/kitchen/alarms", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)

	var got model.Settings
	require.NoError(t, json.Unmarshal(msg.payload, &got))
	assert.Equal(t, settings, got)

	n.Close()
	assert.True(t, client.disconnected)
}

func TestMQTTNotifierReportsBrokerError(t *testing.T) {
	boom := errors.New("not authorized")
	n := NewMQTTNotifier(&fakeClient{token: newToken(boom, true)}, "kitchen")

	err := n.NotifyAlarms(context.Background(), model.Settings{})
	assert.ErrorIs(t, err, boom)
}

func TestMQTTNotifierHonoursContext(t *testing.T) {
	n := NewMQTTNotifier(&fakeClient{token: newToken(nil, false)}, "kitchen")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.NotifyAlarms(ctx, model.Settings{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.NotifyAlarms(context.Background(), model.Settings{}))
}
