// internal/sink/mqtt.go
package sink

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/record"
)

// MQTTConfig is minimal broker config.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Timeout  time.Duration
}

// publisher is the part of mqtt.Client the sink uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes one message per record on Topic.
// Comments go to Topic + "/log".
// A single connection keeps publish order.
type MQTT struct {
	cli     publisher
	topic   string
	qos     byte
	timeout time.Duration
}

// NewMQTT connects to the broker (fail fast at startup).
func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt sink: broker required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("mqtt sink: topic required")
	}
	if cfg.QoS > 1 {
		return nil, fmt.Errorf("mqtt sink: qos %d not supported", cfg.QoS)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.SetKeepAlive(10 * time.Second)
	opts.SetPingTimeout(2 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetOrderMatters(true)

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("mqtt sink: connect %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt sink: connect %s: %w", cfg.Broker, err)
	}

	return newMQTT(c, cfg), nil
}

func newMQTT(cli publisher, cfg MQTTConfig) *MQTT {
	return &MQTT{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: cfg.Timeout,
	}
}

func (m *MQTT) WriteFrame(f capture.Frame) error {
	return m.publish(m.topic, []byte(record.Format(f)))
}

func (m *MQTT) WriteComment(text string) error {
	if text == "" {
		return nil
	}
	return m.publish(m.topic+"/log", []byte(text))
}

// Flush is a no-op: every publish is already handed to the client.
func (m *MQTT) Flush() error { return nil }

func (m *MQTT) Close() error {
	m.cli.Disconnect(250)
	return nil
}

func (m *MQTT) publish(topic string, payload []byte) error {
	token := m.cli.Publish(topic, m.qos, false, payload)

	// QoS 0 completes once the packet is queued for the network
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("mqtt sink: publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt sink: publish %s: %w", topic, err)
	}
	return nil
}
