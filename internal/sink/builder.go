// internal/sink/builder.go
package sink

import (
	"errors"
	"fmt"
	"os"
	"time"

	cfg "github.com/tamzrod/lpt-capture/internal/config"
)

// Build opens every configured sink, in a fixed order: stdout, file, serial, mqtt.
// On failure, sinks already opened are closed again.
func Build(c cfg.SinkConfig, clientID string) (Sink, error) {
	var out Multi

	fail := func(err error) (Sink, error) {
		_ = out.Close()
		return nil, err
	}

	if c.Stdout {
		out = append(out, NewLine(nopCloser{os.Stdout}))
	}

	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fail(fmt.Errorf("file sink: %w", err))
		}
		out = append(out, NewLine(f))
	}

	if c.Serial != nil {
		s, err := NewSerial(SerialConfig{
			Address:  c.Serial.Address,
			BaudRate: c.Serial.Baud,
			Timeout:  time.Duration(c.Serial.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return fail(err)
		}
		out = append(out, s)
	}

	if c.MQTT != nil {
		m, err := NewMQTT(MQTTConfig{
			Broker:   c.MQTT.Broker,
			ClientID: clientID,
			Topic:    c.MQTT.Topic,
			QoS:      c.MQTT.QoS,
			Timeout:  time.Duration(c.MQTT.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return fail(err)
		}
		out = append(out, m)
	}

	switch len(out) {
	case 0:
		return nil, errors.New("sink: none configured")
	case 1:
		return out[0], nil
	}
	return out, nil
}

// nopCloser keeps the process stdout open when the sink closes.
type nopCloser struct {
	*os.File
}

func (nopCloser) Close() error { return nil }
