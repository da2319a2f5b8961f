// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/lpt-capture/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(cfg.Capture.DeviceName); i++ {
		if cfg.Capture.DeviceName[i] > 0x7F {
			return errors.New("capture.device_name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	switch cfg.Source.Kind {
	case SourceGPIO:
		if cfg.Source.Chip == "" {
			return errors.New("source.chip is required for kind gpio")
		}
	case SourceReplay:
		if cfg.Source.ReplayFile == "" {
			return errors.New("source.replay_file is required for kind replay")
		}
	case SourceSim:
	case "":
		return errors.New("source.kind is required")
	default:
		return fmt.Errorf("source.kind %q: want gpio, sim or replay", cfg.Source.Kind)
	}

	if err := cfg.Source.PinMap().Validate(); err != nil {
		return fmt.Errorf("source.pins: %w", err)
	}

	// ------------------------------------------------------------
	// SINK (at least one)
	// ------------------------------------------------------------

	s := cfg.Sink
	if !s.Stdout && s.File == "" && s.Serial == nil && s.MQTT == nil {
		return errors.New("sink: at least one of stdout, file, serial, mqtt is required")
	}
	if s.Serial != nil {
		if s.Serial.Address == "" {
			return errors.New("sink.serial.address is required")
		}
		if s.Serial.Baud < 0 {
			return fmt.Errorf("sink.serial.baud %d must be >= 0", s.Serial.Baud)
		}
	}
	if s.MQTT != nil {
		if s.MQTT.Broker == "" {
			return errors.New("sink.mqtt.broker is required")
		}
		if s.MQTT.Topic == "" {
			return errors.New("sink.mqtt.topic is required")
		}
		if s.MQTT.QoS > 1 {
			return fmt.Errorf("sink.mqtt.qos %d: want 0 or 1", s.MQTT.QoS)
		}
	}

	// ------------------------------------------------------------
	// STATUS EXPORT (OPT-IN)
	// ------------------------------------------------------------

	if st := cfg.Status; st != nil {
		if st.Endpoint == "" {
			return errors.New("status.endpoint is required when status is set")
		}
		// the whole block must fit the 16-bit address space
		if (uint32(st.BaseSlot)+1)*status.SlotsPerDevice > 0x10000 {
			return fmt.Errorf("status.base_slot %d out of register range", st.BaseSlot)
		}
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalUs < 0 {
		return fmt.Errorf("poll.interval_us %d must be >= 0", cfg.Poll.IntervalUs)
	}

	return nil
}
