// internal/sink/serial.go
package sink

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/serial"
)

// DefaultBaud matches the capture firmware console. CSV is heavy; go fast.
const DefaultBaud = 921600

// SerialConfig is minimal port config. Framing is fixed at 8N1.
type SerialConfig struct {
	Address  string
	BaudRate int
	Timeout  time.Duration
}

// NewSerial opens a serial port and returns a line sink on top of it.
func NewSerial(cfg SerialConfig) (*Line, error) {
	if cfg.Address == "" {
		return nil, errors.New("serial sink: address required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaud
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serial sink: open %s: %w", cfg.Address, err)
	}

	return NewLine(port), nil
}
