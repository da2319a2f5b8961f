// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/lpt-capture/internal/config"
	wmodbus "github.com/tamzrod/lpt-capture/internal/writer/modbus"
)

// BuildStatusWriter connects to the status endpoint and returns a writer plus
// its closer. A nil config disables status export: (nil, no-op, nil).
func BuildStatusWriter(c *cfg.StatusConfig, deviceName string) (StatusWriter, func() error, error) {
	if c == nil {
		return nil, func() error { return nil }, nil
	}

	cli, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: c.Endpoint,
		Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sw, err := NewDeviceStatusWriter(StatusPlan{
		Endpoint:   c.Endpoint,
		UnitID:     c.UnitID,
		BaseSlot:   c.BaseSlot,
		DeviceName: deviceName,
	}, cli)
	if err != nil {
		_ = cli.Close()
		return nil, nil, err
	}

	return sw, cli.Close, nil
}
