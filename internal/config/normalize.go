// internal/config/normalize.go
package config

import "github.com/tamzrod/lpt-capture/internal/status"

// DefaultPollIntervalUs is the drain cadence when poll.interval_us is unset.
const DefaultPollIntervalUs = 500

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Truncate device_name to what the status block can hold
	if len(cfg.Capture.DeviceName) > status.DeviceNameMaxChars {
		cfg.Capture.DeviceName = cfg.Capture.DeviceName[:status.DeviceNameMaxChars]
	}

	if cfg.Poll.IntervalUs == 0 {
		cfg.Poll.IntervalUs = DefaultPollIntervalUs
	}

	if cfg.Output.Banner == nil {
		cfg.Output.Banner = boolPtr(true)
	}
	if cfg.Output.Heartbeat == nil {
		cfg.Output.Heartbeat = boolPtr(true)
	}
}

func boolPtr(v bool) *bool { return &v }
