// internal/runner/types.go
package runner

import (
	"time"

	"github.com/tamzrod/lpt-capture/internal/source"
)

// Housekeeping cadences of the polling context.
const (
	// HeartbeatEvery repeats the idle notice while nothing was ever captured.
	HeartbeatEvery = 10 * time.Second

	// StatsEvery is the statistics cadence once the stream has gone quiet.
	StatsEvery = 5 * time.Second

	// QuietAfter is how long without frames counts as a quiet stream.
	QuietAfter = 5 * time.Second

	// StatusEvery is the status block export cadence.
	StatusEvery = time.Second
)

// Config is the minimal runtime config the runner needs.
type Config struct {
	DeviceName string
	SessionID  string
	Interval   time.Duration // drain cadence
	Banner     bool
	Heartbeat  bool
	Faults     source.Faults // nil when the source reports none
}
