// internal/capture/stats.go
package capture

import "time"

// Stats is a point-in-time view of the capture counters.
// Fields are read independently and may be slightly inconsistent with each other.
type Stats struct {
	Drained   uint64 // frames delivered to the sink
	Dropped   uint64 // frames lost to a full ring
	Pending   int    // frames waiting in the ring
	LastDrain time.Time
	Started   time.Time
}

// IdleFor is the time since the last drained frame (or since start).
func (s Stats) IdleFor(now time.Time) time.Duration {
	if s.LastDrain.IsZero() {
		return now.Sub(s.Started)
	}
	return now.Sub(s.LastDrain)
}
