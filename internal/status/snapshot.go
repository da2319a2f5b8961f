// internal/status/snapshot.go
package status

import (
	"math"
	"time"

	"github.com/tamzrod/lpt-capture/internal/capture"
)

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health      uint16
	Drained     uint32
	Dropped     uint32
	Pending     uint16
	SecondsIdle uint16
	Capacity    uint16
	ReadErrors  uint16
	LostEdges   uint16
}

// Derive builds the next snapshot from capture counters.
// prev is only consulted to detect new drops.
func Derive(prev Snapshot, st capture.Stats, capacity int, now time.Time, idleAfter time.Duration) Snapshot {
	s := Snapshot{
		Drained:  clamp32(st.Drained),
		Dropped:  clamp32(st.Dropped),
		Pending:  clamp16(uint64(st.Pending)),
		Capacity: clamp16(uint64(capacity)),
	}

	idle := st.IdleFor(now)
	if idle < 0 {
		idle = 0
	}
	s.SecondsIdle = clamp16(uint64(idle / time.Second))

	switch {
	case s.Dropped > prev.Dropped:
		s.Health = HealthOverflow
	case st.LastDrain.IsZero():
		s.Health = HealthUnknown
	case idle >= idleAfter:
		s.Health = HealthIdle
	default:
		s.Health = HealthOK
	}

	return s
}

// WithFaults adds source fault counters to a derived snapshot.
// Edges lost since prev raise the overflow health code.
func (s Snapshot) WithFaults(prev Snapshot, readErrs, lost uint64) Snapshot {
	s.ReadErrors = clamp16(readErrs)
	s.LostEdges = clamp16(lost)
	if s.LostEdges > prev.LostEdges {
		s.Health = HealthOverflow
	}
	return s
}

// Counters saturate instead of wrapping.
func clamp32(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func clamp16(v uint64) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
