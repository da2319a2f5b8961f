// internal/capture/deadband.go
package capture

// DeadbandUS is the coalescing window in microseconds.
// One logical bus write toggles several lines with a few µs of skew.
const DeadbandUS uint32 = 3

// Deadband gates edges that belong to an event already recorded.
// Producer-owned: never touched from the drain side.
type Deadband struct {
	window uint32
	last   uint32
	primed bool
}

// NewDeadband creates a filter with the given window in µs.
func NewDeadband(window uint32) *Deadband {
	return &Deadband{window: window}
}

// Accept reports whether t starts a new logical event.
// A rejected edge leaves the filter unchanged.
// The difference is taken modulo 2^32, so a single timer wrap is tolerated.
func (d *Deadband) Accept(t uint32) bool {
	if d.primed && t-d.last <= d.window {
		return false
	}
	d.last = t
	d.primed = true
	return true
}

// Last returns the timestamp of the last accepted edge.
func (d *Deadband) Last() (uint32, bool) {
	return d.last, d.primed
}
