// internal/capture/clock.go
package capture

import "time"

type monoClock struct {
	start time.Time
}

// NewClock returns a Clock reading zero now.
// time.Since uses the monotonic reading, so wall clock steps do not leak in.
func NewClock() Clock {
	return monoClock{start: time.Now()}
}

func (c monoClock) Micros() uint32 {
	return uint32(time.Since(c.start) / time.Microsecond)
}
