// internal/capture/engine.go
package capture

import (
	"errors"
	"sync/atomic"
	"time"
)

// PortReader returns the level of every monitored line as one atomic read.
type PortReader interface {
	ReadPort() PortWord
}

// Clock is a monotonic microsecond counter. It may wrap at 2^32.
type Clock interface {
	Micros() uint32
}

// FrameSink receives drained frames in capture order.
type FrameSink interface {
	WriteFrame(f Frame) error
}

// Config is the minimal runtime config the engine needs.
type Config struct {
	Pins     PinMap
	RingSize int
	Deadband uint32 // µs
}

// DefaultConfig uses the build-time ring size, deadband and as-built pin map.
func DefaultConfig() Config {
	return Config{
		Pins:     DefaultPinMap,
		RingSize: RingSize,
		Deadband: DeadbandUS,
	}
}

// Engine is the capture pipeline for one physical bus.
//
// OnEdge runs in the edge context (one goroutine, never reentered).
// Drain runs in the polling context. Stats is safe from anywhere.
type Engine struct {
	pins  PinMap
	port  PortReader
	clock Clock

	// edge context only
	deadband *Deadband

	ring *Ring

	// polling context writes, anyone reads
	drained   atomic.Uint64
	lastDrain atomic.Int64 // unix nanos, 0 = never

	started time.Time
}

// New builds an engine. The clock epoch is whatever the clock reads as zero;
// use NewClock() for a clock that starts now.
func New(cfg Config, port PortReader, clock Clock) (*Engine, error) {
	if port == nil {
		return nil, errors.New("capture: port reader required")
	}
	if clock == nil {
		return nil, errors.New("capture: clock required")
	}
	if err := cfg.Pins.Validate(); err != nil {
		return nil, err
	}

	ring, err := NewRing(cfg.RingSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		pins:     cfg.Pins,
		port:     port,
		clock:    clock,
		deadband: NewDeadband(cfg.Deadband),
		ring:     ring,
		started:  time.Now(),
	}, nil
}

// ---- edge context ----

// OnEdge is the edge handler. Bounded time, no allocation, no IO.
func (e *Engine) OnEdge() {
	e.OnEdgeAt(e.clock.Micros())
}

// OnEdgeAt handles an edge that already carries its timestamp.
// Reports whether a frame was enqueued.
func (e *Engine) OnEdgeAt(t uint32) bool {
	// Deadband to coalesce bus ripple into one frame
	if !e.deadband.Accept(t) {
		return false
	}

	// Snapshot all lines once
	data, bits := Encode(e.port.ReadPort(), e.pins)

	// Full ring: counted inside Push, nothing else to do
	return e.ring.Push(Frame{Timestamp: t, Data: data, Bits: bits})
}

// ---- polling context ----

// Drain pops every pending frame into sink, oldest first.
// An empty ring returns (0, nil) and changes nothing.
// A sink error stops the drain; the frame that failed is not counted.
func (e *Engine) Drain(sink FrameSink) (int, error) {
	n := 0
	for {
		f, ok := e.ring.Pop()
		if !ok {
			e.noteDrained(n)
			return n, nil
		}
		if err := sink.WriteFrame(f); err != nil {
			e.noteDrained(n)
			return n, err
		}
		n++
	}
}

func (e *Engine) noteDrained(n int) {
	if n == 0 {
		return
	}
	e.drained.Add(uint64(n))
	e.lastDrain.Store(time.Now().UnixNano())
}

// Stats returns a snapshot of the capture counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Drained: e.drained.Load(),
		Dropped: e.ring.Dropped(),
		Pending: e.ring.Len(),
		Started: e.started,
	}
	if ns := e.lastDrain.Load(); ns != 0 {
		s.LastDrain = time.Unix(0, ns)
	}
	return s
}

// Pending is the number of frames waiting to be drained.
func (e *Engine) Pending() int {
	return e.ring.Len()
}

// Capacity is the number of frames the ring can hold.
func (e *Engine) Capacity() int {
	return e.ring.Cap()
}

// Deadband is the coalescing window in µs.
func (e *Engine) Deadband() uint32 {
	return e.deadband.window
}
