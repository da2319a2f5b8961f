// internal/source/sim/port.go
package sim

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/source"
)

// ErrNotArmed is returned by Drive before Arm.
var ErrNotArmed = errors.New("sim port: not armed")

// Port is an in-memory bus. Drive models an electrical transition.
// Handler calls are serialized, so callers on several goroutines still
// produce a single edge context.
type Port struct {
	mu   sync.Mutex // serializes handler calls
	word atomic.Uint32
	h    source.Handler

	closed atomic.Bool
}

func NewPort() *Port {
	return &Port{}
}

func (p *Port) ReadPort() capture.PortWord {
	return capture.PortWord(p.word.Load())
}

func (p *Port) Arm(h source.Handler) error {
	if h == nil {
		return errors.New("sim port: handler required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.h = h
	return nil
}

// Set changes the line levels without raising an edge.
func (p *Port) Set(w capture.PortWord) {
	p.word.Store(uint32(w))
}

// Drive changes the line levels and raises one edge.
func (p *Port) Drive(w capture.PortWord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed.Load() {
		return errors.New("sim port: closed")
	}
	if p.h == nil {
		return ErrNotArmed
	}

	p.word.Store(uint32(w))
	p.h.OnEdge()
	return nil
}

func (p *Port) Close() error {
	p.closed.Store(true)
	return nil
}

// Clock is a settable microsecond clock.
type Clock struct {
	now atomic.Uint32
}

func (c *Clock) Micros() uint32 {
	return c.now.Load()
}

func (c *Clock) Set(us uint32) {
	c.now.Store(us)
}

func (c *Clock) Advance(us uint32) {
	c.now.Add(us)
}

// Word builds the port word that encodes to (data, bits) under m.
func Word(m capture.PinMap, data uint8, bits capture.SignalBits) capture.PortWord {
	w := capture.PortWord(data) << m.DataBase
	for i, pin := range m.Signals {
		if bits.Bit(i) == 1 {
			w |= 1 << pin
		}
	}
	return w
}
