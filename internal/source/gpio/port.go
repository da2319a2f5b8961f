// internal/source/gpio/port.go
package gpio

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/source"
)

// Consumer is the label shown for our lines in gpioinfo.
const Consumer = "lpt-capture"

// Port monitors the bus through the Linux GPIO character device.
//
// All 17 lines live in ONE line request:
//   - one kernel read returns every level (atomic snapshot)
//   - one watcher goroutine delivers events (handler never reentered)
type Port struct {
	chip    string
	offsets []int

	lines atomic.Pointer[gpiocdev.Lines]
	ready chan struct{} // closed once lines are published and seeded
	vals  []int         // edge context only
	seqno uint32        // edge context only, last kernel sequence number

	epoch     time.Duration // CLOCK_MONOTONIC at Arm
	last      atomic.Uint32
	readErrs  atomic.Uint64
	lostEdges atomic.Uint64
}

// Open prepares a port. Lines are requested on Arm.
func Open(chip string, pins capture.PinMap) (*Port, error) {
	if chip == "" {
		return nil, errors.New("gpio: chip required")
	}
	if err := pins.Validate(); err != nil {
		return nil, err
	}

	lines := pins.Lines()
	offsets := make([]int, len(lines))
	for i, l := range lines {
		offsets[i] = int(l)
	}

	return &Port{
		chip:    chip,
		offsets: offsets,
		ready:   make(chan struct{}),
		vals:    make([]int, len(offsets)),
	}, nil
}

// Arm requests the lines as inputs with both edges reported.
// Every edge on every line is a candidate event.
//
// The watcher may fire before RequestLines returns. Events wait on ready
// until the request is published and the first snapshot taken, so no frame
// is built from an unread port.
func (p *Port) Arm(h source.Handler) error {
	if h == nil {
		return errors.New("gpio: handler required")
	}
	if p.lines.Load() != nil {
		return errors.New("gpio: already armed")
	}

	epoch, err := monotonicNow()
	if err != nil {
		return fmt.Errorf("gpio: read monotonic clock: %w", err)
	}
	p.epoch = epoch

	l, err := gpiocdev.RequestLines(
		p.chip,
		p.offsets,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithConsumer(Consumer),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			p.onEvent(h, evt)
		}),
	)
	if err != nil {
		return fmt.Errorf("gpio: request lines on %s: %w", p.chip, err)
	}

	p.lines.Store(l)
	p.ReadPort()
	close(p.ready)
	return nil
}

// onEvent runs on the watcher goroutine.
func (p *Port) onEvent(h source.Handler, evt gpiocdev.LineEvent) {
	<-p.ready

	// Seqno counts every event on the request; a gap is kernel queue overflow.
	if p.seqno != 0 {
		if gap := evt.Seqno - p.seqno - 1; gap != 0 && gap < 1<<31 {
			p.lostEdges.Add(uint64(gap))
		}
	}
	p.seqno = evt.Seqno

	// Kernel timestamps are CLOCK_MONOTONIC, same base as epoch.
	h.OnEdgeAt(uint32((evt.Timestamp - p.epoch) / time.Microsecond))
}

// ReadPort returns every monitored level packed at its line position.
// On a failed read the previous snapshot is returned and the failure counted.
func (p *Port) ReadPort() capture.PortWord {
	l := p.lines.Load()
	if l == nil {
		return capture.PortWord(p.last.Load())
	}
	if err := l.Values(p.vals); err != nil {
		p.readErrs.Add(1)
		return capture.PortWord(p.last.Load())
	}

	var w uint32
	for i, v := range p.vals {
		if v != 0 {
			w |= 1 << uint(p.offsets[i])
		}
	}
	p.last.Store(w)
	return capture.PortWord(w)
}

// ReadErrors is the number of snapshot reads that failed.
func (p *Port) ReadErrors() uint64 {
	return p.readErrs.Load()
}

// LostEdges is the number of edges the kernel discarded before we read them.
func (p *Port) LostEdges() uint64 {
	return p.lostEdges.Load()
}

func (p *Port) Close() error {
	l := p.lines.Load()
	if l == nil {
		return nil
	}
	return l.Close()
}

func monotonicNow() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
