// internal/source/replay/replay.go
package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/record"
	"github.com/tamzrod/lpt-capture/internal/source"
	"github.com/tamzrod/lpt-capture/internal/source/sim"
)

// RetryEvery is how long Run waits before rechecking a full ring.
const RetryEvery = 100 * time.Microsecond

// Backlog reports how full the capture ring is.
// *capture.Engine implements it.
type Backlog interface {
	Pending() int
	Capacity() int
}

// Replay drives a sim port from a previously captured record stream.
// Each record becomes one edge at its recorded timestamp.
//
// A file has no real-time deadline, so with a Backlog set Run holds back
// while the ring is full instead of letting frames drop.
type Replay struct {
	r       io.Reader
	closer  io.Closer
	pins    capture.PinMap
	paced   bool
	backlog Backlog

	Port  *sim.Port
	Clock *sim.Clock
}

// Config is the minimal replay config.
type Config struct {
	Pins  capture.PinMap
	Paced bool // sleep between edges to reproduce recorded timing
}

// New replays records read from r.
func New(r io.Reader, cfg Config) *Replay {
	return &Replay{
		r:     r,
		pins:  cfg.Pins,
		paced: cfg.Paced,
		Port:  sim.NewPort(),
		Clock: &sim.Clock{},
	}
}

// Open replays a capture file.
func Open(path string, cfg Config) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	rp := New(f, cfg)
	rp.closer = f
	return rp, nil
}

// Throttle makes Run wait for ring room before each edge.
// Call before Run.
func (rp *Replay) Throttle(b Backlog) {
	rp.backlog = b
}

// Run feeds every record to the armed port, then returns.
// Malformed lines abort the replay; comment lines are skipped.
func (rp *Replay) Run(ctx context.Context) (int, error) {
	sc := bufio.NewScanner(rp.r)
	start := time.Now()
	var base uint32
	n := 0

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		f, err := record.Parse(sc.Text())
		if errors.Is(err, record.ErrComment) {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("replay: line %d: %w", n+1, err)
		}

		if n == 0 {
			base = f.Timestamp
		}
		if rp.paced {
			due := start.Add(time.Duration(f.Timestamp-base) * time.Microsecond)
			if d := time.Until(due); d > 0 {
				select {
				case <-ctx.Done():
					return n, ctx.Err()
				case <-time.After(d):
				}
			}
		}

		if err := rp.waitRoom(ctx); err != nil {
			return n, err
		}

		rp.Clock.Set(f.Timestamp)
		if err := rp.Port.Drive(sim.Word(rp.pins, f.Data, f.Bits)); err != nil {
			return n, err
		}
		n++
	}

	return n, sc.Err()
}

func (rp *Replay) waitRoom(ctx context.Context) error {
	if rp.backlog == nil {
		return nil
	}
	for rp.backlog.Pending() >= rp.backlog.Capacity() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryEvery):
		}
	}
	return nil
}

// ---- source.Source ----

func (rp *Replay) Arm(h source.Handler) error {
	return rp.Port.Arm(h)
}

func (rp *Replay) ReadPort() capture.PortWord {
	return rp.Port.ReadPort()
}

func (rp *Replay) Close() error {
	_ = rp.Port.Close()
	if rp.closer != nil {
		return rp.closer.Close()
	}
	return nil
}
