// internal/runner/runner.go
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/record"
	"github.com/tamzrod/lpt-capture/internal/sink"
	"github.com/tamzrod/lpt-capture/internal/status"
	"github.com/tamzrod/lpt-capture/internal/writer"
)

// Runner is the polling context: it drains the ring into the sink and does
// the slow work (statistics, heartbeat, status export) the edge path must not.
type Runner struct {
	cfg    Config
	eng    *capture.Engine
	out    sink.Sink
	status writer.StatusWriter // nil = disabled

	// runner-owned state
	snap          status.Snapshot
	lastHeartbeat time.Time
	lastStats     time.Time
	lastStatus    time.Time
}

// New creates a runner. sw may be nil.
func New(cfg Config, eng *capture.Engine, out sink.Sink, sw writer.StatusWriter) (*Runner, error) {
	if eng == nil {
		return nil, errors.New("runner: engine required")
	}
	if out == nil {
		return nil, errors.New("runner: sink required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("runner: interval must be > 0")
	}
	return &Runner{cfg: cfg, eng: eng, out: out, status: sw}, nil
}

// Run writes the banner, arms the source, then polls until ctx is done.
// A final drain runs before returning so nothing already captured is lost.
func (r *Runner) Run(ctx context.Context, arm func() error) error {
	now := time.Now()
	r.lastHeartbeat = now
	r.lastStats = now

	if r.cfg.Banner {
		r.banner()
	}

	if err := arm(); err != nil {
		return fmt.Errorf("runner: arm: %w", err)
	}

	r.comment("Armed: waiting for ANY bus activity...")
	r.comment("")
	r.flush()

	// Full block write on start (identity re-assert) if enabled.
	r.exportStatus(now)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.PollOnce(time.Now())
			return nil
		case t := <-ticker.C:
			r.PollOnce(t)
		}
	}
}

// PollOnce performs exactly one polling cycle.
// Sink failures are logged, never fatal: capture keeps running.
func (r *Runner) PollOnce(now time.Time) {
	if _, err := r.eng.Drain(r.out); err != nil {
		log.Printf("sink write failed (device=%s): %v", r.cfg.DeviceName, err)
	}

	st := r.eng.Stats()

	if r.cfg.Heartbeat && st.Drained == 0 && now.Sub(r.lastHeartbeat) > HeartbeatEvery {
		r.comment("idle: no activity yet")
		r.lastHeartbeat = now
	}

	if st.Drained > 0 && st.IdleFor(now) > QuietAfter && now.Sub(r.lastStats) >= StatsEvery {
		r.statistics(st)
		r.lastStats = now
	}

	r.flush()

	if now.Sub(r.lastStatus) >= StatusEvery {
		r.exportStatus(now)
	}
}

func (r *Runner) exportStatus(now time.Time) {
	r.lastStatus = now
	if r.status == nil {
		return
	}

	prev := r.snap
	r.snap = status.Derive(prev, r.eng.Stats(), r.eng.Capacity(), now, QuietAfter)
	if f := r.cfg.Faults; f != nil {
		r.snap = r.snap.WithFaults(prev, f.ReadErrors(), f.LostEdges())
	}
	if err := r.status.WriteStatus(r.snap); err != nil {
		log.Printf("status write failed (device=%s): %v", r.cfg.DeviceName, err)
	}
}

func (r *Runner) banner() {
	r.comment("")
	r.comment("========================================")
	r.comment("LPT capture - FRAME capture (17 signals)")
	if r.cfg.DeviceName != "" {
		r.comment("Device : " + r.cfg.DeviceName)
	}
	if r.cfg.SessionID != "" {
		r.comment("Session: " + r.cfg.SessionID)
	}
	r.comment("========================================")
	r.comment("")
	r.comment("Trigger: ANY edge on DATA or control/status pins")
	r.comment("CSV: " + record.Header)
	r.comment(fmt.Sprintf("Deadband(us): %d", r.eng.Deadband()))
	r.comment(fmt.Sprintf("Ring(frames): %d", r.eng.Capacity()))
	r.comment("")
}

func (r *Runner) statistics(st capture.Stats) {
	r.comment("")
	r.comment("--- Statistics ---")
	r.comment(fmt.Sprintf("Frames captured: %d", st.Drained))
	r.comment(fmt.Sprintf("Ring dropped   : %d", st.Dropped))
	if f := r.cfg.Faults; f != nil {
		r.comment(fmt.Sprintf("Read errors    : %d", f.ReadErrors()))
		r.comment(fmt.Sprintf("Kernel lost    : %d", f.LostEdges()))
	}
	r.comment("------------------")
}

func (r *Runner) comment(text string) {
	if err := r.out.WriteComment(text); err != nil {
		log.Printf("sink comment failed (device=%s): %v", r.cfg.DeviceName, err)
	}
}

func (r *Runner) flush() {
	if err := r.out.Flush(); err != nil {
		log.Printf("sink flush failed (device=%s): %v", r.cfg.DeviceName, err)
	}
}
