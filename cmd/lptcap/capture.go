// cmd/lptcap/capture.go
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/config"
	"github.com/tamzrod/lpt-capture/internal/runner"
	"github.com/tamzrod/lpt-capture/internal/sink"
	"github.com/tamzrod/lpt-capture/internal/source"
	"github.com/tamzrod/lpt-capture/internal/source/gpio"
	"github.com/tamzrod/lpt-capture/internal/source/replay"
	"github.com/tamzrod/lpt-capture/internal/source/sim"
	"github.com/tamzrod/lpt-capture/internal/writer"
)

var captureCmd = &cobra.Command{
	Use:   "capture <config.yaml>",
	Short: "Run the capture pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	session := uuid.New().String()
	pins := cfg.Source.PinMap()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Source + engine
	// --------------------

	src, clock, feed, err := buildSource(cfg.Source, pins)
	if err != nil {
		return fmt.Errorf("source build failed: %w", err)
	}
	defer src.Close()

	ecfg := capture.DefaultConfig()
	ecfg.Pins = pins

	eng, err := capture.New(ecfg, src, clock)
	if err != nil {
		return fmt.Errorf("engine build failed: %w", err)
	}
	if rp, ok := src.(*replay.Replay); ok {
		rp.Throttle(eng)
	}

	// --------------------
	// Sinks + status export
	// --------------------

	out, err := sink.Build(cfg.Sink, "lptcap-"+session)
	if err != nil {
		return fmt.Errorf("sink build failed: %w", err)
	}
	defer out.Close()

	sw, closeStatus, err := writer.BuildStatusWriter(cfg.Status, cfg.Capture.DeviceName)
	if err != nil {
		return fmt.Errorf("status writer build failed: %w", err)
	}
	defer closeStatus()

	faults, _ := src.(source.Faults)

	r, err := runner.New(runner.Config{
		DeviceName: cfg.Capture.DeviceName,
		SessionID:  session,
		Interval:   time.Duration(cfg.Poll.IntervalUs) * time.Microsecond,
		Banner:     *cfg.Output.Banner,
		Heartbeat:  *cfg.Output.Heartbeat,
		Faults:     faults,
	}, eng, out, sw)
	if err != nil {
		return fmt.Errorf("runner build failed: %w", err)
	}

	log.Printf("capture starting (device=%s session=%s source=%s)", cfg.Capture.DeviceName, session, cfg.Source.Kind)

	return r.Run(ctx, func() error {
		if err := src.Arm(eng); err != nil {
			return err
		}
		if feed != nil {
			go feed(ctx)
		}
		return nil
	})
}

// buildSource returns the hardware collaborator, the clock the engine should
// stamp edges with, and an optional feeder goroutine (replay).
func buildSource(c config.SourceConfig, pins capture.PinMap) (source.Source, capture.Clock, func(context.Context), error) {
	switch c.Kind {
	case config.SourceGPIO:
		p, err := gpio.Open(c.Chip, pins)
		if err != nil {
			return nil, nil, nil, err
		}
		// gpio stamps edges with kernel event time; clock only backs OnEdge.
		return p, capture.NewClock(), nil, nil

	case config.SourceReplay:
		rp, err := replay.Open(c.ReplayFile, replay.Config{Pins: pins, Paced: c.Paced})
		if err != nil {
			return nil, nil, nil, err
		}
		feed := func(ctx context.Context) {
			n, err := rp.Run(ctx)
			if err != nil {
				log.Printf("replay stopped after %d records: %v", n, err)
				return
			}
			log.Printf("replay finished: %d records", n)
		}
		return rp, rp.Clock, feed, nil

	case config.SourceSim:
		// Idle bus; useful to exercise sinks and status export.
		return sim.NewPort(), &sim.Clock{}, nil, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown source kind %q", c.Kind)
}
