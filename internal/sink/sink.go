// internal/sink/sink.go
package sink

import (
	"errors"

	"github.com/tamzrod/lpt-capture/internal/capture"
)

// Sink is an output collaborator for drained frames.
// Frames arrive one at a time in capture order.
type Sink interface {
	capture.FrameSink

	// WriteComment emits a non-record line (banner, stats, heartbeat).
	WriteComment(text string) error

	// Flush pushes buffered output to the device.
	Flush() error

	Close() error
}

// Multi fans every call out to all sinks, in order.
// All sinks are attempted; the first error is returned.
type Multi []Sink

func (m Multi) WriteFrame(f capture.Frame) error {
	var first error
	for _, s := range m {
		if err := s.WriteFrame(f); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) WriteComment(text string) error {
	var first error
	for _, s := range m {
		if err := s.WriteComment(text); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Flush() error {
	var first error
	for _, s := range m {
		if err := s.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
