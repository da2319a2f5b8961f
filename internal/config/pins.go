// internal/config/pins.go
package config

import "github.com/tamzrod/lpt-capture/internal/capture"

// PinMap resolves the configured pins, falling back to the as-built wiring.
func (s SourceConfig) PinMap() capture.PinMap {
	if s.Pins == nil {
		return capture.DefaultPinMap
	}
	p := s.Pins

	var m capture.PinMap
	m.DataBase = p.DataBase
	m.Signals[capture.BitStrobe] = p.Strobe
	m.Signals[capture.BitAck] = p.Ack
	m.Signals[capture.BitBusy] = p.Busy
	m.Signals[capture.BitAutofeed] = p.Autofeed
	m.Signals[capture.BitInit] = p.Init
	m.Signals[capture.BitSelectIn] = p.SelectIn
	m.Signals[capture.BitPaperOut] = p.PaperOut
	m.Signals[capture.BitSelect] = p.Select
	m.Signals[capture.BitError] = p.Error
	return m
}
