// internal/capture/encode.go
package capture

import "fmt"

// PortWord is one atomic read of the whole input port.
// Bit n holds the level of GPIO line n.
type PortWord uint32

// PinMap places the 17 monitored lines inside a PortWord.
// Data lines are contiguous starting at DataBase.
// Signals is indexed by status bit position (BitStrobe..BitError).
type PinMap struct {
	DataBase uint
	Signals  [SignalCount]uint
}

// DefaultPinMap is the as-built wiring (DB25 → GPIO).
var DefaultPinMap = PinMap{
	DataBase: 2, // GP2..GP9
	Signals: [SignalCount]uint{
		BitStrobe:   10, // DB25-1
		BitAck:      11, // DB25-10
		BitBusy:     12, // DB25-11
		BitAutofeed: 21, // DB25-14
		BitInit:     19, // DB25-16
		BitSelectIn: 18, // DB25-17
		BitPaperOut: 14, // DB25-12
		BitSelect:   15, // DB25-13
		BitError:    20, // DB25-15
	},
}

// Lines returns every monitored line position, data first.
func (m PinMap) Lines() []uint {
	out := make([]uint, 0, DataLines+SignalCount)
	for i := uint(0); i < DataLines; i++ {
		out = append(out, m.DataBase+i)
	}
	out = append(out, m.Signals[:]...)
	return out
}

// Validate checks that all 17 lines fit in a PortWord and do not collide.
func (m PinMap) Validate() error {
	var used PortWord
	for _, p := range m.Lines() {
		if p >= 32 {
			return fmt.Errorf("pin map: line %d out of port range", p)
		}
		if used&(1<<p) != 0 {
			return fmt.Errorf("pin map: line %d assigned twice", p)
		}
		used |= 1 << p
	}
	return nil
}

// Encode converts one port snapshot into the frame payload.
// Pure: no IO, no side effects.
func Encode(w PortWord, m PinMap) (uint8, SignalBits) {
	data := uint8(w >> m.DataBase)

	var bits SignalBits
	for i, p := range m.Signals {
		bits |= SignalBits((w>>p)&1) << uint(i)
	}
	return data, bits
}
