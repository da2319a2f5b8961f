// internal/capture/frame.go
package capture

// Frame is one captured bus event.
// Immutable once pushed. Read exactly once by the drain side.
type Frame struct {
	Timestamp uint32 // µs since capture start
	Data      uint8  // D0..D7
	Bits      SignalBits
}

// SignalBits packs the 9 control/status lines.
// Bit positions are part of the record contract and MUST NOT change.
type SignalBits uint16

// ---- STATUS BIT POSITIONS ----

const (
	BitStrobe   = 0
	BitAck      = 1
	BitBusy     = 2
	BitAutofeed = 3
	BitInit     = 4
	BitSelectIn = 5
	BitPaperOut = 6
	BitSelect   = 7
	BitError    = 8
)

// SignalCount is the number of control/status lines.
const SignalCount = 9

// DataLines is the number of parallel data lines.
const DataLines = 8

// signalMask keeps only the 9 defined positions.
const signalMask SignalBits = 1<<SignalCount - 1

// Bit reports line idx as 0 or 1.
func (b SignalBits) Bit(idx int) uint8 {
	return uint8(b>>uint(idx)) & 1
}

// Set returns b with line idx set to v.
func (b SignalBits) Set(idx int, v bool) SignalBits {
	if v {
		return (b | 1<<uint(idx)) & signalMask
	}
	return b &^ (1 << uint(idx))
}
