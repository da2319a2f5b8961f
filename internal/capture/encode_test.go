// internal/capture/encode_test.go
package capture

import "testing"

func wordFor(m PinMap, data uint8, bits SignalBits) PortWord {
	w := PortWord(data) << m.DataBase
	for i, p := range m.Signals {
		if bits.Bit(i) == 1 {
			w |= 1 << p
		}
	}
	return w
}

func TestEncode_DefaultPinMap(t *testing.T) {
	bits := SignalBits(0).Set(BitStrobe, true).Set(BitError, true)
	w := wordFor(DefaultPinMap, 0xA5, bits)

	data, got := Encode(w, DefaultPinMap)
	if data != 0xA5 {
		t.Fatalf("data: got=%#x want=0xa5", data)
	}
	if got != bits {
		t.Fatalf("bits: got=%09b want=%09b", got, bits)
	}
}

func TestEncode_IgnoresUnmonitoredLines(t *testing.T) {
	// GP0, GP1, GP13, GP16, GP17 and everything above GP21 are not monitored
	noise := PortWord(1<<0 | 1<<1 | 1<<13 | 1<<16 | 1<<17 | 0xFFC00000)

	data, bits := Encode(noise, DefaultPinMap)
	if data != 0 || bits != 0 {
		t.Fatalf("unmonitored lines leaked: data=%#x bits=%09b", data, bits)
	}
}

func TestEncode_EachSignalLandsInItsPosition(t *testing.T) {
	for i, p := range DefaultPinMap.Signals {
		_, bits := Encode(PortWord(1)<<p, DefaultPinMap)
		if bits != SignalBits(1)<<uint(i) {
			t.Fatalf("line %d: got=%09b want bit %d", p, bits, i)
		}
	}
}

func TestPinMap_Validate(t *testing.T) {
	if err := DefaultPinMap.Validate(); err != nil {
		t.Fatalf("default pin map invalid: %v", err)
	}

	dup := DefaultPinMap
	dup.Signals[BitAck] = 3 // collides with D1
	if err := dup.Validate(); err == nil {
		t.Fatalf("expected collision error")
	}

	wide := DefaultPinMap
	wide.DataBase = 26 // D6 would sit on line 32
	if err := wide.Validate(); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestSignalBits_SetClear(t *testing.T) {
	b := SignalBits(0).Set(BitBusy, true).Set(BitSelect, true)
	if b.Bit(BitBusy) != 1 || b.Bit(BitSelect) != 1 || b.Bit(BitAck) != 0 {
		t.Fatalf("unexpected bits %09b", b)
	}
	b = b.Set(BitBusy, false)
	if b.Bit(BitBusy) != 0 {
		t.Fatalf("clear failed: %09b", b)
	}
}
