// internal/status/encode.go
package status

// Encode converts a Snapshot into the live part of a status block.
// Device name slots are left zero; the writer owns them.
// Layout is register-map locked. No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotDrainedHi] = uint16(s.Drained >> 16)
	regs[SlotDrainedLo] = uint16(s.Drained)
	regs[SlotDroppedHi] = uint16(s.Dropped >> 16)
	regs[SlotDroppedLo] = uint16(s.Dropped)
	regs[SlotPending] = s.Pending
	regs[SlotSecondsIdle] = s.SecondsIdle
	regs[SlotCapacity] = s.Capacity
	regs[SlotReadErrors] = s.ReadErrors
	regs[SlotLostEdges] = s.LostEdges

	return regs
}
