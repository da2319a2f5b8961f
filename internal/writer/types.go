// internal/writer/types.go
package writer

import "github.com/tamzrod/lpt-capture/internal/status"

// StatusPlan locates one capture device's status block on a Modbus endpoint.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16 // block index; register address = BaseSlot * SlotsPerDevice
	DeviceName string
}

// StatusWriter is the delivery-only contract for capture status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
