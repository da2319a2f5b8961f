// internal/status/constants.go
package status

// Capture Status Block layout constants.
// These values define the register map and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of registers per capture device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the capture health state.
const SlotHealthCode = 0

// SlotDrainedHi / SlotDrainedLo hold the 32-bit drained frame counter.
const SlotDrainedHi = 1
const SlotDrainedLo = 2

// SlotDroppedHi / SlotDroppedLo hold the 32-bit overflow counter.
const SlotDroppedHi = 3
const SlotDroppedLo = 4

// SlotPending holds frames waiting in the ring at snapshot time.
const SlotPending = 5

// SlotSecondsIdle holds seconds since the last drained frame.
const SlotSecondsIdle = 6

// SlotCapacity holds the usable ring capacity.
const SlotCapacity = 7

// SlotReadErrors holds failed port snapshot reads (saturating).
const SlotReadErrors = 8

// SlotLostEdges holds edges the source lost before the ring (saturating).
const SlotLostEdges = 9

// ---- RESERVED RANGE ----

// Slot 10 is reserved for future use.
const SlotReservedStart = 10
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state (nothing captured yet).
const HealthUnknown uint16 = 0

// HealthOK represents frames flowing.
const HealthOK uint16 = 1

// HealthIdle represents a quiet bus after activity.
const HealthIdle uint16 = 2

// HealthOverflow represents frames or edges lost since the previous snapshot.
const HealthOverflow uint16 = 3
