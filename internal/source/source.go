// internal/source/source.go
package source

import "github.com/tamzrod/lpt-capture/internal/capture"

// Handler is the edge callback a source drives.
// *capture.Engine implements it.
type Handler interface {
	// OnEdge timestamps the edge with the engine clock.
	OnEdge()
	// OnEdgeAt uses a timestamp supplied by the source (µs since capture start).
	OnEdgeAt(t uint32) bool
}

// Source is the hardware collaborator: atomic port snapshot plus edge delivery.
//
// Arm starts edge delivery. A source MUST NOT call the handler again until the
// previous call returned: the capture core relies on exactly one edge context.
type Source interface {
	capture.PortReader
	Arm(h Handler) error
	Close() error
}

// Faults is implemented by sources that can lose edges or misread the port
// below the capture ring. Both counters only grow.
type Faults interface {
	ReadErrors() uint64
	LostEdges() uint64
}
