// Package capture is the real-time half of the bus sniffer.
//
// Two execution contexts share an Engine. The edge context (one goroutine,
// never reentered) calls OnEdge for every transition: deadband gate, port
// snapshot, ring push. It never blocks, allocates or logs. The polling
// context calls Drain to move frames to a sink in capture order.
//
// The ring is the only shared state. Each cursor has exactly one writer; a
// full ring drops the new frame and counts it.
package capture
