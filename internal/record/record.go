// internal/record/record.go
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/lpt-capture/internal/capture"
)

// Header names the record columns in order.
// Downstream tooling parses this layout; it is protocol-locked.
const Header = "t_us,data_hex,strobe,ack,busy,autofeed,init,selectin,paper_out,select,error"

// CommentPrefix marks non-record lines in the stream (banner, stats, heartbeat).
const CommentPrefix = "#"

// Fields is the number of comma separated fields per record.
const Fields = 2 + capture.SignalCount

// ErrComment is returned by Parse for comment, header and blank lines.
var ErrComment = errors.New("record: not a data line")

const hexDigits = "0123456789abcdef"

// Append renders f as one record (without newline) onto dst.
func Append(dst []byte, f capture.Frame) []byte {
	dst = strconv.AppendUint(dst, uint64(f.Timestamp), 10)
	dst = append(dst, ',', hexDigits[f.Data>>4], hexDigits[f.Data&0x0F])
	for i := 0; i < capture.SignalCount; i++ {
		dst = append(dst, ',', '0'+f.Bits.Bit(i))
	}
	return dst
}

// Format renders f as one record string (without newline).
func Format(f capture.Frame) string {
	return string(Append(make([]byte, 0, 40), f))
}

// Parse decodes one record line. Hex digits may be either case.
func Parse(line string) (capture.Frame, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, CommentPrefix) || strings.HasPrefix(line, "t_us") {
		return capture.Frame{}, ErrComment
	}

	parts := strings.Split(line, ",")
	if len(parts) != Fields && len(parts) != 2 {
		return capture.Frame{}, fmt.Errorf("record: expected %d fields, got %d", Fields, len(parts))
	}

	ts, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return capture.Frame{}, fmt.Errorf("record: timestamp: %w", err)
	}

	data, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 16, 8)
	if err != nil {
		return capture.Frame{}, fmt.Errorf("record: data byte: %w", err)
	}

	f := capture.Frame{Timestamp: uint32(ts), Data: uint8(data)}

	// Short form (t_us,data_hex) carries no signal columns.
	for i, p := range parts[2:] {
		switch strings.TrimSpace(p) {
		case "0":
		case "1":
			f.Bits = f.Bits.Set(i, true)
		default:
			return capture.Frame{}, fmt.Errorf("record: signal %d: want 0 or 1, got %q", i, p)
		}
	}

	return f, nil
}
