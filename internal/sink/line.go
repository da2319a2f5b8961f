// internal/sink/line.go
package sink

import (
	"bufio"
	"io"

	"github.com/tamzrod/lpt-capture/internal/capture"
	"github.com/tamzrod/lpt-capture/internal/record"
)

// Line writes one text record per line to an io.Writer.
// Output is buffered until Flush.
type Line struct {
	w      *bufio.Writer
	closer io.Closer
	buf    []byte
}

// NewLine wraps w. If w is also an io.Closer, Close closes it.
func NewLine(w io.Writer) *Line {
	l := &Line{
		w:   bufio.NewWriterSize(w, 64*1024),
		buf: make([]byte, 0, 64),
	}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	return l
}

func (l *Line) WriteFrame(f capture.Frame) error {
	l.buf = record.Append(l.buf[:0], f)
	l.buf = append(l.buf, '\n')
	_, err := l.w.Write(l.buf)
	return err
}

func (l *Line) WriteComment(text string) error {
	if text == "" {
		_, err := l.w.WriteString("\n")
		return err
	}
	if _, err := l.w.WriteString(record.CommentPrefix + " " + text + "\n"); err != nil {
		return err
	}
	return nil
}

func (l *Line) Flush() error {
	return l.w.Flush()
}

func (l *Line) Close() error {
	err := l.w.Flush()
	if l.closer != nil {
		if cerr := l.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
