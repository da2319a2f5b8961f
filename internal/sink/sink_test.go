// internal/sink/sink_test.go
package sink

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/lpt-capture/internal/capture"
	cfg "github.com/tamzrod/lpt-capture/internal/config"
)

// ---- fakes ----

type fakeSink struct {
	frames   []capture.Frame
	comments []string
	flushes  int
	closed   bool
	err      error
}

func (f *fakeSink) WriteFrame(fr capture.Frame) error {
	f.frames = append(f.frames, fr)
	return f.err
}

func (f *fakeSink) WriteComment(text string) error {
	f.comments = append(f.comments, text)
	return f.err
}

func (f *fakeSink) Flush() error {
	f.flushes++
	return f.err
}

func (f *fakeSink) Close() error {
	f.closed = true
	return f.err
}

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type publishCall struct {
	topic   string
	payload string
}

type fakePublisher struct {
	calls        []publishCall
	err          error
	disconnected bool
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.calls = append(p.calls, publishCall{topic: topic, payload: string(payload.([]byte))})
	return &fakeToken{err: p.err}
}

func (p *fakePublisher) Disconnect(quiesce uint) {
	p.disconnected = true
}

// ---- tests ----

func TestLine_WritesRecordsAndComments(t *testing.T) {
	var buf bytes.Buffer
	l := NewLine(&buf)

	if err := l.WriteComment("Armed"); err != nil {
		t.Fatalf("WriteComment err=%v", err)
	}
	if err := l.WriteFrame(capture.Frame{Timestamp: 5, Data: 0xA5, Bits: 1}); err != nil {
		t.Fatalf("WriteFrame err=%v", err)
	}

	if buf.Len() != 0 {
		t.Fatalf("output must stay buffered until Flush")
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush err=%v", err)
	}

	want := "# Armed\n5,a5,1,0,0,0,0,0,0,0,0\n"
	if buf.String() != want {
		t.Fatalf("got=%q want=%q", buf.String(), want)
	}
}

func TestMulti_FanOutFirstErrorWins(t *testing.T) {
	a := &fakeSink{err: errors.New("a failed")}
	b := &fakeSink{}

	m := Multi{a, b}
	err := m.WriteFrame(capture.Frame{Timestamp: 1})
	if err == nil || err.Error() != "a failed" {
		t.Fatalf("expected first error, got %v", err)
	}
	if len(b.frames) != 1 {
		t.Fatalf("second sink must still receive the frame")
	}

	_ = m.Flush()
	if a.flushes != 1 || b.flushes != 1 {
		t.Fatalf("flush not fanned out")
	}

	if err := m.Close(); err == nil {
		t.Fatalf("expected close error from a")
	}
	if !a.closed || !b.closed {
		t.Fatalf("all sinks must be closed")
	}
}

func TestMQTT_PublishesRecords(t *testing.T) {
	pub := &fakePublisher{}
	m := newMQTT(pub, MQTTConfig{Topic: "lpt/frames", Timeout: time.Second})

	if err := m.WriteFrame(capture.Frame{Timestamp: 42, Data: 0x0F}); err != nil {
		t.Fatalf("WriteFrame err=%v", err)
	}
	if err := m.WriteComment("idle"); err != nil {
		t.Fatalf("WriteComment err=%v", err)
	}
	if err := m.WriteComment(""); err != nil {
		t.Fatalf("WriteComment empty err=%v", err)
	}

	if len(pub.calls) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(pub.calls))
	}
	if pub.calls[0].topic != "lpt/frames" || pub.calls[0].payload != "42,0f,0,0,0,0,0,0,0,0,0" {
		t.Fatalf("unexpected record publish %+v", pub.calls[0])
	}
	if pub.calls[1].topic != "lpt/frames/log" {
		t.Fatalf("unexpected comment topic %q", pub.calls[1].topic)
	}

	_ = m.Close()
	if !pub.disconnected {
		t.Fatalf("Close must disconnect")
	}
}

func TestMQTT_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	m := newMQTT(pub, MQTTConfig{Topic: "t", Timeout: time.Second})

	if err := m.WriteFrame(capture.Frame{}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestNewSerial_RequiresAddress(t *testing.T) {
	if _, err := NewSerial(SerialConfig{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestNewMQTT_Validation(t *testing.T) {
	if _, err := NewMQTT(MQTTConfig{Topic: "t"}); err == nil {
		t.Fatalf("expected error for empty broker")
	}
	if _, err := NewMQTT(MQTTConfig{Broker: "tcp://x:1883"}); err == nil {
		t.Fatalf("expected error for empty topic")
	}
	if _, err := NewMQTT(MQTTConfig{Broker: "tcp://x:1883", Topic: "t", QoS: 2}); err == nil {
		t.Fatalf("expected error for qos 2")
	}
}

func TestBuild_FileSink(t *testing.T) {
	path := t.TempDir() + "/capture.csv"

	s, err := Build(cfg.SinkConfig{File: path}, "test")
	if err != nil {
		t.Fatalf("Build err=%v", err)
	}
	if err := s.WriteFrame(capture.Frame{Timestamp: 1, Data: 0xA5, Bits: 1}); err != nil {
		t.Fatalf("WriteFrame err=%v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "1,a5,1,0,0,0,0,0,0,0,0\n" {
		t.Fatalf("unexpected file content %q", got)
	}
}

func TestBuild_NoneConfigured(t *testing.T) {
	if _, err := Build(cfg.SinkConfig{}, "test"); err == nil {
		t.Fatalf("expected error")
	}
}
