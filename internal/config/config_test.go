// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tamzrod/lpt-capture/internal/capture"
)

// helper to build a valid config quickly
func base() *Config {
	return &Config{
		Source: SourceConfig{Kind: SourceGPIO, Chip: "gpiochip0"},
		Sink:   SinkConfig{Stdout: true},
	}
}

// ---- tests ----

func TestValidate_Minimal(t *testing.T) {
	if err := Validate(base()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SourceKind(t *testing.T) {
	cfg := base()
	cfg.Source.Kind = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing kind")
	}

	cfg.Source.Kind = "usb"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown kind")
	}

	cfg.Source.Kind = SourceReplay
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for replay without file")
	}

	cfg.Source.Kind = SourceGPIO
	cfg.Source.Chip = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for gpio without chip")
	}
}

func TestValidate_PinCollision(t *testing.T) {
	cfg := base()
	cfg.Source.Pins = &PinConfig{
		DataBase: 0, // D0..D7 on 0..7
		Strobe:   7, // collides with D7
		Ack:      8, Busy: 9, Autofeed: 10, Init: 11,
		SelectIn: 12, PaperOut: 13, Select: 14, Error: 15,
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected pin collision error")
	}
}

func TestValidate_NeedsSink(t *testing.T) {
	cfg := base()
	cfg.Sink = SinkConfig{}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for no sink")
	}

	cfg.Sink.MQTT = &MQTTConfig{Broker: "tcp://localhost:1883"}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for mqtt without topic")
	}

	cfg.Sink.MQTT.Topic = "lpt/frames"
	cfg.Sink.MQTT.QoS = 2
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for qos 2")
	}
}

func TestValidate_StatusRange(t *testing.T) {
	cfg := base()
	cfg.Status = &StatusConfig{Endpoint: "127.0.0.1:502", BaseSlot: 3276}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected base_slot range error")
	}

	cfg.Status.BaseSlot = 3275
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DeviceNameASCII(t *testing.T) {
	cfg := base()
	cfg.Capture.DeviceName = "bus-ü"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ascii error")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := base()
	cfg.Capture.DeviceName = "a-very-long-device-name"
	cfg.Sink.Serial = &SerialConfig{Address: "/dev/ttyACM0"}

	Normalize(cfg)

	if len(cfg.Capture.DeviceName) != 16 {
		t.Fatalf("device name not truncated: %q", cfg.Capture.DeviceName)
	}
	if cfg.Poll.IntervalUs != DefaultPollIntervalUs {
		t.Fatalf("poll default not applied: %d", cfg.Poll.IntervalUs)
	}
	// zero baud is resolved by the serial sink
	if cfg.Sink.Serial.Baud != 0 {
		t.Fatalf("baud must be left for the sink to default: %d", cfg.Sink.Serial.Baud)
	}
	if cfg.Output.Banner == nil || !*cfg.Output.Banner {
		t.Fatalf("banner default not applied")
	}
}

func TestSourcePinMap_DefaultsToAsBuilt(t *testing.T) {
	if got := (SourceConfig{}).PinMap(); got != capture.DefaultPinMap {
		t.Fatalf("expected default pin map, got %+v", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lptcap.yaml")

	yml := `
capture:
  device_name: LPT-1
source:
  kind: sim
sink:
  stdout: true
  mqtt:
    broker: tcp://localhost:1883
    topic: lpt/frames
status:
  endpoint: 127.0.0.1:502
  unit_id: 3
poll:
  interval_us: 250
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Source.Kind != SourceSim || cfg.Status == nil || cfg.Status.UnitID != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Sink.MQTT == nil || cfg.Sink.MQTT.Topic != "lpt/frames" {
		t.Fatalf("mqtt not decoded: %+v", cfg.Sink.MQTT)
	}
	if cfg.Poll.IntervalUs != 250 {
		t.Fatalf("poll interval not decoded: %d", cfg.Poll.IntervalUs)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("loaded config invalid: %v", err)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("ring_size: 8192\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
