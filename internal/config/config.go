// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Source  SourceConfig  `yaml:"source"`
	Sink    SinkConfig    `yaml:"sink"`
	Status  *StatusConfig `yaml:"status"` // optional, opt-in
	Poll    PollConfig    `yaml:"poll"`
	Output  OutputConfig  `yaml:"output"`
}

// ---- CAPTURE ----

type CaptureConfig struct {
	DeviceName string `yaml:"device_name"`
}

// ---- SOURCE ----

const (
	SourceGPIO   = "gpio"
	SourceSim    = "sim"
	SourceReplay = "replay"
)

type SourceConfig struct {
	Kind       string     `yaml:"kind"`
	Chip       string     `yaml:"chip"`        // gpio
	ReplayFile string     `yaml:"replay_file"` // replay
	Paced      bool       `yaml:"paced"`       // replay
	Pins       *PinConfig `yaml:"pins"`        // nil => as-built wiring
}

// PinConfig maps bus lines to GPIO line offsets.
type PinConfig struct {
	DataBase uint `yaml:"data_base"`
	Strobe   uint `yaml:"strobe"`
	Ack      uint `yaml:"ack"`
	Busy     uint `yaml:"busy"`
	Autofeed uint `yaml:"autofeed"`
	Init     uint `yaml:"init"`
	SelectIn uint `yaml:"select_in"`
	PaperOut uint `yaml:"paper_out"`
	Select   uint `yaml:"select"`
	Error    uint `yaml:"error"`
}

// ---- SINK ----

type SinkConfig struct {
	Stdout bool          `yaml:"stdout"`
	File   string        `yaml:"file"`
	Serial *SerialConfig `yaml:"serial"`
	MQTT   *MQTTConfig   `yaml:"mqtt"`
}

type SerialConfig struct {
	Address   string `yaml:"address"`
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type MQTTConfig struct {
	Broker    string `yaml:"broker"`
	Topic     string `yaml:"topic"`
	QoS       byte   `yaml:"qos"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- STATUS EXPORT ----

type StatusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	BaseSlot  uint16 `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalUs int `yaml:"interval_us"`
}

// ---- OUTPUT ----

type OutputConfig struct {
	Banner    *bool `yaml:"banner"`    // default true
	Heartbeat *bool `yaml:"heartbeat"` // default true
}

// Load reads and decodes a YAML config file.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}
