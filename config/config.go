package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/KyleBrandon/safetemp/internal/sensor"
	"gopkg.in/yaml.v3"
)

const DefaultLogLevel = slog.LevelInfo

var ErrInvalidLimits = errors.New("invalid absolute limits")

type LimitOverrides struct {
	Celsius    *monitor.Bounds `json:"celsius,omitempty" yaml:"celsius,omitempty" toml:"celsius,omitempty"`
	Fahrenheit *monitor.Bounds `json:"fahrenheit,omitempty" yaml:"fahrenheit,omitempty" toml:"fahrenheit,omitempty"`
}

type Config struct {
	Scale     monitor.Scale     `json:"scale" yaml:"scale" toml:"scale"`
	MinTemp   float64           `json:"min_temp" yaml:"min_temp" toml:"min_temp"`
	MaxTemp   float64           `json:"max_temp" yaml:"max_temp" toml:"max_temp"`
	MaxDelta  float64           `json:"max_delta" yaml:"max_delta" toml:"max_delta"`
	DeltaRule monitor.DeltaRule `json:"delta_rule" yaml:"delta_rule" toml:"delta_rule"`

	// optional, the factory limits apply to any scale left out
	AbsoluteLimits *LimitOverrides `json:"absolute_limits,omitempty" yaml:"absolute_limits,omitempty" toml:"absolute_limits,omitempty"`

	Devices              []sensor.DeviceConfig `json:"devices" yaml:"devices" toml:"devices"`
	SensorTimeoutSeconds int                   `json:"sensor_timeout_seconds" yaml:"sensor_timeout_seconds" toml:"sensor_timeout_seconds"`
}

// LoadConfigSettings reads the settings file, picking the decoder from its
// extension, and rejects thresholds that could never classify a reading.
func LoadConfigSettings(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return config, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &config)
	case ".toml":
		err = toml.Unmarshal(bytes, &config)
	default:
		err = json.Unmarshal(bytes, &config)
	}

	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// Limits overlays the configured scales onto the factory limits.
func (c Config) Limits() monitor.Limits {
	limits := monitor.DefaultLimits()
	if c.AbsoluteLimits == nil {
		return limits
	}

	if c.AbsoluteLimits.Celsius != nil {
		limits.Celsius = *c.AbsoluteLimits.Celsius
	}

	if c.AbsoluteLimits.Fahrenheit != nil {
		limits.Fahrenheit = *c.AbsoluteLimits.Fahrenheit
	}

	return limits
}

func (o *LimitOverrides) validate() error {
	if o == nil {
		return nil
	}

	overrides := []struct {
		name   string
		bounds *monitor.Bounds
	}{
		{"celsius", o.Celsius},
		{"fahrenheit", o.Fahrenheit},
	}

	for _, ov := range overrides {
		// written so NaN fails as well
		if ov.bounds != nil && !(ov.bounds.Min <= ov.bounds.Max) {
			return fmt.Errorf("%w: %s min %v is above max %v", ErrInvalidLimits, ov.name, ov.bounds.Min, ov.bounds.Max)
		}
	}

	return nil
}

// Monitor builds the classifier for the configured limits and delta rule.
func (c Config) Monitor() *monitor.Monitor {
	return monitor.New(c.Limits(), c.DeltaRule)
}

// Request pairs the configured thresholds with a reading pair.
func (c Config) Request(sensor1, sensor2 float64) monitor.Request {
	return monitor.Request{
		Scale:    c.Scale,
		MinTemp:  c.MinTemp,
		MaxTemp:  c.MaxTemp,
		MaxDelta: c.MaxDelta,
		Sensor1:  sensor1,
		Sensor2:  sensor2,
	}
}

// Validate runs the threshold checks of the monitor, ignoring the sensor checks.
func (c Config) Validate() error {
	if err := c.AbsoluteLimits.validate(); err != nil {
		return err
	}

	mid := (c.MinTemp + c.MaxTemp) / 2

	v := c.Monitor().Validate(c.Request(mid, mid))
	v &^= monitor.ViolationSensor1 | monitor.ViolationSensor2

	if err := v.Err(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}

	return nil
}
