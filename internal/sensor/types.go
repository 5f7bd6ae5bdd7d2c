package sensor

import (
	"errors"
	"sync"
	"time"

	"github.com/stianeikeland/go-rpio"
)

const (
	DRIVERTYPE_DS18B20 string = "DS18B20"
	DRIVERTYPE_GPIO    string = "GPIO"
	SENSOR_TEMPERATURE string = "temperature"
	SENSOR_ALARM       string = "alarm"

	DEFAULT_SENSOR_TIMEOUT = 5 * time.Second
)

var (
	ErrSensorPairMissing = errors.New("two temperature sensors are required for a redundant reading")
	ErrSensorTimeout     = errors.New("timed out reading temperature sensor")
	ErrNoAlarmDevice     = errors.New("no alarm device configured")
)

type (
	SensorConfig struct {
		SensorTimeout time.Duration
		Devices       []DeviceConfig

		// in configuration order, the first two form the redundant pair
		TemperatureSensors []DeviceConfig
		AlarmDevice        *DeviceConfig
	}

	DeviceConfig struct {
		DriverType               string  `json:"driver_type" yaml:"driver_type" toml:"driver_type"`
		SensorType               string  `json:"sensor_type" yaml:"sensor_type" toml:"sensor_type"`
		Address                  string  `json:"address" yaml:"address" toml:"address"`
		Name                     string  `json:"name" yaml:"name" toml:"name"`
		Description              string  `json:"description" yaml:"description" toml:"description"`
		NormallyOn               bool    `json:"normally_on,omitempty" yaml:"normally_on,omitempty" toml:"normally_on,omitempty"`
		CalibrationOffsetCelsius float64 `json:"calibration_offset_celsius" yaml:"calibration_offset_celsius" toml:"calibration_offset_celsius"`
		MockTemperatureCelsius   float64 `json:"mock_temperature_celsius,omitempty" yaml:"mock_temperature_celsius,omitempty" toml:"mock_temperature_celsius,omitempty"`
	}

	TemperatureReading struct {
		Name         string  `json:"name,omitempty"`
		Description  string  `json:"description,omitempty"`
		Address      string  `json:"address,omitempty"`
		TemperatureC float64 `json:"temperature_c"`
		TemperatureF float64 `json:"temperature_f"`
		Err          error   `json:"-"`
	}

	Sensors interface {
		ReadTemperatures() []TemperatureReading
		ReadSensorPair() (TemperatureReading, TemperatureReading, error)
		SetAlarm(on bool) error
		IsAlarmOn() (bool, error)
	}

	HardwareSensors struct {
		config SensorConfig

		gpioMu sync.Mutex
		gpio   gpioDriver
	}

	// gpioDriver is the register access used by the alarm output.
	gpioDriver interface {
		Open() error
		Close() error
		Read(pin int) rpio.State
		Write(pin int, state rpio.State)
	}

	MockSensors struct {
		config SensorConfig

		mu      sync.Mutex
		alarmOn bool
	}
)
