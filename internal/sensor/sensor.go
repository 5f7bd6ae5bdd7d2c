package sensor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/KyleBrandon/safetemp/internal/monitor"
)

// NewSensorConfig sorts the configured devices into the temperature pair and
// the alarm output and returns the hardware or mock implementation.
func NewSensorConfig(sensorTimeout int, devices []DeviceConfig, useMock bool) (Sensors, error) {
	slog.Debug(">>NewSensorConfig")
	defer slog.Debug("<<NewSensorConfig")

	sc := SensorConfig{
		SensorTimeout: time.Duration(sensorTimeout) * time.Second,
		Devices:       devices,
	}

	if sc.SensorTimeout <= 0 {
		sc.SensorTimeout = DEFAULT_SENSOR_TIMEOUT
	}

	for i := range sc.Devices {
		d := sc.Devices[i]
		switch d.SensorType {
		case SENSOR_TEMPERATURE:
			if d.DriverType == DRIVERTYPE_DS18B20 {
				sc.TemperatureSensors = append(sc.TemperatureSensors, d)
			} else {
				slog.Warn("unsupported temperature driver", "name", d.Name, "driver_type", d.DriverType)
			}

		case SENSOR_ALARM:
			if sc.AlarmDevice != nil {
				return nil, fmt.Errorf("alarm device %q already configured, found %q", sc.AlarmDevice.Name, d.Name)
			}
			sc.AlarmDevice = &d
		}
	}

	if len(sc.TemperatureSensors) < 2 {
		return nil, ErrSensorPairMissing
	}

	if useMock {
		slog.Info("using mock sensors")
		return &MockSensors{config: sc}, nil
	}

	return &HardwareSensors{config: sc, gpio: rpioDriver{}}, nil
}

func newTemperatureReading(device *DeviceConfig, celsius float64, err error) TemperatureReading {
	tr := TemperatureReading{
		Name:        device.Name,
		Description: device.Description,
		Address:     device.Address,
		Err:         err,
	}

	if err == nil {
		t := celsius + device.CalibrationOffsetCelsius
		tr.TemperatureC = t
		tr.TemperatureF = monitor.CelsiusToFahrenheit(t)
	}

	return tr
}

// In returns the reading expressed in the given scale.
func (tr TemperatureReading) In(scale monitor.Scale) float64 {
	if scale == monitor.Fahrenheit {
		return tr.TemperatureF
	}

	return tr.TemperatureC
}

// sensorPair picks the two redundant readings and reports the first failure.
func sensorPair(readings []TemperatureReading) (TemperatureReading, TemperatureReading, error) {
	if len(readings) < 2 {
		return TemperatureReading{}, TemperatureReading{}, ErrSensorPairMissing
	}

	s1, s2 := readings[0], readings[1]
	for _, r := range []TemperatureReading{s1, s2} {
		if r.Err != nil {
			return s1, s2, fmt.Errorf("sensor %s (%s): %w", r.Name, r.Address, r.Err)
		}
	}

	return s1, s2, nil
}
