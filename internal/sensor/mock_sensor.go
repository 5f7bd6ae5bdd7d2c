package sensor

import (
	"log/slog"
)

func (m *MockSensors) ReadTemperatures() []TemperatureReading {
	slog.Debug(">>ReadTemperatures")
	defer slog.Debug("<<ReadTemperatures")

	readings := make([]TemperatureReading, 0, len(m.config.TemperatureSensors))

	for i := range m.config.TemperatureSensors {
		device := &m.config.TemperatureSensors[i]
		readings = append(readings, newTemperatureReading(device, device.MockTemperatureCelsius, nil))
	}

	return readings
}

func (m *MockSensors) ReadSensorPair() (TemperatureReading, TemperatureReading, error) {
	slog.Debug(">>ReadSensorPair")
	defer slog.Debug("<<ReadSensorPair")

	return sensorPair(m.ReadTemperatures())
}

func (m *MockSensors) SetAlarm(on bool) error {
	slog.Debug(">>SetAlarm", "on", on)
	defer slog.Debug("<<SetAlarm")

	if m.config.AlarmDevice == nil {
		return ErrNoAlarmDevice
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.alarmOn = on
	return nil
}

func (m *MockSensors) IsAlarmOn() (bool, error) {
	if m.config.AlarmDevice == nil {
		return false, ErrNoAlarmDevice
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.alarmOn, nil
}
