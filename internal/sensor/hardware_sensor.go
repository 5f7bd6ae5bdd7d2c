package sensor

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/stianeikeland/go-rpio"
	"github.com/yryz/ds18b20"
)

func (s *HardwareSensors) readTemperatureSensor(device *DeviceConfig) TemperatureReading {
	type result struct {
		t   float64
		err error
	}

	// the 1-wire read can hang on a disconnected probe
	ch := make(chan result, 1)
	go func() {
		t, err := ds18b20.Temperature(device.Address)
		ch <- result{t, err}
	}()

	var r result
	select {
	case r = <-ch:
	case <-time.After(s.config.SensorTimeout):
		r.err = ErrSensorTimeout
	}

	if r.err != nil {
		slog.Error("failed to read sensor", "name", device.Name, "address", device.Address, "error", r.err)
	} else {
		slog.Debug("read temperature", "name", device.Name, "temp", r.t)
	}

	return newTemperatureReading(device, r.t, r.err)
}

func (s *HardwareSensors) ReadTemperatures() []TemperatureReading {
	slog.Debug(">>ReadTemperatures")
	defer slog.Debug("<<ReadTemperatures")

	return s.readDevices(s.config.TemperatureSensors)
}

func (s *HardwareSensors) ReadSensorPair() (TemperatureReading, TemperatureReading, error) {
	slog.Debug(">>ReadSensorPair")
	defer slog.Debug("<<ReadSensorPair")

	devices := s.config.TemperatureSensors
	if len(devices) > 2 {
		devices = devices[:2]
	}

	return sensorPair(s.readDevices(devices))
}

// readDevices reads every device concurrently and keeps the configured order.
func (s *HardwareSensors) readDevices(devices []DeviceConfig) []TemperatureReading {
	readings := make([]TemperatureReading, len(devices))

	var wg sync.WaitGroup
	for i := range devices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			readings[i] = s.readTemperatureSensor(&devices[i])
		}(i)
	}

	wg.Wait()

	return readings
}

func (s *HardwareSensors) SetAlarm(on bool) error {
	slog.Debug(">>SetAlarm", "on", on)
	defer slog.Debug("<<SetAlarm")

	if s.config.AlarmDevice == nil {
		return ErrNoAlarmDevice
	}

	// the GPIO memory is mapped per call, a concurrent Close would unmap it mid-write
	s.gpioMu.Lock()
	defer s.gpioMu.Unlock()

	if on {
		return turnDeviceOn(s.gpio, s.config.AlarmDevice)
	}

	return turnDeviceOff(s.gpio, s.config.AlarmDevice)
}

func (s *HardwareSensors) IsAlarmOn() (bool, error) {
	slog.Debug(">>IsAlarmOn")
	defer slog.Debug("<<IsAlarmOn")

	if s.config.AlarmDevice == nil {
		return false, ErrNoAlarmDevice
	}

	s.gpioMu.Lock()
	defer s.gpioMu.Unlock()

	return isDeviceOn(s.gpio, s.config.AlarmDevice)
}

func isDeviceOn(gpio gpioDriver, device *DeviceConfig) (bool, error) {
	slog.Debug(">>isDeviceOn", "name", device.Name, "address", device.Address)
	defer slog.Debug("<<isDeviceOn")

	pinNumber, err := strconv.Atoi(device.Address)
	if err != nil {
		return false, err
	}

	if err := gpio.Open(); err != nil {
		return false, err
	}

	defer gpio.Close()

	var pinOnValue rpio.State = rpio.High
	if device.NormallyOn {
		pinOnValue = rpio.Low
	}

	return gpio.Read(pinNumber) == pinOnValue, nil
}

func turnDeviceOn(gpio gpioDriver, device *DeviceConfig) error {
	slog.Info(">>turnDeviceOn", "name", device.Name)
	defer slog.Info("<<turnDeviceOn", "name", device.Name)

	// if the device is normally on, that means the pin is low when it is on
	state := rpio.High
	if device.NormallyOn {
		state = rpio.Low
	}

	return writeDevice(gpio, device, state)
}

func turnDeviceOff(gpio gpioDriver, device *DeviceConfig) error {
	slog.Debug(">>turnDeviceOff", "name", device.Name)
	defer slog.Debug("<<turnDeviceOff", "name", device.Name)

	// if the device is normally on, that means the pin is high when it is off
	state := rpio.Low
	if device.NormallyOn {
		state = rpio.High
	}

	return writeDevice(gpio, device, state)
}

func writeDevice(gpio gpioDriver, device *DeviceConfig, state rpio.State) error {
	pinNumber, err := strconv.Atoi(device.Address)
	if err != nil {
		return err
	}

	if err := gpio.Open(); err != nil {
		return err
	}

	defer gpio.Close()

	gpio.Write(pinNumber, state)

	return nil
}

// rpioDriver maps the GPIO registers through go-rpio.
type rpioDriver struct{}

func (rpioDriver) Open() error {
	return rpio.Open()
}

func (rpioDriver) Close() error {
	return rpio.Close()
}

func (rpioDriver) Read(pin int) rpio.State {
	return rpio.Pin(pin).Read()
}

func (rpioDriver) Write(pin int, state rpio.State) {
	p := rpio.Pin(pin)
	p.Output()
	p.Write(state)
}
