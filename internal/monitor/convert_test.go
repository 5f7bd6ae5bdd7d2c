package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcC2F(t *testing.T) {
	assert.Equal(t, 68.0, CalcC2F(20.0))
	assert.Equal(t, 32.0, CalcC2F(0.0))
	assert.Equal(t, 212.0, CalcC2F(100.0))
	assert.Equal(t, -40.0, CalcC2F(-40.0))
}

func TestCalcF2C(t *testing.T) {
	assert.Equal(t, 0.0, CalcF2C(32.0))
	assert.Equal(t, 100.0, CalcF2C(212.0))
	assert.Equal(t, -40.0, CalcF2C(-40.0))
	assert.InDelta(t, 20.0, CalcF2C(68.0), 1e-9)
}

func TestConvertRoundTrip(t *testing.T) {
	for _, c := range []float64{-273.15, -40, -0.5, 0, 21.37, 100, 999.99, 1000} {
		f := Convert(c, Celsius)
		assert.InDelta(t, c, Convert(f, Fahrenheit), 1e-9, "round trip of %v", c)
	}
}

func TestConvertAbsoluteLimits(t *testing.T) {
	limits := DefaultLimits()

	assert.InDelta(t, limits.Fahrenheit.Min, Convert(limits.Celsius.Min, Celsius), 1e-9)
	assert.InDelta(t, limits.Fahrenheit.Max, Convert(limits.Celsius.Max, Celsius), 1e-9)
}

func TestConvertUnknownScale(t *testing.T) {
	assert.Equal(t, 42.0, Convert(42.0, ScaleUnknown))
}
