package monitor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceVectors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Result
	}{
		{"BBT1 representative values", Request{Celsius, -10, 80, 3, 55.1, 55.5}, Nominal},
		{"BBT2 representative values", Request{Celsius, -100, 120, 5, 99.9, 100.1}, Nominal},
		{"NT1 minimum below absolute zero", Request{Celsius, -274, 80, 3, 50, 50}, Invalid},
		{"NT2 whole range below absolute zero", Request{Celsius, -300, -274, 3, 50, 50}, Invalid},
		{"BT1 sensor at absolute zero", Request{Celsius, -273.15, 80, 3, -273.15, -272.0}, Nominal},
		{"BT2 second sensor at absolute zero", Request{Celsius, -273.15, 80, 3, -272.0, -273.15}, Nominal},
		{"ST1 full range", Request{Celsius, -273.15, 1000, 3, 55.1, 57.6}, Nominal},
		{"ST2 full range", Request{Celsius, -273.15, 1000, 6, 89.6, 94.2}, Nominal},
		{"CCT1 second sensor reads higher", Request{Celsius, -273.15, 1000, 8, 55.1, 62}, Nominal},
		{"CCT2 delta at tolerance", Request{Celsius, -273.15, 1000, 4, 90.2, 94.2}, Nominal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.req)
			assert.Equal(t, tt.want, got.Result)
			assert.Equal(t, tt.want.Code(), got.Result.Code())
		})
	}
}

func TestValidateSingleViolation(t *testing.T) {
	base := Request{Scale: Celsius, MinTemp: -10, MaxTemp: 80, MaxDelta: 3, Sensor1: 20, Sensor2: 21}
	m := Default()

	require.Zero(t, m.Validate(base), "base request must be valid")

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   Violation
	}{
		{"unknown scale", func(r *Request) { r.Scale = ScaleUnknown }, ViolationScale},
		{"min below absolute limit", func(r *Request) { r.MinTemp = -274 }, ViolationMinTemp},
		{"max above absolute limit", func(r *Request) { r.MaxTemp = 1000.01 }, ViolationMaxTemp},
		{"inverted range", func(r *Request) { r.MinTemp, r.MaxTemp, r.MaxDelta = 50, 40, -20 }, ViolationRange},
		{"delta wider than range", func(r *Request) { r.MaxDelta = 90.5 }, ViolationMaxDelta},
		{"sensor1 above absolute limit", func(r *Request) { r.Sensor1 = 1000.5 }, ViolationSensor1},
		{"sensor1 not a number", func(r *Request) { r.Sensor1 = math.NaN() }, ViolationSensor1},
		{"sensor2 below absolute limit", func(r *Request) { r.Sensor2 = -300 }, ViolationSensor2},
		{"sensor2 infinite", func(r *Request) { r.Sensor2 = math.Inf(1) }, ViolationSensor2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)

			assert.Equal(t, tt.want, m.Validate(req))

			ev := m.Evaluate(req)
			assert.Equal(t, Invalid, ev.Result)
			assert.Zero(t, ev.Mean)
			assert.Zero(t, ev.Converted)
			assert.True(t, errors.Is(ev.Err(), ErrInvalidInput))
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	req := Request{Scale: Celsius, MinTemp: -300, MaxTemp: 2000, MaxDelta: 3, Sensor1: -500, Sensor2: 5000}

	v := Default().Validate(req)

	assert.Equal(t, []string{"min_temp", "max_temp", "sensor1", "sensor2"}, v.Names())
	assert.Equal(t, "min_temp,max_temp,sensor1,sensor2", v.String())
}

func TestValidateUnknownScaleSkipsBoundChecks(t *testing.T) {
	req := Request{Scale: ScaleUnknown, MinTemp: -1000, MaxTemp: 5000, MaxDelta: 3, Sensor1: 20, Sensor2: 20}

	assert.Equal(t, ViolationScale, Default().Validate(req))
}

func TestValidCelsiusRequests(t *testing.T) {
	m := Default()
	mins := []float64{-273.15, -100, 0, 25.5, 999, 1000}
	for _, minTemp := range mins {
		for _, span := range []float64{0, 0.5, 10, 1000} {
			maxTemp := math.Min(minTemp+span, 1000)
			req := Request{
				Scale:    Celsius,
				MinTemp:  minTemp,
				MaxTemp:  maxTemp,
				MaxDelta: maxTemp - minTemp,
				Sensor1:  -273.15,
				Sensor2:  1000,
			}
			assert.Zero(t, m.Validate(req), "request %+v", req)
		}
	}
}

func TestClassify(t *testing.T) {
	m := Default()

	tests := []struct {
		name           string
		s1, s2         float64
		minT, maxT, dt float64
		want           Result
	}{
		{"within range", 20, 21, -10, 80, 3, Nominal},
		{"first sensor reads too far above second", 60, 50, -10, 80, 3, Alarm},
		{"first sensor below range", -11, -10, -10, 80, 3, Alarm},
		{"second sensor below range", -9, -10.5, -10, 80, 3, Alarm},
		{"first sensor above range", 81, 80, -10, 80, 3, Alarm},
		{"second sensor above range", 79, 80.5, -10, 80, 3, Alarm},
		{"rounded down onto the upper bound", 80.004, 80, -10, 80, 3, Nominal},
		{"rounded up past the upper bound", 80.005, 80, -10, 80, 3, Alarm},
		{"rounded up onto the lower bound", -10.004, -10, -10, 80, 3, Nominal},
		{"delta exactly at tolerance", 53, 50, -10, 80, 3, Nominal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Classify(tt.minT, tt.maxT, tt.dt, tt.s1, tt.s2))
		})
	}
}

func TestDeltaRules(t *testing.T) {
	magnitude := New(DefaultLimits(), DeltaMagnitude)
	absolute := New(DefaultLimits(), DeltaAbsolute)

	t.Run("second sensor far above first", func(t *testing.T) {
		assert.Equal(t, Nominal, magnitude.Classify(-10, 80, 3, 50, 60))
		assert.Equal(t, Alarm, absolute.Classify(-10, 80, 3, 50, 60))
	})

	t.Run("readings on opposite sides of zero", func(t *testing.T) {
		// |-5| - |5| is zero although the sensors disagree by 10 degrees
		assert.Equal(t, Nominal, magnitude.Classify(-10, 80, 3, -5, 5))
		assert.Equal(t, Alarm, absolute.Classify(-10, 80, 3, -5, 5))
	})

	t.Run("first sensor far above second", func(t *testing.T) {
		assert.Equal(t, Alarm, magnitude.Classify(-10, 80, 3, 60, 50))
		assert.Equal(t, Alarm, absolute.Classify(-10, 80, 3, 60, 50))
	})
}

func TestClassifyMonotonicInDelta(t *testing.T) {
	pairs := [][2]float64{{50, 60}, {60, 50}, {-5, 5}, {20.005, 20}, {79.99, 70}}
	deltas := []float64{0, 0.01, 1, 5, 9.99, 10, 20, 90}

	for _, rule := range []DeltaRule{DeltaMagnitude, DeltaAbsolute} {
		m := New(DefaultLimits(), rule)
		for _, p := range pairs {
			seenNominal := false
			for _, d := range deltas {
				got := m.Classify(-10, 80, d, p[0], p[1])
				if seenNominal {
					assert.Equal(t, Nominal, got, "rule %s pair %v delta %v", rule, p, d)
				}
				seenNominal = seenNominal || got == Nominal
			}
		}
	}
}

func TestEvaluateMeanAndConversion(t *testing.T) {
	t.Run("celsius", func(t *testing.T) {
		ev := Check(Request{Celsius, -10, 80, 3, 55.1, 55.5})

		require.Equal(t, Nominal, ev.Result)
		assert.Equal(t, Celsius, ev.Scale)
		assert.InDelta(t, 55.3, ev.Mean, 1e-9)
		assert.InDelta(t, 131.54, ev.Converted, 1e-9)
		assert.NoError(t, ev.Err())
	})

	t.Run("fahrenheit", func(t *testing.T) {
		ev := Check(Request{Fahrenheit, 32, 212, 5, 100, 101})

		require.Equal(t, Nominal, ev.Result)
		assert.InDelta(t, 100.5, ev.Mean, 1e-9)
		assert.InDelta(t, 38.0555555, ev.Converted, 1e-6)
	})

	t.Run("mean uses rounded readings", func(t *testing.T) {
		ev := Check(Request{Celsius, -10, 80, 3, 20.004, 20.006})

		assert.InDelta(t, 20.005, ev.Mean, 1e-9)
	})

	t.Run("alarm still reports the mean", func(t *testing.T) {
		ev := Check(Request{Celsius, -10, 80, 3, 90, 90})

		assert.Equal(t, Alarm, ev.Result)
		assert.InDelta(t, 90, ev.Mean, 1e-9)
		assert.InDelta(t, 194, ev.Converted, 1e-9)
	})
}

func TestFahrenheitLimits(t *testing.T) {
	m := Default()

	assert.Zero(t, m.Validate(Request{Fahrenheit, -459.67, 1832, 10, -459.67, 1832}))
	assert.Equal(t, ViolationMinTemp, m.Validate(Request{Fahrenheit, -460, 100, 10, 50, 50}))
	assert.Equal(t, ViolationMaxTemp|ViolationSensor2, m.Validate(Request{Fahrenheit, 0, 1900, 10, 50, 1850}))

	// valid in fahrenheit but far above the celsius ceiling
	assert.Equal(t, Nominal, Check(Request{Fahrenheit, 1000, 1800, 10, 1500, 1500}).Result)
}

func TestCustomLimits(t *testing.T) {
	limits := DefaultLimits()
	limits.Celsius = Bounds{Min: -40, Max: 125}
	m := New(limits, DeltaMagnitude)

	assert.Equal(t, ViolationMaxTemp, m.Validate(Request{Celsius, 0, 130, 3, 50, 50}))
	assert.Equal(t, ViolationSensor1, m.Validate(Request{Celsius, -10, 80, 3, -41, 50}))
	assert.Equal(t, limits, m.Limits())
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{55.1, 55.1},
		{2.345, 2.35},
		{-2.345, -2.35},
		{1.005, 1.01},
		{-1.005, -1.01},
		{0.004, 0},
		{-273.15, -273.15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}

	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(-1)), -1))
}

func TestParseScale(t *testing.T) {
	tests := []struct {
		in   string
		want Scale
	}{
		{"C", Celsius},
		{"c", Celsius},
		{" celsius ", Celsius},
		{"F", Fahrenheit},
		{"f", Fahrenheit},
		{"Fahrenheit", Fahrenheit},
		{"K", ScaleUnknown},
		{"", ScaleUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseScale(tt.in), "ParseScale(%q)", tt.in)
	}

	assert.Equal(t, Fahrenheit, Celsius.Other())
	assert.Equal(t, Celsius, Fahrenheit.Other())
	assert.Equal(t, ScaleUnknown, ScaleUnknown.Other())
}

func TestParseDeltaRule(t *testing.T) {
	rule, err := ParseDeltaRule("Absolute")
	require.NoError(t, err)
	assert.Equal(t, DeltaAbsolute, rule)

	rule, err = ParseDeltaRule("")
	require.NoError(t, err)
	assert.Equal(t, DeltaMagnitude, rule)

	_, err = ParseDeltaRule("relative")
	assert.Error(t, err)
}

func TestResultCodes(t *testing.T) {
	assert.Equal(t, 7, Nominal.Code())
	assert.Equal(t, 3, Alarm.Code())
	assert.Equal(t, 5, Invalid.Code())
	assert.Equal(t, "invalid", Result(0).String())
}

func TestMonitorConcurrentEvaluate(t *testing.T) {
	m := New(DefaultLimits(), DeltaAbsolute)

	tests := []struct {
		name string
		req  Request
		want Result
	}{
		{"nominal celsius", Request{Celsius, -10, 80, 3, 55.1, 55.5}, Nominal},
		{"nominal fahrenheit", Request{Fahrenheit, 32, 212, 5, 100, 101}, Nominal},
		{"sensors disagree", Request{Celsius, -10, 80, 3, 20, 30}, Alarm},
		{"out of range", Request{Fahrenheit, 32, 100, 3, 101, 100}, Alarm},
		{"unknown scale", Request{ScaleUnknown, 0, 80, 3, 50, 50}, Invalid},
		{"minimum below absolute zero", Request{Celsius, -274, 80, 3, 50, 50}, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for i := 0; i < 100; i++ {
				assert.Equal(t, tt.want, m.Evaluate(tt.req).Result)
			}
		})
	}
}
