// Package monitor classifies a pair of redundant temperature readings
// against a configured safe range and an inter-sensor tolerance.
//
// Every function in this package is pure; a Monitor carries only its
// immutable limits and delta rule and is safe for concurrent use.
package monitor

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	ABS_MINTEMP_C = -273.15
	ABS_MAXTEMP_C = 1000.0
	ABS_MINTEMP_F = -459.67
	ABS_MAXTEMP_F = 1832.0
)

func DefaultLimits() Limits {
	return Limits{
		Celsius:    Bounds{Min: ABS_MINTEMP_C, Max: ABS_MAXTEMP_C},
		Fahrenheit: Bounds{Min: ABS_MINTEMP_F, Max: ABS_MAXTEMP_F},
	}
}

// For returns the bounds for the scale, or false if the scale is unknown.
func (l Limits) For(s Scale) (Bounds, bool) {
	switch s {
	case Celsius:
		return l.Celsius, true
	case Fahrenheit:
		return l.Fahrenheit, true
	}

	return Bounds{}, false
}

// Contains reports whether v lies within [Min, Max]. NaN is never contained.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func New(limits Limits, rule DeltaRule) *Monitor {
	return &Monitor{
		limits: limits,
		rule:   rule,
	}
}

// Default returns a Monitor with the factory limits and the magnitude delta rule.
func Default() *Monitor {
	return New(DefaultLimits(), DeltaMagnitude)
}

func (m *Monitor) Limits() Limits {
	return m.limits
}

func (m *Monitor) DeltaRule() DeltaRule {
	return m.rule
}

// Validate runs every plausibility check and returns the set that failed.
// An empty set means the request may be classified.
func (m *Monitor) Validate(req Request) Violation {
	var v Violation

	bounds, ok := m.limits.For(req.Scale)
	if !ok {
		v |= ViolationScale
	}

	// the bound checks only apply once the scale is known
	if ok && !(req.MinTemp >= bounds.Min) {
		v |= ViolationMinTemp
	}

	if ok && !(req.MaxTemp <= bounds.Max) {
		v |= ViolationMaxTemp
	}

	if !(req.MinTemp <= req.MaxTemp) {
		v |= ViolationRange
	}

	if !(req.MaxDelta <= req.MaxTemp-req.MinTemp) {
		v |= ViolationMaxDelta
	}

	if ok && !bounds.Contains(req.Sensor1) {
		v |= ViolationSensor1
	}

	if ok && !bounds.Contains(req.Sensor2) {
		v |= ViolationSensor2
	}

	return v
}

// Classify assumes its inputs already passed Validate. The readings are
// rounded to two decimals before any comparison.
func (m *Monitor) Classify(minTemp, maxTemp, maxDelta, sensor1, sensor2 float64) Result {
	return m.classifyRounded(minTemp, maxTemp, maxDelta, Round2(sensor1), Round2(sensor2))
}

func (m *Monitor) classifyRounded(minTemp, maxTemp, maxDelta, s1, s2 float64) Result {
	if m.delta(s1, s2) > maxDelta {
		return Alarm
	}

	if s1 < minTemp || s2 < minTemp {
		return Alarm
	}

	if s1 > maxTemp || s2 > maxTemp {
		return Alarm
	}

	return Nominal
}

func (m *Monitor) delta(s1, s2 float64) float64 {
	if m.rule == DeltaAbsolute {
		return math.Abs(s1 - s2)
	}

	return math.Abs(s1) - math.Abs(s2)
}

// Evaluate validates and classifies the request, and reports the mean of the
// rounded readings in the request scale and in the other scale.
func (m *Monitor) Evaluate(req Request) Evaluation {
	v := m.Validate(req)
	if v != 0 {
		return Evaluation{
			Result:     Invalid,
			Scale:      req.Scale,
			Violations: v,
		}
	}

	s1 := Round2(req.Sensor1)
	s2 := Round2(req.Sensor2)
	mean := (s1 + s2) / 2

	return Evaluation{
		Result:    m.classifyRounded(req.MinTemp, req.MaxTemp, req.MaxDelta, s1, s2),
		Scale:     req.Scale,
		Mean:      mean,
		Converted: Convert(mean, req.Scale),
	}
}

// Check evaluates req with the default limits and delta rule.
func Check(req Request) Evaluation {
	return Default().Evaluate(req)
}

// Round2 rounds to two decimal places, halves away from zero.
// Non-finite values are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}
