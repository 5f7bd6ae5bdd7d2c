package monitor

import "errors"

// Scale is the temperature unit a request is expressed in.
type Scale int

const (
	ScaleUnknown Scale = iota
	Celsius
	Fahrenheit
)

// Result is the outcome of a single evaluation. The zero value is Invalid.
type Result int

const (
	Invalid Result = iota
	Alarm
	Nominal
)

// Legacy numeric status codes, also used as exit codes by safetemp-check.
const (
	CODE_NOMINAL = 7
	CODE_ALARM   = 3
	CODE_INVALID = 5
)

// DeltaRule selects how the disagreement between the two sensors is measured.
type DeltaRule int

const (
	// DeltaMagnitude is |s1| - |s2|, a signed difference of magnitudes.
	DeltaMagnitude DeltaRule = iota
	// DeltaAbsolute is |s1 - s2|.
	DeltaAbsolute
)

// Violation is a set of failed plausibility checks.
type Violation uint8

const (
	ViolationScale Violation = 1 << iota
	ViolationMinTemp
	ViolationMaxTemp
	ViolationRange
	ViolationMaxDelta
	ViolationSensor1
	ViolationSensor2
)

var ErrInvalidInput = errors.New("invalid monitoring input")

type (
	Bounds struct {
		Min float64 `json:"min" yaml:"min" toml:"min"`
		Max float64 `json:"max" yaml:"max" toml:"max"`
	}

	// Limits holds the absolute physical bounds for each scale.
	Limits struct {
		Celsius    Bounds `json:"celsius" yaml:"celsius" toml:"celsius"`
		Fahrenheit Bounds `json:"fahrenheit" yaml:"fahrenheit" toml:"fahrenheit"`
	}

	Request struct {
		Scale    Scale   `json:"scale"`
		MinTemp  float64 `json:"min_temp"`
		MaxTemp  float64 `json:"max_temp"`
		MaxDelta float64 `json:"max_delta"`
		Sensor1  float64 `json:"sensor1"`
		Sensor2  float64 `json:"sensor2"`
	}

	// Evaluation is everything a caller needs to both alarm and display.
	// Mean and Converted are zero when Result is Invalid.
	Evaluation struct {
		Result     Result
		Scale      Scale
		Mean       float64
		Converted  float64
		Violations Violation
	}

	Monitor struct {
		limits Limits
		rule   DeltaRule
	}
)
