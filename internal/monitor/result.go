package monitor

import (
	"fmt"
	"strings"
)

var violationNames = []struct {
	v    Violation
	name string
}{
	{ViolationScale, "scale"},
	{ViolationMinTemp, "min_temp"},
	{ViolationMaxTemp, "max_temp"},
	{ViolationRange, "range"},
	{ViolationMaxDelta, "max_delta"},
	{ViolationSensor1, "sensor1"},
	{ViolationSensor2, "sensor2"},
}

func (r Result) String() string {
	switch r {
	case Nominal:
		return "nominal"
	case Alarm:
		return "alarm"
	}

	return "invalid"
}

// Code maps the result onto the legacy numeric status.
func (r Result) Code() int {
	switch r {
	case Nominal:
		return CODE_NOMINAL
	case Alarm:
		return CODE_ALARM
	}

	return CODE_INVALID
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (v Violation) Has(flag Violation) bool {
	return v&flag != 0
}

// Names lists the failed checks in evaluation order.
func (v Violation) Names() []string {
	names := make([]string, 0, len(violationNames))
	for _, vn := range violationNames {
		if v.Has(vn.v) {
			names = append(names, vn.name)
		}
	}

	return names
}

func (v Violation) String() string {
	if v == 0 {
		return "none"
	}

	return strings.Join(v.Names(), ",")
}

// Err returns nil for an empty set, otherwise an error wrapping ErrInvalidInput.
func (v Violation) Err() error {
	if v == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, v)
}

func (e Evaluation) Err() error {
	return e.Violations.Err()
}
