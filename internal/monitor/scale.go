package monitor

import (
	"fmt"
	"strings"
)

// ParseScale accepts 'C'/'F' in either case, as well as the long unit names.
// Unrecognised input yields ScaleUnknown, which fails validation.
func ParseScale(s string) Scale {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius
	case "f", "fahrenheit":
		return Fahrenheit
	}

	return ScaleUnknown
}

func (s Scale) String() string {
	switch s {
	case Celsius:
		return "C"
	case Fahrenheit:
		return "F"
	}

	return "?"
}

// Other returns the scale a value in s is converted into for display.
func (s Scale) Other() Scale {
	switch s {
	case Celsius:
		return Fahrenheit
	case Fahrenheit:
		return Celsius
	}

	return ScaleUnknown
}

func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText never fails: an unknown scale is a validation concern, not a decoding one.
func (s *Scale) UnmarshalText(text []byte) error {
	*s = ParseScale(string(text))
	return nil
}

func ParseDeltaRule(s string) (DeltaRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "magnitude":
		return DeltaMagnitude, nil
	case "absolute":
		return DeltaAbsolute, nil
	}

	return DeltaMagnitude, fmt.Errorf("unknown delta rule %q", s)
}

func (r DeltaRule) String() string {
	if r == DeltaAbsolute {
		return "absolute"
	}

	return "magnitude"
}

func (r DeltaRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *DeltaRule) UnmarshalText(text []byte) error {
	rule, err := ParseDeltaRule(string(text))
	if err != nil {
		return err
	}

	*r = rule
	return nil
}
