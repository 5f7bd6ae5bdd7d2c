package monitor

func CelsiusToFahrenheit(c float64) float64 {
	return (c * 9 / 5) + 32
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// CalcC2F is kept for callers of the firmware API.
func CalcC2F(c float64) float64 {
	return CelsiusToFahrenheit(c)
}

// CalcF2C is kept for callers of the firmware API.
func CalcF2C(f float64) float64 {
	return FahrenheitToCelsius(f)
}

// Convert maps value from the given scale into the other one.
// A value in an unknown scale is returned unchanged.
func Convert(value float64, from Scale) float64 {
	switch from {
	case Celsius:
		return CelsiusToFahrenheit(value)
	case Fahrenheit:
		return FahrenheitToCelsius(value)
	}

	return value
}
