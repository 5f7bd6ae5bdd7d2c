package temperatures

import (
	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/KyleBrandon/safetemp/internal/sensor"
)

type (
	TemperatureReading struct {
		Name         string  `json:"name,omitempty"`
		Description  string  `json:"description,omitempty"`
		Address      string  `json:"address,omitempty"`
		TemperatureC float64 `json:"temperature_c"`
		TemperatureF float64 `json:"temperature_f"`
		Err          string  `json:"err,omitempty"`
	}

	ConversionResponse struct {
		Value          float64       `json:"value"`
		Scale          monitor.Scale `json:"scale"`
		Converted      float64       `json:"converted"`
		ConvertedScale monitor.Scale `json:"converted_scale"`
	}

	Handler struct {
		sensors sensor.Sensors
	}
)
