package evaluations

import (
	"github.com/KyleBrandon/safetemp/config"
	"github.com/KyleBrandon/safetemp/internal/display"
	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/KyleBrandon/safetemp/internal/sensor"
	"github.com/KyleBrandon/safetemp/pkg/server/metrics"
	"github.com/google/uuid"
)

type (
	Handler struct {
		settings config.Config
		monitor  *monitor.Monitor
		sensors  sensor.Sensors
		display  display.Display
		metrics  *metrics.Metrics
	}

	// EvaluationRequest requires every field so a missing value is not
	// silently treated as zero.
	EvaluationRequest struct {
		Scale    string   `json:"scale"`
		MinTemp  *float64 `json:"min_temp"`
		MaxTemp  *float64 `json:"max_temp"`
		MaxDelta *float64 `json:"max_delta"`
		Sensor1  *float64 `json:"sensor1"`
		Sensor2  *float64 `json:"sensor2"`
	}

	EvaluationResponse struct {
		ID             uuid.UUID      `json:"id"`
		Result         monitor.Result `json:"result"`
		Code           int            `json:"code"`
		Scale          monitor.Scale  `json:"scale"`
		Mean           *float64       `json:"mean,omitempty"`
		Converted      *float64       `json:"converted,omitempty"`
		ConvertedScale monitor.Scale  `json:"converted_scale,omitempty"`
		Violations     []string       `json:"violations,omitempty"`
	}

	SensorEvaluationResponse struct {
		EvaluationResponse
		Sensor1    sensor.TemperatureReading `json:"sensor1"`
		Sensor2    sensor.TemperatureReading `json:"sensor2"`
		AlarmOn    *bool                     `json:"alarm_on,omitempty"`
		AlarmError string                    `json:"alarm_error,omitempty"`
	}
)
