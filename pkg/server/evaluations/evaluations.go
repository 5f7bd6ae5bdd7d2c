package evaluations

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/safetemp/config"
	"github.com/KyleBrandon/safetemp/internal/display"
	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/KyleBrandon/safetemp/internal/sensor"
	"github.com/KyleBrandon/safetemp/pkg/server/metrics"
	"github.com/KyleBrandon/safetemp/pkg/utils"
	"github.com/google/uuid"
)

func NewHandler(settings config.Config, sensors sensor.Sensors, disp display.Display, m *metrics.Metrics) *Handler {
	return &Handler{
		settings: settings,
		monitor:  settings.Monitor(),
		sensors:  sensors,
		display:  disp,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/evaluations", h.handlerEvaluationsPost)
	mux.HandleFunc("GET /v1/evaluations/sensors", h.handlerSensorEvaluationGet)
}

// handlerEvaluationsPost classifies the reading pair in the body. An invalid
// request is still a successful evaluation and is reported with status 200.
func (h *Handler) handlerEvaluationsPost(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlerEvaluationsPost")
	defer slog.Debug("<<handlerEvaluationsPost")

	defer r.Body.Close()

	var er EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&er); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for evaluation", err)
		return
	}

	req, err := er.toRequest()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ev := h.monitor.Evaluate(req)
	h.metrics.ObserveEvaluation(metrics.SOURCE_REQUEST, ev.Result)

	response := newEvaluationResponse(ev)
	slog.Info("evaluated request", "id", response.ID, "result", ev.Result, "violations", ev.Violations)

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// handlerSensorEvaluationGet reads the configured pair once, classifies it
// against the configured thresholds and drives the alarm output.
func (h *Handler) handlerSensorEvaluationGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlerSensorEvaluationGet")
	defer slog.Debug("<<handlerSensorEvaluationGet")

	s1, s2, err := h.sensors.ReadSensorPair()
	if err != nil {
		h.metrics.ObserveSensorError()
		utils.RespondWithError(w, http.StatusServiceUnavailable, "failed to read the sensor pair", err)
		return
	}

	scale := h.settings.Scale
	req := h.settings.Request(s1.In(scale), s2.In(scale))

	ev := h.monitor.Evaluate(req)
	h.metrics.ObserveEvaluation(metrics.SOURCE_SENSORS, ev.Result)

	response := SensorEvaluationResponse{
		EvaluationResponse: newEvaluationResponse(ev),
		Sensor1:            s1,
		Sensor2:            s2,
	}

	// anything but a nominal reading, including an implausible one, raises the alarm
	alarmOn := ev.Result != monitor.Nominal
	err = h.sensors.SetAlarm(alarmOn)
	switch {
	case errors.Is(err, sensor.ErrNoAlarmDevice):
		slog.Debug("no alarm device configured")
	case err != nil:
		slog.Error("failed to set the alarm output", "on", alarmOn, "error", err)
		response.AlarmError = err.Error()
	default:
		response.AlarmOn = &alarmOn
	}

	if h.display != nil {
		if err := h.display.Show(scale, req.Sensor1, req.Sensor2, ev); err != nil {
			slog.Warn("failed to display the evaluation", "error", err)
		}
	}

	slog.Info("evaluated sensors", "id", response.ID, "result", ev.Result, "sensor1", req.Sensor1, "sensor2", req.Sensor2)

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (er EvaluationRequest) toRequest() (monitor.Request, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"min_temp", er.MinTemp},
		{"max_temp", er.MaxTemp},
		{"max_delta", er.MaxDelta},
		{"sensor1", er.Sensor1},
		{"sensor2", er.Sensor2},
	}

	for _, f := range fields {
		if f.value == nil {
			return monitor.Request{}, fmt.Errorf("missing field %s", f.name)
		}
	}

	return monitor.Request{
		Scale:    monitor.ParseScale(er.Scale),
		MinTemp:  *er.MinTemp,
		MaxTemp:  *er.MaxTemp,
		MaxDelta: *er.MaxDelta,
		Sensor1:  *er.Sensor1,
		Sensor2:  *er.Sensor2,
	}, nil
}

func newEvaluationResponse(ev monitor.Evaluation) EvaluationResponse {
	response := EvaluationResponse{
		ID:     uuid.New(),
		Result: ev.Result,
		Code:   ev.Result.Code(),
		Scale:  ev.Scale,
	}

	if ev.Result == monitor.Invalid {
		response.Violations = ev.Violations.Names()
		return response
	}

	mean, converted := ev.Mean, ev.Converted
	response.Mean = &mean
	response.Converted = &converted
	response.ConvertedScale = ev.Scale.Other()

	return response
}
