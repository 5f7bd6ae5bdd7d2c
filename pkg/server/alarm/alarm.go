package alarm

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/safetemp/internal/sensor"
	"github.com/KyleBrandon/safetemp/pkg/utils"
)

func NewHandler(alarm AlarmOutput) *Handler {
	return &Handler{
		alarm,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/alarm", h.handlerAlarmGet)
	mux.HandleFunc("DELETE /v1/alarm", h.handlerAlarmClear)
}

func (h *Handler) handlerAlarmGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerAlarmGet")

	alarmOn, err := h.alarm.IsAlarmOn()
	if err != nil {
		h.respondWithAlarmError(w, "failed to read the alarm output", err)
		return
	}

	response := struct {
		AlarmOn bool `json:"alarm_on"`
	}{
		AlarmOn: alarmOn,
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// handlerAlarmClear silences the alarm output until the next sensor evaluation.
func (h *Handler) handlerAlarmClear(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerAlarmClear")

	if err := h.alarm.SetAlarm(false); err != nil {
		h.respondWithAlarmError(w, "failed to clear the alarm output", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusNoContent)
}

func (h *Handler) respondWithAlarmError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, sensor.ErrNoAlarmDevice) {
		utils.RespondWithError(w, http.StatusNotFound, "no alarm device configured", err)
		return
	}

	utils.RespondWithError(w, http.StatusInternalServerError, message, err)
}
