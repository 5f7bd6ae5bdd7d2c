package health

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/safetemp/pkg/utils"
)

func NewHandler(level *slog.LevelVar) *Handler {
	return &Handler{
		level: level,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/health", h.handlerHealthGet)
	mux.HandleFunc("GET /v1/health/loglevel", h.handlerLogLevelGet)
	mux.HandleFunc("PUT /v1/health/loglevel", h.handlerLogLevelPut)
}

func (h *Handler) handlerHealthGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerHealthGet")
	response := struct {
		Status string `json:"status"`
	}{
		Status: "ok",
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *Handler) handlerLogLevelGet(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, LogLevelResponse{Level: h.level.Level().String()})
}

func (h *Handler) handlerLogLevelPut(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req LogLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for log level", err)
		return
	}

	level, err := utils.ParseLogLevel(req.Level)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid log level", err)
		return
	}

	slog.Info("changing log level", "from", h.level.Level(), "to", level)
	h.level.Set(level)

	utils.RespondWithJSON(w, http.StatusOK, LogLevelResponse{Level: level.String()})
}
