package temperatures

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/KyleBrandon/safetemp/internal/sensor"
	"github.com/KyleBrandon/safetemp/pkg/utils"
)

func NewHandler(sensors sensor.Sensors) *Handler {
	return &Handler{
		sensors,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/temperatures", h.handlerTemperaturesGet)
	mux.HandleFunc("GET /v1/temperatures/convert", h.handlerConvertGet)
}

func (h *Handler) handlerTemperaturesGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerTemperaturesGet")

	tr := h.sensors.ReadTemperatures()

	results := make([]TemperatureReading, 0, len(tr))
	for _, t := range tr {
		results = append(results, convertFromSensorTemperatureReading(t))
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// handlerConvertGet converts ?value= from ?scale= into the other scale.
func (h *Handler) handlerConvertGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerConvertGet")

	query := r.URL.Query()

	scale := monitor.ParseScale(query.Get("scale"))
	if scale == monitor.ScaleUnknown {
		utils.RespondWithError(w, http.StatusBadRequest, "scale must be C or F", errors.New("unknown scale"))
		return
	}

	value, err := strconv.ParseFloat(query.Get("value"), 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "value must be a number", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ConversionResponse{
		Value:          value,
		Scale:          scale,
		Converted:      monitor.Convert(value, scale),
		ConvertedScale: scale.Other(),
	})
}

func convertFromSensorTemperatureReading(tr sensor.TemperatureReading) TemperatureReading {
	errorMessage := ""
	if tr.Err != nil {
		errorMessage = tr.Err.Error()
	}
	return TemperatureReading{
		Name:         tr.Name,
		Description:  tr.Description,
		Address:      tr.Address,
		TemperatureC: tr.TemperatureC,
		TemperatureF: tr.TemperatureF,
		Err:          errorMessage,
	}
}
