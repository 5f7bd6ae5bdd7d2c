package health

import (
	"log/slog"
)

type (
	Handler struct {
		level *slog.LevelVar
	}

	LogLevelRequest struct {
		Level string `json:"level"`
	}

	LogLevelResponse struct {
		Level string `json:"level"`
	}
)
