package server

import (
	"encoding/json"
	"net/http"

	"PortfolioFM/apperr"
	"PortfolioFM/logger"
)

// errorResponse is the uniform error payload; Detail is always a
// human-readable string.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("[writeJSON] failed to encode response", logger.ErrorField(err))
	}
}

// writeError maps the error taxonomy to HTTP exactly once, for every handler.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.InvalidInput, apperr.Timeout:
		status = http.StatusBadRequest
	case apperr.Unauthorized:
		status = http.StatusUnauthorized
	case apperr.Unavailable:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		logger.Error("[writeError] internal error", logger.ErrorField(err))
	} else {
		logger.Warn("[writeError] request failed",
			logger.Int("status", status), logger.String("detail", apperr.Detail(err)))
	}

	writeJSON(w, status, errorResponse{Detail: apperr.Detail(err)})
}
