package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vibe-commerce/internal/model"

	"github.com/rs/zerolog"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing useful left to do.
		return
	}
}

// writeSuccess writes a success envelope with the given payload.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// writeError writes a failure envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeServiceError maps a service error to a response: domain errors keep
// their message and mapped status, anything else becomes a 500 with the
// given fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForCode(domainErr.Code), domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Message: fallback,
		Error:   "internal server error",
	})
}

// statusForCode maps domain error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInsufficientStock, model.ErrCodeEmptyCart:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound, model.ErrCodeCartNotFound, model.ErrCodeItemNotFound:
		return http.StatusNotFound
	case model.ErrCodeCartConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
