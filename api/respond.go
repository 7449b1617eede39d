package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogward/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError translates an error into the domain payload shape: a
// {status, message} body whose HTTP code comes from the ApiErr class.
// Unexpected errors are logged and reported as a generic 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, map[string]any{
			"status":  "error",
			"message": "an unexpected error occurred",
		})
		return
	}

	response := map[string]any{
		"status":  "error",
		"message": apiErr.Error(),
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}
	if apiErr.Cause != nil {
		r.logger.Error().Str("cause", apiErr.GetFullError()).Msg("request failed")
	}

	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// WriteValidationError writes a standardized validation error response
func (r Responder) WriteValidationError(w http.ResponseWriter, field string, message string) {
	w.WriteHeader(http.StatusBadRequest)
	r.WriteJSON(w, map[string]any{
		"status":  "error",
		"message": message,
		"field":   field,
	})
}
