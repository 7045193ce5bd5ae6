package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bookline/backend/internal/service/booking"
	"bookline/backend/internal/service/catalog"
	"bookline/backend/internal/store"
)

type responder struct {
	log *slog.Logger
}

func newResponder(log *slog.Logger) responder {
	if log == nil {
		log = slog.Default()
	}
	return responder{log: log}
}

type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func (r responder) writeJSON(w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.log.Error("response encode failed", slog.Any("err", err))
	}
}

func (r responder) writeMessage(w http.ResponseWriter, status int, message string) {
	r.writeJSON(w, status, errorResponse{Message: message})
}

// writeServiceError maps the service-layer error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal failure and deliberately opaque.
func (r responder) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		r.writeMessage(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, store.ErrConflict):
		r.writeMessage(w, http.StatusConflict, "This time slot is already booked. Please select another time.")
	default:
		var bookingErr *booking.ValidationError
		if errors.As(err, &bookingErr) {
			r.writeMessage(w, http.StatusBadRequest, bookingErr.Error())
			return
		}
		var catalogErr *catalog.ValidationError
		if errors.As(err, &catalogErr) {
			r.writeMessage(w, http.StatusBadRequest, catalogErr.Error())
			return
		}
		r.log.Error("request failed", slog.Any("err", err))
		r.writeMessage(w, http.StatusInternalServerError, "Internal error.")
	}
}
