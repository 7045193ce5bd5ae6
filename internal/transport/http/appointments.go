package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/service/booking"
)

// localDatetime matches the value of an HTML datetime-local input, which is
// what the booking form submits.
const (
	localDatetime = "2006-01-02T15:04"
	localDate     = "2006-01-02"
)

type bookingService interface {
	Book(ctx context.Context, in booking.BookInput) (domain.Appointment, booking.Result, error)
	Reschedule(ctx context.Context, id uuid.UUID, newStart time.Time) (domain.Appointment, booking.Result, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (domain.Appointment, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (domain.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Events(ctx context.Context, windowStart, windowEnd time.Time) ([]booking.Event, error)
	AvailableSlots(ctx context.Context, day time.Time, serviceID uuid.UUID) ([]time.Time, error)
}

type AppointmentsHandler struct {
	svc bookingService
	r   responder
}

func NewAppointmentsHandler(svc bookingService, log *slog.Logger) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "http.appointments"))
	return &AppointmentsHandler{svc: svc, r: newResponder(log)}
}

type appointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	ClientID  string    `json:"client_id"`
	ServiceID uuid.UUID `json:"service_id"`
	StartTime string    `json:"start_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAppointmentResponse(a domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		ClientID:  a.ClientID,
		ServiceID: a.ServiceID,
		StartTime: a.StartTime.Format(time.RFC3339),
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type createAppointmentRequest struct {
	ClientID  string `json:"client_id"`
	ServiceID string `json:"service_id"`
	StartTime string `json:"start_time"`
	Notes     string `json:"notes"`
}

func (h *AppointmentsHandler) Create(w http.ResponseWriter, req *http.Request) {
	var body createAppointmentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	serviceID, err := uuid.Parse(body.ServiceID)
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid service_id.")
		return
	}
	start, ok := parseDatetime(body.StartTime)
	if !ok {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid start_time.")
		return
	}

	appt, res, err := h.svc.Book(req.Context(), booking.BookInput{
		ClientID:  body.ClientID,
		ServiceID: serviceID,
		StartTime: start,
		Notes:     body.Notes,
	})
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	if !res.Valid() {
		h.r.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: "Appointment is not valid.",
			Errors:  res.Errors,
		})
		return
	}

	h.r.writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
}

type updateAppointmentRequest struct {
	StartTime *string `json:"start_time"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

// Update applies a partial edit: a new time is revalidated end to end (the
// conflict scan excludes the appointment itself), a status change goes
// through the lifecycle path, notes are a plain rewrite.
func (h *AppointmentsHandler) Update(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid appointment id.")
		return
	}

	var body updateAppointmentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var appt domain.Appointment
	applied := false

	if body.StartTime != nil {
		start, ok := parseDatetime(*body.StartTime)
		if !ok {
			h.r.writeMessage(w, http.StatusBadRequest, "Invalid start_time.")
			return
		}
		var res booking.Result
		appt, res, err = h.svc.Reschedule(req.Context(), id, start)
		if err != nil {
			h.r.writeServiceError(w, err)
			return
		}
		if !res.Valid() {
			h.r.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Appointment is not valid.",
				Errors:  res.Errors,
			})
			return
		}
		applied = true
	}

	if body.Status != nil {
		status, err := domain.ParseAppointmentStatus(*body.Status)
		if err != nil {
			h.r.writeMessage(w, http.StatusBadRequest, "Invalid status.")
			return
		}
		appt, err = h.svc.UpdateStatus(req.Context(), id, status)
		if err != nil {
			h.r.writeServiceError(w, err)
			return
		}
		applied = true
	}

	if body.Notes != nil {
		appt, err = h.svc.UpdateNotes(req.Context(), id, *body.Notes)
		if err != nil {
			h.r.writeServiceError(w, err)
			return
		}
		applied = true
	}

	if !applied {
		h.r.writeMessage(w, http.StatusBadRequest, "Nothing to update.")
		return
	}

	h.r.writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
}

func (h *AppointmentsHandler) Get(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid appointment id.")
		return
	}

	appt, err := h.svc.Get(req.Context(), id)
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	h.r.writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
}

func (h *AppointmentsHandler) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid appointment id.")
		return
	}

	if err := h.svc.Delete(req.Context(), id); err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	h.r.writeJSON(w, http.StatusNoContent, nil)
}

type eventResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	ServiceID uuid.UUID `json:"service_id"`
}

// Events serves the calendar feed for [from, to] as whole days.
func (h *AppointmentsHandler) Events(w http.ResponseWriter, req *http.Request) {
	from, ok := parseDate(req.URL.Query().Get("from"))
	if !ok {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid or missing from date.")
		return
	}
	to, ok := parseDate(req.URL.Query().Get("to"))
	if !ok {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid or missing to date.")
		return
	}

	events, err := h.svc.Events(req.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, eventResponse{
			ID:        ev.ID,
			Title:     ev.Title,
			Start:     ev.Start,
			End:       ev.End,
			Status:    string(ev.Status),
			Notes:     ev.Notes,
			ServiceID: ev.ServiceID,
		})
	}
	h.r.writeJSON(w, http.StatusOK, out)
}

type slotResponse struct {
	Datetime    string `json:"datetime"`
	Display     string `json:"display"`
	DisplayLong string `json:"displayLong"`
}

// Slots lists the bookable start times for a service on a date. An unknown
// service or a fully booked day is an empty list, never an error.
func (h *AppointmentsHandler) Slots(w http.ResponseWriter, req *http.Request) {
	day, ok := parseDate(req.URL.Query().Get("date"))
	if !ok {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid or missing date.")
		return
	}
	serviceID, err := uuid.Parse(req.URL.Query().Get("service_id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid or missing service_id.")
		return
	}

	slots, err := h.svc.AvailableSlots(req.Context(), day, serviceID)
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slotResponse{
			Datetime:    slot.Format(localDatetime),
			Display:     slot.Format("3:04 PM"),
			DisplayLong: slot.Format("Monday, January 02 at 3:04 PM"),
		})
	}
	h.r.writeJSON(w, http.StatusOK, out)
}

func parseDatetime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(localDatetime, s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(localDate, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
