package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/service/catalog"
)

type catalogService interface {
	Create(ctx context.Context, in catalog.Input) (domain.Service, error)
	Update(ctx context.Context, id uuid.UUID, in catalog.Input) (domain.Service, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServicesHandler struct {
	svc catalogService
	r   responder
}

func NewServicesHandler(svc catalogService, log *slog.Logger) *ServicesHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "http.services"))
	return &ServicesHandler{svc: svc, r: newResponder(log)}
}

type serviceRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	Description     string `json:"description"`
}

func (r serviceRequest) input() catalog.Input {
	return catalog.Input{
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
		Description:     r.Description,
	}
}

type serviceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	Description     string    `json:"description,omitempty"`
}

func toServiceResponse(s domain.Service) serviceResponse {
	return serviceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Description:     s.Description,
	}
}

func (h *ServicesHandler) Create(w http.ResponseWriter, req *http.Request) {
	var body serviceRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	svc, err := h.svc.Create(req.Context(), body.input())
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	h.r.writeJSON(w, http.StatusCreated, toServiceResponse(svc))
}

func (h *ServicesHandler) Update(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid service id.")
		return
	}

	var body serviceRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	svc, err := h.svc.Update(req.Context(), id, body.input())
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	h.r.writeJSON(w, http.StatusOK, toServiceResponse(svc))
}

func (h *ServicesHandler) Get(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid service id.")
		return
	}

	svc, err := h.svc.Get(req.Context(), id)
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	h.r.writeJSON(w, http.StatusOK, toServiceResponse(svc))
}

func (h *ServicesHandler) List(w http.ResponseWriter, req *http.Request) {
	services, err := h.svc.List(req.Context())
	if err != nil {
		h.r.writeServiceError(w, err)
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, toServiceResponse(svc))
	}
	h.r.writeJSON(w, http.StatusOK, out)
}

func (h *ServicesHandler) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		h.r.writeMessage(w, http.StatusBadRequest, "Invalid service id.")
		return
	}

	if err := h.svc.Delete(req.Context(), id); err != nil {
		h.r.writeServiceError(w, err)
		return
	}
	h.r.writeJSON(w, http.StatusNoContent, nil)
}
