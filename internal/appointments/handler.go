package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nexusdigital/agency-api/internal/api/respond"
	"github.com/nexusdigital/agency-api/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Book handles POST /api/appointments requests
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	appt, err := h.svc.Book(r.Context(), &req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.FieldErrors(w, "Please correct the highlighted fields", verr.Fields)
		case errors.Is(err, ErrSlotTaken):
			respond.Error(w, http.StatusConflict, "This time slot is already booked. Please select a different time.")
		default:
			h.logger.Error("failed to book appointment", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Failed to schedule appointment. Please try again later.")
		}
		return
	}

	respond.OK(w, http.StatusCreated,
		"Appointment scheduled successfully! We'll send you a confirmation email shortly.",
		map[string]int64{"id": appt.ID})
}

// Availability handles GET /api/appointments/availability/{date} requests
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	view, err := h.svc.Availability(r.Context(), date)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			respond.FieldErrors(w, "Invalid date", verr.Fields)
			return
		}
		h.logger.Error("failed to resolve availability", "error", err, "date", date)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve availability")
		return
	}

	respond.OK(w, http.StatusOK, "Available time slots retrieved successfully", view)
}

// List handles GET /api/appointments requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}
	respond.OK(w, http.StatusOK, "Appointments retrieved successfully", appts)
}

// Confirm handles PUT /api/appointments/{id}/confirm requests
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	if err := h.svc.Confirm(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Appointment not found")
			return
		}
		h.logger.Error("failed to confirm appointment", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to confirm appointment")
		return
	}

	respond.OK(w, http.StatusOK, "Appointment confirmed successfully", nil)
}

// Cancel handles PUT /api/appointments/{id}/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Appointment not found")
			return
		}
		h.logger.Error("failed to cancel appointment", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}

	respond.OK(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
