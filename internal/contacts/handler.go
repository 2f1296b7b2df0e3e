package contacts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nexusdigital/agency-api/internal/api/respond"
	"github.com/nexusdigital/agency-api/pkg/logging"
)

// Handler handles HTTP requests for contact submissions
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new contacts handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Submit handles POST /api/contacts requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode contact request", "error", err)
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Submit(r.Context(), &req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			respond.FieldErrors(w, "Please correct the highlighted fields", verr.Fields)
			return
		}
		h.logger.Error("failed to store contact", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to submit contact form. Please try again later.")
		return
	}

	respond.OK(w, http.StatusCreated,
		"Contact form submitted successfully! We'll get back to you soon.",
		map[string]int64{"id": c.ID})
}

// List handles GET /api/contacts requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list contacts", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}
	respond.OK(w, http.StatusOK, "Contacts retrieved successfully", out)
}

// Get handles GET /api/contacts/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Contact not found")
			return
		}
		h.logger.Error("failed to fetch contact", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve contact")
		return
	}

	respond.OK(w, http.StatusOK, "Contact retrieved successfully", c)
}

// MarkRead handles PUT /api/contacts/{id}/read requests
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Contact not found")
			return
		}
		h.logger.Error("failed to mark contact read", "error", err, "id", id)
		respond.Error(w, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	respond.OK(w, http.StatusOK, "Contact marked as read", nil)
}
