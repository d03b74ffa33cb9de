// Package rest provides HTTP handlers for customer-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	custerrors "github.com/abgdnv/customerhub/internal/customer/errors"
	"github.com/abgdnv/customerhub/internal/customer/service"
	"github.com/abgdnv/customerhub/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StatusNegativeCredit is the non-standard status code the API contract uses
// for negative credit amounts. Kept as-is for compatibility with existing
// clients; do not replace with 400.
const StatusNegativeCredit = 452

type Handler struct {
	service service.CustomerService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the customer API with the provided service.
func NewHandler(service service.CustomerService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the customer service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/sorted", h.SortByCredit)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
			r.Post("/credit", h.AddCredit)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// Create handles the creation of a new customer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var createDto service.CustomerCreateDto
	if !h.decodeBody(w, r, mLogger, &createDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create customer", "email", createDto.Email)
	created, err := h.service.Create(r.Context(), createDto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error creating customer")
		return
	}
	mLogger.InfoContext(r.Context(), "Customer created successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindAll retrieves a list of all customers.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all customers")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error retrieving customer list")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved customer list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// SortByCredit retrieves all customers ordered by available credit.
// The order query parameter accepts asc or desc and defaults to desc.
func (h *Handler) SortByCredit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	order := r.URL.Query().Get("order")
	mLogger.DebugContext(r.Context(), "Received request to sort customers by credit", "order", order)
	list, err := h.service.SortByAvailableCredit(r.Context(), order)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error sorting customers by credit")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a customer by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	mLogger.DebugContext(r.Context(), "Received request to find customer by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error retrieving customer")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Update applies a partial update to a customer.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	var updateDto service.CustomerUpdateDto
	if !h.decodeBody(w, r, mLogger, &updateDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update customer", "ID", id)
	updated, err := h.service.Update(r.Context(), id, updateDto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error updating customer")
		return
	}
	mLogger.InfoContext(r.Context(), "Customer updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// AddCredit adds a non-negative amount to a customer's available credit.
func (h *Handler) AddCredit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	var creditDto service.CreditDto
	if !h.decodeBody(w, r, mLogger, &creditDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to add credit", "ID", id, "amount", creditDto.Amount)
	updated, err := h.service.AddCredit(r.Context(), id, creditDto.Amount)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error adding credit")
		return
	}
	mLogger.InfoContext(r.Context(), "Credit added successfully", "ID", updated.ID, "availableCredit", updated.AvailableCredit)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a customer by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	mLogger.DebugContext(r.Context(), "Received request to delete customer", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "Error deleting customer")
		return
	}
	mLogger.InfoContext(r.Context(), "Customer deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeBody decodes the JSON request body into dst. A JSON value of the
// wrong type responds with the invalid-type diagnosis naming the field.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			logger.WarnContext(r.Context(), "Request body field has wrong type", "field", typeErr.Field, "received", typeErr.Value)
			web.RespondError(w, logger, http.StatusBadRequest,
				custerrors.InvalidType(typeErr.Field, typeErr.Type.String(), typeErr.Value).Error())
			return false
		}
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondServiceError maps a service error to its HTTP status. The mapping is
// exhaustive over the customer error taxonomy; anything unrecognized is a 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, logMsg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), logMsg, "error", err)
		web.RespondError(w, logger, status, "An unexpected error occurred")
		return
	}
	logger.WarnContext(r.Context(), logMsg, "status", status, "error", err)
	web.RespondError(w, logger, status, err.Error())
}

// statusFor translates a customer domain error into an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, custerrors.ErrInvalidType),
		errors.Is(err, custerrors.ErrEmptyName),
		errors.Is(err, custerrors.ErrNameTooShort),
		errors.Is(err, custerrors.ErrInvalidEmailFormat),
		errors.Is(err, custerrors.ErrInvalidSortOrder):
		return http.StatusBadRequest
	case errors.Is(err, custerrors.ErrEmailAlreadyInUse):
		return http.StatusConflict
	case errors.Is(err, custerrors.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, custerrors.ErrNegativeCreditAmount):
		return StatusNegativeCredit
	default:
		return http.StatusInternalServerError
	}
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
