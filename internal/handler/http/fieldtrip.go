package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/fieldtrip"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/middleware"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/response"
)

type FieldTripHandler interface {
	Replace(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListByUsername(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	SweepExpired(w http.ResponseWriter, r *http.Request)
	ProcessAttendance(w http.ResponseWriter, r *http.Request)
}

type fieldTripHandlerImpl struct {
	fieldTripService fieldtrip.Service
}

func NewFieldTripHandler(fieldTripService fieldtrip.Service) FieldTripHandler {
	return &fieldTripHandlerImpl{
		fieldTripService: fieldTripService,
	}
}

// Replace implements FieldTripHandler.
func (h *fieldTripHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	var req fieldtrip.SetFieldTripsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := "system"
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		actor = identity.Username
	}

	result, err := h.fieldTripService.Replace(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Field trips replaced", result)
}

// ListByEmployee implements FieldTripHandler.
func (h *fieldTripHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeNumber := chi.URLParam(r, "employeeNumber")
	if employeeNumber == "" {
		response.BadRequest(w, "Employee number is required", nil)
		return
	}

	result, err := h.fieldTripService.ActiveByEmployee(r.Context(), employeeNumber)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByUsername implements FieldTripHandler.
func (h *fieldTripHandlerImpl) ListByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		response.BadRequest(w, "Username is required", nil)
		return
	}

	result, err := h.fieldTripService.ActiveByUsername(r.Context(), username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListActive implements FieldTripHandler.
func (h *fieldTripHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			response.BadRequest(w, "Query parameter 'date' must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	result, err := h.fieldTripService.ActiveOn(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements FieldTripHandler.
func (h *fieldTripHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	fieldTripKey := chi.URLParam(r, "fieldTripKey")
	if fieldTripKey == "" {
		response.BadRequest(w, "Field trip key is required", nil)
		return
	}

	var req fieldtrip.UpdateFieldTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.fieldTripService.UpdateTrip(r.Context(), fieldTripKey, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Field trip updated", result)
}

// Deactivate implements FieldTripHandler.
func (h *fieldTripHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	fieldTripKey := chi.URLParam(r, "fieldTripKey")
	if fieldTripKey == "" {
		response.BadRequest(w, "Field trip key is required", nil)
		return
	}

	if err := h.fieldTripService.Deactivate(r.Context(), fieldTripKey); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Field trip deactivated", nil)
}

// SweepExpired implements FieldTripHandler.
func (h *fieldTripHandlerImpl) SweepExpired(w http.ResponseWriter, r *http.Request) {
	result, err := h.fieldTripService.SweepExpired(r.Context(), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expired field trips deactivated", result)
}

// ProcessAttendance implements FieldTripHandler.
func (h *fieldTripHandlerImpl) ProcessAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.fieldTripService.AutoMarkAttendance(r.Context(), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Field trip attendance processed", result)
}
