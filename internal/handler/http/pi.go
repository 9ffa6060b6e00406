package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/report"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/middleware"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/response"
)

type PIHandler interface {
	UsersAttendance(w http.ResponseWriter, r *http.Request)
	SubmitData(w http.ResponseWriter, r *http.Request)
	Notifications(w http.ResponseWriter, r *http.Request)
	ModifyAttendance(w http.ResponseWriter, r *http.Request)
	ModifiedAttendanceFor(w http.ResponseWriter, r *http.Request)
	DeleteModifiedAttendance(w http.ResponseWriter, r *http.Request)
}

type piHandlerImpl struct {
	workflowService workflow.Service
	reportService   report.Service
}

func NewPIHandler(workflowService workflow.Service, reportService report.Service) PIHandler {
	return &piHandlerImpl{
		workflowService: workflowService,
		reportService:   reportService,
	}
}

func callerUsername(r *http.Request) (string, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok || identity.Username == "" {
		return "", false
	}
	return identity.Username, true
}

// UsersAttendance implements PIHandler.
func (h *piHandlerImpl) UsersAttendance(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	month, year, err := parsePeriod(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.StatsUnderPI(r.Context(), username, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitData implements PIHandler.
func (h *piHandlerImpl) SubmitData(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req workflow.SubmitDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workflowService.Submit(r.Context(), username, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance data submitted", result)
}

// Notifications implements PIHandler.
func (h *piHandlerImpl) Notifications(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.workflowService.Notifications(r.Context(), username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ModifyAttendance implements PIHandler.
func (h *piHandlerImpl) ModifyAttendance(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req workflow.ModifyAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workflowService.ModifyAttendance(r.Context(), username, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance adjustment recorded", result)
}

// ModifiedAttendanceFor implements PIHandler.
func (h *piHandlerImpl) ModifiedAttendanceFor(w http.ResponseWriter, r *http.Request) {
	employeeNumber := chi.URLParam(r, "employeeNumber")
	if employeeNumber == "" {
		response.BadRequest(w, "Employee number is required", nil)
		return
	}

	result, err := h.workflowService.ModifiedAttendanceFor(r.Context(), employeeNumber)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteModifiedAttendance implements PIHandler.
func (h *piHandlerImpl) DeleteModifiedAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Adjustment id must be a number", nil)
		return
	}

	if err := h.workflowService.DeleteModifiedAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance adjustment deleted", nil)
}
