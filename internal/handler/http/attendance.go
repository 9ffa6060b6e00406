package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, reCheckIn, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCompleted) {
			// The stored record rides along with the conflict.
			response.ConflictWithData(w, "You have already completed your attendance for today", result)
			return
		}
		response.HandleError(w, err)
		return
	}

	if reCheckIn {
		response.SuccessWithMessage(w, "Check-in updated", result)
		return
	}
	response.Created(w, "Checked in", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req.EmployeeNumber)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeNumber := chi.URLParam(r, "employeeNumber")
	if employeeNumber == "" {
		response.BadRequest(w, "Employee number is required", nil)
		return
	}

	result, err := h.attendanceService.Today(r.Context(), employeeNumber)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	employeeNumber := chi.URLParam(r, "employeeNumber")
	if employeeNumber == "" {
		response.BadRequest(w, "Employee number is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(w, "Query parameter 'year' must be a valid year", nil)
		return
	}

	var month *int
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		m, err := strconv.Atoi(monthParam)
		if err != nil || m < 1 || m > 12 {
			response.BadRequest(w, "Query parameter 'month' must be between 1 and 12", nil)
			return
		}
		month = &m
	}

	result, err := h.attendanceService.Calendar(r.Context(), employeeNumber, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
