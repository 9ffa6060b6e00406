package http

import (
	"net/http"
	"strconv"

	"github.com/sumitRND/PresenceBackend/internal/domain/calendar"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/response"
)

type CalendarHandler interface {
	Entries(w http.ResponseWriter, r *http.Request)
	Holidays(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.Service
}

func NewCalendarHandler(calendarService calendar.Service) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// Entries implements CalendarHandler.
func (h *calendarHandlerImpl) Entries(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a valid year", nil)
		return
	}

	var month *int
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		m, err := strconv.Atoi(monthParam)
		if err != nil {
			response.BadRequest(w, "Query parameter 'month' must be a number", nil)
			return
		}
		month = &m
	}

	result, err := h.calendarService.Entries(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Holidays implements CalendarHandler.
func (h *calendarHandlerImpl) Holidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a valid year", nil)
		return
	}

	result, err := h.calendarService.Holidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
