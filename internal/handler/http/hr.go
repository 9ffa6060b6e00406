package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/report"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/domain/workflow"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/response"
)

type HRHandler interface {
	ListPIs(w http.ResponseWriter, r *http.Request)
	RequestData(w http.ResponseWriter, r *http.Request)
	SubmissionStatus(w http.ResponseWriter, r *http.Request)
	DownloadReport(w http.ResponseWriter, r *http.Request)
	PIAttendance(w http.ResponseWriter, r *http.Request)
	PIDownload(w http.ResponseWriter, r *http.Request)
}

type hrHandlerImpl struct {
	workflowService workflow.Service
	reportService   report.Service
	directory       staff.Directory
}

func NewHRHandler(workflowService workflow.Service, reportService report.Service, directory staff.Directory) HRHandler {
	return &hrHandlerImpl{
		workflowService: workflowService,
		reportService:   reportService,
		directory:       directory,
	}
}

func parsePeriod(r *http.Request) (int, int, error) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12")
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, fmt.Errorf("year must be a valid year")
	}
	return month, year, nil
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListPIs implements HRHandler.
func (h *hrHandlerImpl) ListPIs(w http.ResponseWriter, r *http.Request) {
	result, err := h.directory.ListPIs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RequestData implements HRHandler.
func (h *hrHandlerImpl) RequestData(w http.ResponseWriter, r *http.Request) {
	var req workflow.RequestDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workflowService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Data requested", result)
}

// SubmissionStatus implements HRHandler.
func (h *hrHandlerImpl) SubmissionStatus(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.workflowService.SubmissionStatus(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadReport implements HRHandler.
func (h *hrHandlerImpl) DownloadReport(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	piParam := r.URL.Query().Get("piUsernames")
	if piParam == "" {
		response.BadRequest(w, "Query parameter 'piUsernames' is required", nil)
		return
	}
	piUsernames := strings.Split(piParam, ",")

	result, err := h.workflowService.Download(r.Context(), piUsernames, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.reportService.RenderCSV(result)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeCSV(w, fmt.Sprintf("attendance-report-%d-%02d.csv", year, month), data)
}

// PIAttendance implements HRHandler.
func (h *hrHandlerImpl) PIAttendance(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
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

// PIDownload implements HRHandler.
func (h *hrHandlerImpl) PIDownload(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	month, year, err := parsePeriod(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.workflowService.Download(r.Context(), []string{username}, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.reportService.RenderCSV(result)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeCSV(w, fmt.Sprintf("%s-attendance-%d-%02d.csv", username, year, month), data)
}
