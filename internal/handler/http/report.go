package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	GetMyReport(w http.ResponseWriter, r *http.Request)
	GetCompanyReport(w http.ResponseWriter, r *http.Request)
	ExportCompanyReport(w http.ResponseWriter, r *http.Request)
	GetDailyReport(w http.ResponseWriter, r *http.Request)
	GetEmployeeReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	location      *time.Location
}

func NewReportHandler(reportService report.ReportService, location *time.Location) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		location:      location,
	}
}

// periodRequest reads from/to, or year/month defaulting to the current month.
func (h *reportHandlerImpl) periodRequest(r *http.Request) report.PeriodRequest {
	req := report.PeriodRequest{
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
		Department: optionalQuery(r, "department"),
	}
	req.Year, req.Month = monthQuery(r, h.location)
	return req
}

// GetMyReport implements ReportHandler.
func (h *reportHandlerImpl) GetMyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.MyReport(r.Context(), h.periodRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCompanyReport implements ReportHandler.
func (h *reportHandlerImpl) GetCompanyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.CompanyReport(r.Context(), h.periodRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCompanyReport implements ReportHandler.
func (h *reportHandlerImpl) ExportCompanyReport(w http.ResponseWriter, r *http.Request) {
	req := h.periodRequest(r)

	// Buffer so a failed export still gets a JSON error response.
	var buf bytes.Buffer
	if err := h.reportService.ExportCompanyReport(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-report-%04d-%02d.xlsx", req.Year, req.Month)
	if req.From != "" {
		filename = fmt.Sprintf("attendance-report-%s-to-%s.xlsx", req.From, req.To)
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetDailyReport implements ReportHandler.
func (h *reportHandlerImpl) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{
		Date:       r.URL.Query().Get("date"),
		Department: optionalQuery(r, "department"),
	}
	if req.Date == "" {
		req.Date = time.Now().In(h.location).Format("2006-01-02")
	}

	result, err := h.reportService.DailyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeReport implements ReportHandler.
func (h *reportHandlerImpl) GetEmployeeReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.reportService.EmployeeReport(r.Context(), employeeID, h.periodRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
