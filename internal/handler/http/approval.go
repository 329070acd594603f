package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ApprovalHandler interface {
	ListPendingWorkMode(w http.ResponseWriter, r *http.Request)
	ApproveWorkMode(w http.ResponseWriter, r *http.Request)
	RejectWorkMode(w http.ResponseWriter, r *http.Request)
	ListLate(w http.ResponseWriter, r *http.Request)
	ApproveLate(w http.ResponseWriter, r *http.Request)
	RejectLate(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService attendance.ApprovalService
}

func NewApprovalHandler(approvalService attendance.ApprovalService) ApprovalHandler {
	return &approvalHandlerImpl{approvalService: approvalService}
}

func decide(w http.ResponseWriter, r *http.Request, message string, fn func(ctx context.Context, id string) (attendance.AttendanceResponse, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// ListPendingWorkMode implements ApprovalHandler.
func (h *approvalHandlerImpl) ListPendingWorkMode(w http.ResponseWriter, r *http.Request) {
	results, err := h.approvalService.ListPendingWorkMode(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeAttendanceList(w, results)
}

// ApproveWorkMode implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveWorkMode(w http.ResponseWriter, r *http.Request) {
	decide(w, r, "Work mode approved", h.approvalService.ApproveWorkMode)
}

// RejectWorkMode implements ApprovalHandler.
func (h *approvalHandlerImpl) RejectWorkMode(w http.ResponseWriter, r *http.Request) {
	decide(w, r, "Work mode rejected", h.approvalService.RejectWorkMode)
}

// ListLate implements ApprovalHandler.
func (h *approvalHandlerImpl) ListLate(w http.ResponseWriter, r *http.Request) {
	results, err := h.approvalService.ListLateArrivals(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeAttendanceList(w, results)
}

// ApproveLate implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveLate(w http.ResponseWriter, r *http.Request) {
	decide(w, r, "Late arrival approved", h.approvalService.ApproveLate)
}

// RejectLate implements ApprovalHandler.
func (h *approvalHandlerImpl) RejectLate(w http.ResponseWriter, r *http.Request) {
	decide(w, r, "Late arrival not approved", h.approvalService.RejectLate)
}
