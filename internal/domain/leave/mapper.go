package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		Department:   r.Department,
		LeaveType:    string(r.LeaveType),
		StartDate:    dateutil.Format(r.StartDate),
		EndDate:      dateutil.Format(r.EndDate),
		Days:         r.Days,
		Reason:       r.Reason,
		Status:       string(r.Status),
		AppliedOn:    dateutil.Format(r.AppliedOn),
		DecidedBy:    r.DecidedBy,
	}
	if r.PayType != nil {
		p := string(*r.PayType)
		resp.PayType = &p
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}

func NewListResponse(requests []LeaveRequest, total int64, filter LeaveRequestFilter) ListLeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToResponse(r))
	}
	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}
	return ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   out,
	}
}
