package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

func clockPtr(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format("03:04 PM")
	return &s
}

// ToResponse renders a record with timestamps in loc.
func ToResponse(a Attendance, loc *time.Location) AttendanceResponse {
	if loc == nil {
		loc = time.UTC
	}
	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		EmployeeCode:   a.EmployeeCode,
		Department:     a.Department,
		Date:           dateutil.Format(a.Date),
		PunchIn:        a.PunchIn.In(loc).Format(time.RFC3339),
		PunchOut:       timePtrToString(a.PunchOut, loc),
		PunchInTime:    a.PunchIn.In(loc).Format("03:04 PM"),
		PunchOutTime:   clockPtr(a.PunchOut, loc),
		State:          string(StateOf(&a)),
		Status:         string(a.Status),
		WorkMode:       string(a.WorkMode),
		ApprovalStatus: string(a.ApprovalStatus),
		WorkHours:      a.WorkHours,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		HomeReached:    a.HomeReached,
		HomeReachedAt:  timePtrToString(a.HomeReachedAt, loc),
		AutoClosed:     a.AutoClosed,
		ApprovedBy:     a.ApprovedBy,
		ApprovedAt:     timePtrToString(a.ApprovedAt, loc),
		LateApprovedBy: a.LateApprovedBy,
		LateApprovedAt: timePtrToString(a.LateApprovedAt, loc),
	}
	if a.LateApprovalStatus != nil {
		s := string(*a.LateApprovalStatus)
		resp.LateApprovalStatus = &s
	}
	return resp
}

// NewListResponse builds a paginated response for filter.
func NewListResponse(records []Attendance, total int64, filter AttendanceFilter, loc *time.Location) ListAttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, ToResponse(a, loc))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}
