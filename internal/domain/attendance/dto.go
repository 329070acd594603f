package attendance

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchInRequest struct {
	WorkMode  string   `json:"work_mode"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	r.WorkMode = strings.ToLower(strings.TrimSpace(r.WorkMode))
	if validator.IsEmpty(r.WorkMode) {
		errs.Add("work_mode", "work_mode is required")
	} else if !WorkMode(r.WorkMode).Valid() {
		errs.Add("work_mode", "work_mode must be one of: office, wfh, outside")
	}

	if WorkMode(r.WorkMode) == WorkModeOffice && (r.Latitude == nil || r.Longitude == nil) {
		errs.Add("location", "latitude and longitude are required for office attendance")
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs.Add("location", "latitude and longitude must be provided together")
	}

	validateCoordinate(&errs, r.Latitude, r.Longitude)

	return errs.Err()
}

type ReachedHomeRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *ReachedHomeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	}
	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	}

	validateCoordinate(&errs, r.Latitude, r.Longitude)

	return errs.Err()
}

func validateCoordinate(errs *validator.ValidationErrors, lat, lon *float64) {
	if lat == nil || lon == nil {
		return
	}
	if geo.ValidCoordinate(*lat, *lon) {
		return
	}
	if *lat < -90 || *lat > 90 {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if *lon < -180 || *lon > 180 {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
}

type AttendanceResponse struct {
	ID                 string   `json:"id"`
	EmployeeID         string   `json:"employee_id"`
	EmployeeName       *string  `json:"employee_name,omitempty"`
	EmployeeCode       *string  `json:"employee_code,omitempty"`
	Department         *string  `json:"department,omitempty"`
	Date               string   `json:"date"`
	PunchIn            string   `json:"punch_in"`
	PunchOut           *string  `json:"punch_out,omitempty"`
	PunchInTime        string   `json:"punch_in_time"`
	PunchOutTime       *string  `json:"punch_out_time,omitempty"`
	State              string   `json:"state"`
	Status             string   `json:"status"`
	WorkMode           string   `json:"work_mode"`
	ApprovalStatus     string   `json:"approval_status"`
	LateApprovalStatus *string  `json:"late_approval_status"`
	WorkHours          *float64 `json:"work_hours"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	DistanceMeters     *float64 `json:"distance_meters,omitempty"`
	HomeReached        bool     `json:"home_reached"`
	HomeReachedAt      *string  `json:"home_reached_at,omitempty"`
	AutoClosed         bool     `json:"auto_closed"`
	ApprovedBy         *string  `json:"approved_by,omitempty"`
	ApprovedAt         *string  `json:"approved_at,omitempty"`
	LateApprovedBy     *string  `json:"late_approved_by,omitempty"`
	LateApprovedAt     *string  `json:"late_approved_at,omitempty"`
}

type TodayResponse struct {
	Date        string              `json:"date"`
	State       string              `json:"state"`
	CanPunchIn  bool                `json:"can_punch_in"`
	CanPunchOut bool                `json:"can_punch_out"`
	Attendance  *AttendanceResponse `json:"attendance,omitempty"`
	// AutoCloseAt is the local wall-clock time open punches are closed, empty when disabled.
	AutoCloseAt string `json:"auto_close_at,omitempty"`
}

// ========================================
// LIST DTOs
// ========================================

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID         *string `json:"employee_id,omitempty"`
	EmployeeName       *string `json:"employee_name,omitempty"`
	Department         *string `json:"department,omitempty"`
	Date               *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate          *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate            *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status             *string `json:"status,omitempty"`
	WorkMode           *string `json:"work_mode,omitempty"`
	ApprovalStatus     *string `json:"approval_status,omitempty"`
	LateApprovalStatus *string `json:"late_approval_status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, punch_in, punch_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{"present", "late"}) {
		errs.Add("status", "status must be one of: present, late")
	}
	if f.WorkMode != nil && !WorkMode(*f.WorkMode).Valid() {
		errs.Add("work_mode", "work_mode must be one of: office, wfh, outside")
	}
	if f.ApprovalStatus != nil && !validator.IsInSlice(*f.ApprovalStatus, []string{"approved", "pending", "rejected"}) {
		errs.Add("approval_status", "approval_status must be one of: approved, pending, rejected")
	}
	if f.LateApprovalStatus != nil && !validator.IsInSlice(*f.LateApprovalStatus, []string{"approved", "not_approved"}) {
		errs.Add("late_approval_status", "late_approval_status must be one of: approved, not_approved")
	}

	// Date validation
	dates := []struct {
		field string
		value *string
	}{{"date", f.Date}, {"start_date", f.StartDate}, {"end_date", f.EndDate}}
	for _, d := range dates {
		if d.value != nil && *d.value != "" {
			if _, valid := validator.IsValidDate(*d.value); !valid {
				errs.Add(d.field, d.field+" must be in YYYY-MM-DD format")
			}
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_name", "punch_in", "punch_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs.Add("sort_by", "sort_by must be one of: date, employee_name, punch_in, punch_out, status")
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	return errs.Err()
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// CALENDAR & SUMMARY DTOs
// ========================================

type MonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Year, r.Month) {
		errs.Add("month", "year and month must be a valid month between 2000 and 2100")
	}

	return errs.Err()
}

type LateSummaryResponse struct {
	EmployeeID      string `json:"employee_id"`
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	LateTotal       int    `json:"late_total"`
	LateApproved    int    `json:"late_approved"`
	LateNotApproved int    `json:"late_not_approved"`
	PresentDays     int    `json:"present_days"`
}
