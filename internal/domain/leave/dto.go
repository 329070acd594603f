package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`

	start time.Time
	end   time.Time
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if !LeaveType(r.LeaveType).Valid() {
		errs.Add("leave_type", "leave_type must be one of: Sick Leave, Casual Leave")
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if okStart && okEnd {
		if _, err := CountDays(start, end); err != nil {
			errs.AddErr("end_date", err)
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	r.start, r.end = start, end
	return errs.Err()
}

// Span returns the parsed dates; valid only after Validate succeeded.
func (r *CreateLeaveRequestRequest) Span() (time.Time, time.Time) {
	return r.start, r.end
}

type ApproveLeaveRequestRequest struct {
	ID      string  `json:"-"`
	PayType *string `json:"pay_type,omitempty"`
}

func (r *ApproveLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.PayType != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.PayType))
		r.PayType = &normalized
		if !PayType(normalized).Valid() {
			errs.Add("pay_type", "pay_type must be one of: paid, unpaid")
		}
	}

	return errs.Err()
}

// RequestedPayType returns the optional pay type as a domain value.
func (r *ApproveLeaveRequestRequest) RequestedPayType() *PayType {
	if r.PayType == nil {
		return nil
	}
	p := PayType(*r.PayType)
	return &p
}

type SetPayTypeRequest struct {
	ID      string `json:"-"`
	PayType string `json:"pay_type"`
}

func (r *SetPayTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	r.PayType = strings.ToLower(strings.TrimSpace(r.PayType))
	if !PayType(r.PayType).Valid() {
		errs.Add("pay_type", "pay_type must be one of: paid, unpaid")
	}

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Department   *string `json:"department,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	PayType      *string `json:"pay_type"`
	AppliedOn    string  `json:"applied_on"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Department *string `json:"department,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD, requests ending on/after
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD, requests starting on/before

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.LeaveType != nil && !LeaveType(*f.LeaveType).Valid() {
		errs.Add("leave_type", "leave_type must be one of: Sick Leave, Casual Leave")
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{"pending", "approved", "rejected"}) {
		errs.Add("status", "status must be one of: pending, approved, rejected")
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

// ========================================
// BALANCE DTOs
// ========================================

type BalanceResponse struct {
	EmployeeID             string `json:"employee_id"`
	Year                   int    `json:"year"`
	Month                  int    `json:"month"`
	SickQuota              int    `json:"sick_quota"`
	SickTakenThisYear      int    `json:"sick_taken_this_year"`
	SickRemaining          int    `json:"sick_remaining"`
	SickAvailableThisMonth bool   `json:"sick_available_this_month"`
	SickTakenThisMonth     int    `json:"sick_taken_this_month"`
	CasualTakenThisMonth   int    `json:"casual_taken_this_month"`
	ApprovedThisMonth      int    `json:"approved_this_month"`
	RejectedThisMonth      int    `json:"rejected_this_month"`
	PendingThisMonth       int    `json:"pending_this_month"`
}
