package leave

import "time"

type LeaveType string

const (
	LeaveTypeSick   LeaveType = "Sick Leave"
	LeaveTypeCasual LeaveType = "Casual Leave"
)

func (t LeaveType) Valid() bool {
	return t == LeaveTypeSick || t == LeaveTypeCasual
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// PayType is nil on a request until it has been decided.
type PayType string

const (
	PayTypePaid   PayType = "paid"
	PayTypeUnpaid PayType = "unpaid"
)

func (p PayType) Valid() bool {
	return p == PayTypePaid || p == PayTypeUnpaid
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType

	// Inclusive span, both stored as calendar dates.
	StartDate time.Time
	EndDate   time.Time
	Days      int

	Reason    string
	AppliedOn time.Time

	Status       LeaveRequestStatus
	PayType      *PayType
	DecidedBy    *string
	DecidedAt    *time.Time
	PayTypeSetBy *string
	PayTypeSetAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}

func (r LeaveRequest) IsApproved() bool {
	return r.Status == LeaveRequestStatusApproved
}
