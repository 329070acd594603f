package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
)

type WorkMode string

const (
	WorkModeOffice  WorkMode = "office"
	WorkModeWFH     WorkMode = "wfh"
	WorkModeOutside WorkMode = "outside"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeOffice, WorkModeWFH, WorkModeOutside:
		return true
	}
	return false
}

// RequiresApproval reports whether punches in this mode go through work-mode approval.
func (m WorkMode) RequiresApproval() bool {
	return m == WorkModeWFH || m == WorkModeOutside
}

type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalRejected ApprovalStatus = "rejected"
)

type LateApprovalStatus string

const (
	LateApproved    LateApprovalStatus = "approved"
	LateNotApproved LateApprovalStatus = "not_approved"
)

// PunchState is the lifecycle position of a single day's record.
type PunchState string

const (
	StateNoRecord   PunchState = "no_record"
	StatePunchedIn  PunchState = "punched_in"
	StatePunchedOut PunchState = "punched_out"
)

type Attendance struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	PunchIn            time.Time
	PunchOut           *time.Time
	Status             Status
	WorkMode           WorkMode
	ApprovalStatus     ApprovalStatus
	LateApprovalStatus *LateApprovalStatus
	WorkHours          *float64
	Latitude           *float64
	Longitude          *float64
	HomeReached        bool
	HomeReachedAt      *time.Time
	AutoClosed         bool
	ApprovedBy         *string
	ApprovedAt         *time.Time
	LateApprovedBy     *string
	LateApprovedAt     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}

// StateOf returns the punch state of a possibly missing record.
func StateOf(a *Attendance) PunchState {
	switch {
	case a == nil:
		return StateNoRecord
	case a.PunchOut == nil:
		return StatePunchedIn
	default:
		return StatePunchedOut
	}
}

func (a Attendance) IsLate() bool {
	return a.Status == StatusLate
}
