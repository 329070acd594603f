package leave

import "errors"

var (
	ErrLeaveRequestNotFound           = errors.New("leave request not found")
	ErrInvalidDateRange               = errors.New("end date must not be before start date")
	ErrLeaveSpanTooLong               = errors.New("leave must not span more than 366 days")
	ErrSickLeaveAlreadyTakenThisMonth = errors.New("sick leave has already been taken this month")
	ErrLeaveRequestAlreadyProcessed   = errors.New("leave request already processed")
	ErrPayTypeNotApplicable           = errors.New("pay type can only be set on casual leave")
	ErrPayTypeOnRejectedLeave         = errors.New("pay type cannot be set on a rejected leave request")
)
