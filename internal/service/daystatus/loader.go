// Package daystatus loads the holiday, leave and attendance facts of a window
// and resolves them per employee-day through calendar.Resolve.
package daystatus

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"golang.org/x/sync/errgroup"
)

type Loader struct {
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRequestRepository
	holidays    holiday.HolidayService
}

func NewLoader(attendances attendance.AttendanceRepository, leaves leave.LeaveRequestRepository, holidays holiday.HolidayService) *Loader {
	return &Loader{attendances: attendances, leaves: leaves, holidays: holidays}
}

// Facts is a fresh snapshot of every input for [From, To].
type Facts struct {
	From     time.Time
	To       time.Time
	Holidays holiday.Set
	// keyed by employee id
	Leaves  map[string][]leave.LeaveRequest
	Records map[string][]attendance.Attendance
}

// Load reads the three sources concurrently. Empty employeeIDs loads everyone.
func (l *Loader) Load(ctx context.Context, from, to time.Time, employeeIDs []string) (Facts, error) {
	from, to = dateutil.Date(from), dateutil.Date(to)
	facts := Facts{
		From:    from,
		To:      to,
		Leaves:  make(map[string][]leave.LeaveRequest),
		Records: make(map[string][]attendance.Attendance),
	}

	var (
		holidays holiday.Set
		leaves   []leave.LeaveRequest
		records  []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		set, err := l.holidays.HolidaySet(gCtx, from, to)
		if err != nil {
			return err
		}
		holidays = set
		return nil
	})

	g.Go(func() error {
		list, err := l.leaves.ListApproved(gCtx, from, to, employeeIDs)
		if err != nil {
			return fmt.Errorf("failed to list approved leave: %w", err)
		}
		leaves = list
		return nil
	})

	g.Go(func() error {
		list, err := l.attendances.ListBetween(gCtx, from, to, employeeIDs)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return Facts{}, err
	}

	facts.Holidays = holidays
	for _, r := range leaves {
		facts.Leaves[r.EmployeeID] = append(facts.Leaves[r.EmployeeID], r)
	}
	for _, a := range records {
		facts.Records[a.EmployeeID] = append(facts.Records[a.EmployeeID], a)
	}
	return facts, nil
}

// Sources returns the resolver inputs of one employee.
func (f Facts) Sources(employeeID string) calendar.Sources {
	src := calendar.Sources{
		Holidays: make(map[string]string, len(f.Holidays)),
		Records:  make(map[string]string),
	}
	for key, h := range f.Holidays {
		src.Holidays[key] = h.Name
	}
	for _, r := range f.Leaves[employeeID] {
		src.Leaves = append(src.Leaves, calendar.Span{Start: r.StartDate, End: r.EndDate})
	}
	for _, a := range f.Records[employeeID] {
		src.Records[dateutil.Format(a.Date)] = string(a.Status)
	}
	return src
}

// Resolve returns the status of one employee-day.
func (f Facts) Resolve(employeeID string, date time.Time) calendar.Resolution {
	return calendar.Resolve(f.Sources(employeeID).FactsFor(date))
}

// Record returns the attendance record of employeeID on date, if any.
func (f Facts) Record(employeeID string, date time.Time) *attendance.Attendance {
	key := dateutil.Format(date)
	for i := range f.Records[employeeID] {
		if dateutil.Format(f.Records[employeeID][i].Date) == key {
			return &f.Records[employeeID][i]
		}
	}
	return nil
}
