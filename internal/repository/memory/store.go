// Package memory is an in-process store with the same conditional-update
// semantics as the postgresql repositories. It backs tests and DB_DRIVER=memory.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

type Store struct {
	mu          sync.RWMutex
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	// employeeID|date -> attendance id, mirrors UNIQUE(employee_id, date)
	attendanceIdx map[string]string
	leaves        map[string]leave.LeaveRequest
	holidays      map[string]holiday.Holiday
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:     make(map[string]employee.Employee),
		attendances:   make(map[string]attendance.Attendance),
		attendanceIdx: make(map[string]string),
		leaves:        make(map[string]leave.LeaveRequest),
		holidays:      make(map[string]holiday.Holiday),
		now:           time.Now,
	}
}

// AddEmployee upserts a directory entry.
func (s *Store) AddEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	s.employees[e.ID] = e
}

// AddHoliday upserts a company holiday.
func (s *Store) AddHoliday(h holiday.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.Date = dateutil.Date(h.Date)
	if h.Source == "" {
		h.Source = holiday.SourceCompany
	}
	s.holidays[dateutil.Format(h.Date)] = h
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + dateutil.Format(date)
}

// joinAttendance fills the DTO join fields; caller holds the lock.
func (s *Store) joinAttendance(a attendance.Attendance) attendance.Attendance {
	if e, ok := s.employees[a.EmployeeID]; ok {
		name, code, dept := e.FullName, e.Code, e.Department
		a.EmployeeName, a.EmployeeCode, a.Department = &name, &code, &dept
	}
	return a
}

func (s *Store) joinLeave(r leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := s.employees[r.EmployeeID]; ok {
		name, code, dept := e.FullName, e.Code, e.Department
		r.EmployeeName, r.EmployeeCode, r.Department = &name, &code, &dept
	}
	return r
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
