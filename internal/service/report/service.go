package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/daystatus"
)

type ReportServiceImpl struct {
	employee.EmployeeRepository
	facts    *daystatus.Loader
	location *time.Location
	now      func() time.Time
}

func NewReportService(employeeRepo employee.EmployeeRepository, facts *daystatus.Loader, location *time.Location) *ReportServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		EmployeeRepository: employeeRepo,
		facts:              facts,
		location:           location,
		now:                time.Now,
	}
}

var _ report.ReportService = (*ReportServiceImpl)(nil)

type window struct {
	from, to, asOf time.Time
}

func (w window) period() report.Period {
	return report.Period{From: dateutil.Format(w.from), To: dateutil.Format(w.to), AsOf: dateutil.Format(w.asOf)}
}

// window resolves the request into dates. Absences are only counted up to
// today, so asOf is the earlier of to and today.
func (s *ReportServiceImpl) window(req report.PeriodRequest) window {
	var w window
	if req.From != "" {
		w.from, _ = dateutil.Parse(req.From)
		w.to, _ = dateutil.Parse(req.To)
	} else {
		w.from, w.to = dateutil.MonthRange(req.Year, time.Month(req.Month))
	}
	w.asOf = w.to
	if today := dateutil.In(s.now(), s.location); today.Before(w.asOf) {
		w.asOf = today
	}
	return w
}

func (s *ReportServiceImpl) generatedAt() string {
	return s.now().In(s.location).Format(time.RFC3339)
}

// rows builds one EmployeeRow per employee from a single facts snapshot.
func (s *ReportServiceImpl) rows(ctx context.Context, employees []employee.Employee, w window) ([]report.EmployeeRow, []float64, error) {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	facts, err := s.facts.Load(ctx, w.from, w.to, ids)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.EmployeeRow, 0, len(employees))
	var allHours []float64
	for _, e := range employees {
		src := facts.Sources(e.ID)

		var counts report.Counts
		dateutil.EachDay(w.from, w.to, func(d time.Time) {
			counts.Add(calendar.Resolve(src.FactsFor(d)), d, w.asOf)
		})

		var hours []float64
		for _, a := range facts.Records[e.ID] {
			if a.WorkHours != nil {
				hours = append(hours, *a.WorkHours)
			}
		}
		allHours = append(allHours, hours...)

		pct := counts.AttendancePercentage()
		row := report.EmployeeRow{
			EmployeeID:           e.ID,
			EmployeeName:         e.FullName,
			EmployeeCode:         e.Code,
			Department:           e.Department,
			Counts:               counts,
			AverageWorkHours:     report.AverageWorkHours(hours),
			AttendancePercentage: pct,
			Badge:                report.BadgeFor(pct),
		}
		if e.Position != nil {
			row.Position = *e.Position
		}
		rows = append(rows, row)
	}
	return rows, allHours, nil
}

// CompanyReport implements report.ReportService.
func (s *ReportServiceImpl) CompanyReport(ctx context.Context, req report.PeriodRequest) (report.CompanyReport, error) {
	if err := req.Validate(); err != nil {
		return report.CompanyReport{}, err
	}
	if err := s.require(ctx, user.PermissionReportsView); err != nil {
		return report.CompanyReport{}, err
	}

	employees, err := s.EmployeeRepository.List(ctx, employee.Filter{Department: req.Department, ActiveOnly: true})
	if err != nil {
		return report.CompanyReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	w := s.window(req)
	rows, hours, err := s.rows(ctx, employees, w)
	if err != nil {
		return report.CompanyReport{}, err
	}

	pcts := make([]float64, 0, len(rows))
	overall := report.Overall{TotalEmployees: len(rows)}
	for _, r := range rows {
		pcts = append(pcts, r.AttendancePercentage)
		overall.TotalPresentDays += r.Attended()
	}
	overall.AverageAttendance = report.Mean(pcts)
	overall.AverageWorkHours = report.AverageWorkHours(hours)

	return report.CompanyReport{
		Period:       w.period(),
		GeneratedAt:  s.generatedAt(),
		Overall:      overall,
		Departments:  report.DepartmentAverages(rows),
		Distribution: report.Distribute(pcts),
		Employees:    rows,
	}, nil
}

// EmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context, employeeID string, req report.PeriodRequest) (report.EmployeeReport, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return report.EmployeeReport{}, err
	}
	if employeeID != actor.EmployeeID {
		if err := actor.Require(user.PermissionReportsView); err != nil {
			return report.EmployeeReport{}, err
		}
	}
	return s.employeeReport(ctx, employeeID, req)
}

// MyReport implements report.ReportService.
func (s *ReportServiceImpl) MyReport(ctx context.Context, req report.PeriodRequest) (report.EmployeeReport, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return report.EmployeeReport{}, err
	}
	if err := actor.Require(user.PermissionReportsViewOwn); err != nil {
		return report.EmployeeReport{}, err
	}
	return s.employeeReport(ctx, actor.EmployeeID, req)
}

func (s *ReportServiceImpl) employeeReport(ctx context.Context, employeeID string, req report.PeriodRequest) (report.EmployeeReport, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeReport{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.EmployeeReport{}, err
		}
		return report.EmployeeReport{}, fmt.Errorf("failed to get employee: %w", err)
	}

	w := s.window(req)
	rows, _, err := s.rows(ctx, []employee.Employee{emp}, w)
	if err != nil {
		return report.EmployeeReport{}, err
	}

	return report.EmployeeReport{
		Period:      w.period(),
		GeneratedAt: s.generatedAt(),
		Employee:    rows[0],
	}, nil
}

// DailyReport implements report.ReportService.
func (s *ReportServiceImpl) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReport{}, err
	}
	if err := s.require(ctx, user.PermissionReportsView); err != nil {
		return report.DailyReport{}, err
	}

	date, _ := dateutil.Parse(req.Date)
	employees, err := s.EmployeeRepository.List(ctx, employee.Filter{Department: req.Department, ActiveOnly: true})
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	facts, err := s.facts.Load(ctx, date, date, ids)
	if err != nil {
		return report.DailyReport{}, err
	}

	out := report.DailyReport{
		Date: req.Date,
		Rows: make([]report.DailyRow, 0, len(employees)),
	}
	if h, ok := facts.Holidays[req.Date]; ok {
		name := h.Name
		out.Holiday = &name
	}

	elapsed := !date.After(dateutil.In(s.now(), s.location))
	for _, e := range employees {
		res := facts.Resolve(e.ID, date)
		status := string(res.Fact())
		if res.Defaulted && elapsed {
			status = "absent"
		}

		switch status {
		case string(calendar.StatusPresent):
			out.Summary.Present++
		case string(calendar.StatusLate):
			out.Summary.Late++
		case string(calendar.StatusLeave):
			out.Summary.Leave++
		case "absent":
			out.Summary.Absent++
		}

		row := report.DailyRow{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName,
			EmployeeCode: e.Code,
			Department:   e.Department,
			Gender:       string(e.Gender),
			Status:       status,
		}
		if rec := facts.Record(e.ID, date); rec != nil {
			s.fillRecord(&row, *rec, e)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (s *ReportServiceImpl) fillRecord(row *report.DailyRow, a attendance.Attendance, e employee.Employee) {
	mode := string(a.WorkMode)
	in := a.PunchIn.In(s.location).Format("03:04 PM")
	row.WorkMode = &mode
	row.PunchIn = &in
	if a.PunchOut != nil {
		out := a.PunchOut.In(s.location).Format("03:04 PM")
		row.PunchOut = &out
	}
	row.WorkHours = a.WorkHours
	if e.IsFemale() {
		reached := a.HomeReached
		row.HomeReached = &reached
		if a.HomeReachedAt != nil {
			at := a.HomeReachedAt.In(s.location).Format("03:04 PM")
			row.HomeReachedAt = &at
		}
	}
}

func (s *ReportServiceImpl) require(ctx context.Context, permission user.Permission) error {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	return actor.Require(permission)
}
