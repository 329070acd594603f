package report

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	employeesSheet   = "Employees"
	departmentsSheet = "Departments"
)

var employeeColumns = []string{
	"Code", "Name", "Department", "Position",
	"Present", "Late", "Leave", "Absent",
	"Avg Work Hours", "Attendance %", "Badge",
}

// ExportCompanyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportCompanyReport(ctx context.Context, req report.PeriodRequest, w io.Writer) error {
	rep, err := s.CompanyReport(ctx, req)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	f.SetCellValue(employeesSheet, "A1", fmt.Sprintf("Attendance Report %s to %s", rep.Period.From, rep.Period.To))
	f.SetCellValue(employeesSheet, "A2", fmt.Sprintf("Absences counted through %s", rep.Period.AsOf))

	for i, h := range employeeColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(employeesSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(employeeColumns), 4)
	f.SetCellStyle(employeesSheet, "A4", last, headerStyle)

	for i, r := range rep.Employees {
		values := []any{
			r.EmployeeCode, r.EmployeeName, r.Department, r.Position,
			r.Present, r.Late, r.Leave, r.Absent,
			r.AverageWorkHours, r.AttendancePercentage, string(r.Badge),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+5)
		if err := f.SetSheetRow(employeesSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	f.SetColWidth(employeesSheet, "A", "A", 12)
	f.SetColWidth(employeesSheet, "B", "D", 24)
	f.SetColWidth(employeesSheet, "E", "K", 14)

	if _, err := f.NewSheet(departmentsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetSheetRow(departmentsSheet, "A1", &[]any{"Department", "Employees", "Average Attendance %"})
	f.SetCellStyle(departmentsSheet, "A1", "C1", headerStyle)
	for i, d := range rep.Departments {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(departmentsSheet, cell, &[]any{d.Department, d.Employees, d.AverageAttendance})
	}
	f.SetColWidth(departmentsSheet, "A", "C", 22)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
