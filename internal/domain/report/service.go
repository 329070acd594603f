package report

import (
	"context"
	"io"
)

// ReportService recomputes every report from attendance, leave and holiday facts.
type ReportService interface {
	CompanyReport(ctx context.Context, req PeriodRequest) (CompanyReport, error)
	EmployeeReport(ctx context.Context, employeeID string, req PeriodRequest) (EmployeeReport, error)
	// MyReport is EmployeeReport for the authenticated employee.
	MyReport(ctx context.Context, req PeriodRequest) (EmployeeReport, error)
	DailyReport(ctx context.Context, req DailyReportRequest) (DailyReport, error)
	// ExportCompanyReport writes the company report as an xlsx workbook.
	ExportCompanyReport(ctx context.Context, req PeriodRequest, w io.Writer) error
}
