package employee_dashboard

import "context"

// EmployeeDashboardService defines the interface for employee dashboard operations
type EmployeeDashboardService interface {
	// GetDashboard returns today's punch state, the month report, the leave
	// balance and the work hours of the requested week.
	GetDashboard(ctx context.Context, req DashboardRequest) (EmployeeDashboardResponse, error)

	GetWorkHoursChart(ctx context.Context, req DashboardRequest) (WorkHoursChartResponse, error)
}
