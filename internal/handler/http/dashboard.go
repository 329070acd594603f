package http

import (
	"net/http"

	empDashboard "github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetMyDashboard(w http.ResponseWriter, r *http.Request)
	GetMyWorkHours(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService empDashboard.EmployeeDashboardService
}

func NewDashboardHandler(dashboardService empDashboard.EmployeeDashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetMyDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) GetMyDashboard(w http.ResponseWriter, r *http.Request) {
	req := empDashboard.DashboardRequest{Date: r.URL.Query().Get("date")}

	result, err := h.dashboardService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMyWorkHours implements DashboardHandler.
func (h *dashboardHandlerImpl) GetMyWorkHours(w http.ResponseWriter, r *http.Request) {
	req := empDashboard.DashboardRequest{Date: r.URL.Query().Get("date")}

	result, err := h.dashboardService.GetWorkHoursChart(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
