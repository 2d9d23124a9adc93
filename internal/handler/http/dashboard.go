package http

import (
	"net/http"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the intern, project and attendance counts visible to the caller
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req := dashboard.DashboardRequest{
		Date: r.URL.Query().Get("date"), // format: YYYY-MM-DD, default: today
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
