package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the combined counts visible to the principal in ctx
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}
