package dto

import "github.com/noah-isme/print-request-api/internal/models"

// DashboardSearchRequest updates the search box of a dashboard session.
type DashboardSearchRequest struct {
	Query string `json:"query"`
}

// DashboardState is what the staff dashboard shows right now.
type DashboardState struct {
	SessionID string               `json:"sessionId"`
	Search    string               `json:"search"`
	Selected  *models.PrintRequest `json:"selected,omitempty"`
	Message   string               `json:"message,omitempty"`
}
