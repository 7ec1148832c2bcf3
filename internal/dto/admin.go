package dto

import "github.com/noah-isme/campus-portal/internal/models"

// SelectTabRequest switches the active console tab.
type SelectTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// FormFieldsRequest merges field values into the open form.
type FormFieldsRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// FormState is the console form as seen by the front end.
type FormState struct {
	Open      bool     `json:"open"`
	Mode      string   `json:"mode,omitempty"`
	EditingID *int64   `json:"editing_id,omitempty"`
	Data      FormData `json:"data"`
}

// TableView is the rendered list of the active tab.
type TableView struct {
	Type    models.ResourceType `json:"type"`
	Label   string              `json:"label"`
	Headers []string            `json:"headers"`
	Rows    []TableRow          `json:"rows"`
}

// TableRow pairs a record id with its rendered cells.
type TableRow struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Cells []string `json:"cells"`
}

// DashboardCount is one summary card.
type DashboardCount struct {
	Type  models.ResourceType `json:"type"`
	Label string              `json:"label"`
	Count int                 `json:"count"`
}

// AdminState is a read-only snapshot of the console controller.
type AdminState struct {
	Phase       models.AuthPhase                        `json:"phase"`
	User        *models.AdminUser                       `json:"user"`
	ActiveTab   string                                  `json:"active_tab"`
	Loading     bool                                    `json:"loading"`
	Error       string                                  `json:"error,omitempty"`
	Form        FormState                               `json:"form"`
	Dashboard   []DashboardCount                        `json:"dashboard"`
	Collections map[models.ResourceType][]models.Entity `json:"collections,omitempty"`
	Table       *TableView                              `json:"table,omitempty"`
	Alerts      []models.Alert                          `json:"alerts"`
}

// LoginResponse returns the console token after a successful login.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expires_at"`
	User      *models.AdminUser `json:"user"`
	State     AdminState        `json:"state"`
}

// SessionResponse reports whether the console holds a live content API session.
// Tokens are only issued by a credentialed login.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// ActivityQuery filters the activity listing.
type ActivityQuery struct {
	Resource string `form:"resource"`
	Limit    int    `form:"limit"`
}

// NewsQuery selects the calendar month of the public news page.
type NewsQuery struct {
	Month string `form:"month"`
}
