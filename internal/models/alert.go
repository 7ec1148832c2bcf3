package models

import "time"

// AlertType is the severity of an operator notification.
type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

// Alert is a transient notification that removes itself after Duration.
type Alert struct {
	ID         int64         `json:"id"`
	Type       AlertType     `json:"type"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Timestamp  time.Time     `json:"timestamp"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration"`
}
