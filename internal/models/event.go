package models

// Event is a dated campus activity shown on the public calendar.
type Event struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Details       string  `json:"details"`
	EventDate     string  `json:"event_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Location      string  `json:"location"`
	FormattedTime string  `json:"formatted_time,omitempty"`
	Image         *string `json:"image,omitempty"`
	IsActive      bool    `json:"is_active"`
	DisplayOrder  float64 `json:"display_order"`
}

func (e Event) EntityID() int64 { return e.ID }

func (e Event) DisplayName() string { return firstNonEmpty(e.Title, "Item") }

func (e Event) TableCells() []string {
	location := e.Location
	if location == "" {
		location = "TBA"
	}
	return []string{
		orNA(e.Title),
		orNA(e.EventDate),
		orNA(e.StartTime) + " - " + orNA(e.EndTime),
		location,
		statusLabel(e.IsActive),
	}
}
