package models

// CalendarItem is one entry listed inside a day cell.
type CalendarItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

// CalendarDay is one cell of the month grid. Decorations are derived at build time.
type CalendarDay struct {
	Date                string         `json:"date"`
	Day                 int            `json:"day"`
	InMonth             bool           `json:"in_month"`
	IsToday             bool           `json:"is_today"`
	IsWeekend           bool           `json:"is_weekend"`
	IsDimmed            bool           `json:"is_dimmed"`
	Events              []CalendarItem `json:"events"`
	Announcements       []CalendarItem `json:"announcements"`
	EventMarkers        int            `json:"event_markers"`
	AnnouncementMarkers int            `json:"announcement_markers"`
	MoreEvents          int            `json:"more_events"`
	MoreAnnouncements   int            `json:"more_announcements"`
}

// CalendarMonth is a full-week grid covering one month.
type CalendarMonth struct {
	Cursor   string        `json:"cursor"`
	Label    string        `json:"label"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Weeks    int           `json:"weeks"`
	Weekdays []string      `json:"weekdays"`
	Days     []CalendarDay `json:"days"`
	Previous string        `json:"previous"`
	Next     string        `json:"next"`
	Today    string        `json:"today"`
}
