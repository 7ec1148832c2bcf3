package models

// NewsSection carries one independently loaded list of the news page.
type NewsSection[T any] struct {
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

// NewsPage is the public news & events view for one calendar month.
type NewsPage struct {
	Calendar      CalendarMonth             `json:"calendar"`
	CalendarError string                    `json:"calendar_error,omitempty"`
	Announcements NewsSection[Announcement] `json:"announcements"`
	Achievements  NewsSection[Achievement]  `json:"achievements"`
}

// ShortDate is the badge date shown on event cards.
type ShortDate struct {
	Day   string `json:"day"`
	Month string `json:"month"`
}

// DetailView is the modal content for a single public item.
type DetailView struct {
	Kind          string     `json:"kind"`
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	FormattedDate string     `json:"formatted_date"`
	ShortDate     *ShortDate `json:"short_date,omitempty"`
	Location      string     `json:"location,omitempty"`
	Time          string     `json:"time,omitempty"`
	Category      string     `json:"category,omitempty"`
	Paragraphs    []string   `json:"paragraphs"`
	HTML          string     `json:"html"`
}
