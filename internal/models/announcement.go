package models

// Announcement is a dated notice published on the news page.
type Announcement struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Date         string  `json:"date"`
	Body         string  `json:"body"`
	Details      string  `json:"details"`
	IsActive     bool    `json:"is_active"`
	DisplayOrder float64 `json:"display_order"`
}

func (a Announcement) EntityID() int64 { return a.ID }

func (a Announcement) DisplayName() string { return firstNonEmpty(a.Title, "Item") }

func (a Announcement) TableCells() []string {
	return []string{
		orNA(a.Title),
		orNA(a.Date),
		statusLabel(a.IsActive),
	}
}
