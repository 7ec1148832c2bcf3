package models

// Achievement is an award or press release.
type Achievement struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Details         string  `json:"details"`
	AchievementDate string  `json:"achievement_date"`
	Category        string  `json:"category"`
	FormattedDate   string  `json:"formatted_date,omitempty"`
	IsActive        bool    `json:"is_active"`
	DisplayOrder    float64 `json:"display_order"`
}

func (a Achievement) EntityID() int64 { return a.ID }

func (a Achievement) DisplayName() string { return firstNonEmpty(a.Title, "Item") }

func (a Achievement) TableCells() []string {
	return []string{
		orNA(a.Title),
		orNA(a.AchievementDate),
		orNA(a.Category),
		statusLabel(a.IsActive),
	}
}
