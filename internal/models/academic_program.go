package models

import "strconv"

// AcademicProgram is a degree program offered by the college.
type AcademicProgram struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	ShortTitle       string  `json:"short_title"`
	ProgramType      string  `json:"program_type"`
	Description      string  `json:"description"`
	DurationYears    float64 `json:"duration_years"`
	TotalUnits       float64 `json:"total_units"`
	WithEnhancements float64 `json:"with_enhancements"`
	ProgramOverview  string  `json:"program_overview"`
	CoreCourses      string  `json:"core_courses"`
	CareerProspects  string  `json:"career_prospects"`
	IsActive         bool    `json:"is_active"`
	DisplayOrder     float64 `json:"display_order"`
}

func (p AcademicProgram) EntityID() int64 { return p.ID }

func (p AcademicProgram) DisplayName() string { return firstNonEmpty(p.Title, "Item") }

func (p AcademicProgram) TableCells() []string {
	return []string{
		orNA(p.Title),
		orNA(p.ShortTitle),
		strconv.FormatFloat(p.DurationYears, 'f', -1, 64),
		strconv.FormatFloat(p.TotalUnits, 'f', -1, 64),
		statusLabel(p.IsActive),
	}
}
