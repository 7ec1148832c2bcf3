package models

// DepartmentType separates teaching departments from offices.
type DepartmentType string

const (
	DepartmentAcademic       DepartmentType = "academic"
	DepartmentAdministrative DepartmentType = "administrative"
)

// Department is an academic department or administrative office.
type Department struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	DepartmentType DepartmentType `json:"department_type"`
	Description    string         `json:"description"`
	OfficeLocation string         `json:"office_location"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	HeadName       string         `json:"head_name"`
	HeadTitle      string         `json:"head_title"`
	IsActive       bool           `json:"is_active"`
	DisplayOrder   float64        `json:"display_order"`
}

// DepartmentPayload is the normalized write body.
type DepartmentPayload struct {
	Name           string  `json:"name" validate:"required"`
	DepartmentType string  `json:"department_type" validate:"oneof=academic administrative"`
	Description    string  `json:"description"`
	OfficeLocation string  `json:"office_location"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email" validate:"omitempty,email"`
	HeadName       string  `json:"head_name"`
	HeadTitle      string  `json:"head_title"`
	DisplayOrder   float64 `json:"display_order"`
	IsActive       bool    `json:"is_active"`
}

func (d Department) EntityID() int64 { return d.ID }

func (d Department) DisplayName() string { return firstNonEmpty(d.Name, "Item") }

func (d Department) TableCells() []string {
	kind := "Administrative"
	if d.DepartmentType == DepartmentAcademic {
		kind = "Academic"
	}
	return []string{
		orNA(d.Name),
		kind,
		orNA(d.HeadName),
		orNA(d.OfficeLocation),
		statusLabel(d.IsActive),
	}
}
