package models

// PositionType classifies staff members.
type PositionType string

const (
	PositionFaculty        PositionType = "faculty"
	PositionAdministrative PositionType = "administrative"
	PositionSupport        PositionType = "support"
)

// Personnel is a staff member attached to a department. FullName and DepartmentName are
// derived upstream.
type Personnel struct {
	ID             int64        `json:"id"`
	FirstName      string       `json:"first_name"`
	MiddleName     string       `json:"middle_name"`
	LastName       string       `json:"last_name"`
	FullName       string       `json:"full_name"`
	DepartmentID   *int64       `json:"department_id"`
	DepartmentName string       `json:"department_name"`
	PositionType   PositionType `json:"position_type"`
	Title          string       `json:"title"`
	Specialization string       `json:"specialization"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	OfficeLocation string       `json:"office_location"`
	Bio            string       `json:"bio"`
	Qualifications string       `json:"qualifications"`
	IsActive       bool         `json:"is_active"`
	DisplayOrder   float64      `json:"display_order"`
}

func (p Personnel) EntityID() int64 { return p.ID }

func (p Personnel) DisplayName() string {
	return firstNonEmpty(p.FullName, joinName(p.FirstName, p.LastName), "Item")
}

func (p Personnel) TableCells() []string {
	var position string
	switch p.PositionType {
	case PositionFaculty:
		position = "Faculty"
	case PositionAdministrative:
		position = "Administrative"
	default:
		position = "Support"
	}
	return []string{
		orNA(p.FullName),
		orNA(p.DepartmentName),
		orNA(p.Title),
		position,
		statusLabel(p.IsActive),
	}
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
