package models

// ResourceType tags one of the content collections managed from the console.
type ResourceType string

const (
	ResourceAcademicPrograms ResourceType = "academic-programs"
	ResourceEvents           ResourceType = "events"
	ResourceAchievements     ResourceType = "achievements"
	ResourceAnnouncements    ResourceType = "announcements"
	ResourceDepartments      ResourceType = "departments"
	ResourcePersonnel        ResourceType = "personnel"
)

// TabDashboard is the summary tab; it has no collection behind it.
const TabDashboard = "dashboard"

// ResourceTypes lists every managed collection in navigation order.
var ResourceTypes = []ResourceType{
	ResourceAcademicPrograms,
	ResourceEvents,
	ResourceAchievements,
	ResourceAnnouncements,
	ResourceDepartments,
	ResourcePersonnel,
}

// Entity is a content record cached by the console. Identifiers are assigned upstream.
type Entity interface {
	EntityID() int64
	DisplayName() string
	TableCells() []string
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
