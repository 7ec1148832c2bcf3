package models

// RequirementGroup is the checklist for one enrollment category.
type RequirementGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// ProcessStep is one ordered step of the enrollment process.
type ProcessStep struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Note        string `json:"note,omitempty"`
}

// AdmissionsInfo is the admissions block of the institutional info endpoint.
type AdmissionsInfo struct {
	Requirements map[string]RequirementGroup `json:"requirements"`
	ProcessSteps []ProcessStep               `json:"process_steps"`
	Notes        []string                    `json:"notes"`
}

// AdmissionsCategory is one selectable requirements tab.
type AdmissionsCategory struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// AdmissionsPage is the rendered public admissions view.
type AdmissionsPage struct {
	Categories   []AdmissionsCategory `json:"categories"`
	Selected     string               `json:"selected"`
	Requirements RequirementGroup     `json:"requirements"`
	Transferees  *RequirementGroup    `json:"transferees,omitempty"`
	ProcessSteps []ProcessStep        `json:"process_steps"`
	Notes        []string             `json:"notes"`
	Source       string               `json:"source"`
}
