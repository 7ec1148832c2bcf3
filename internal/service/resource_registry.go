package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/campus-portal/internal/dto"
	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

// ResourceDescriptor describes how one content collection is listed, rendered and written.
// Adding a collection to the console means adding one descriptor.
type ResourceDescriptor struct {
	Type        models.ResourceType
	Label       string
	PluralKey   string
	SingularKey string
	Headers     []string

	decode    func(json.RawMessage) (models.Entity, error)
	normalize func(form dto.FormData, v *validator.Validate) (map[string]interface{}, error)
}

// Noun is the lower-case name used in operator messages, e.g. "academic programs".
func (d ResourceDescriptor) Noun() string {
	return strings.Replace(string(d.Type), "-", " ", 1)
}

// Path is the collection segment of the admin endpoints.
func (d ResourceDescriptor) Path() string { return string(d.Type) }

// Decode turns one upstream record into a typed entity.
func (d ResourceDescriptor) Decode(raw json.RawMessage) (models.Entity, error) {
	return d.decode(raw)
}

// DecodeAll decodes a list; a record that does not decode fails the whole list.
func (d ResourceDescriptor) DecodeAll(raws []json.RawMessage) ([]models.Entity, error) {
	out := make([]models.Entity, 0, len(raws))
	for _, raw := range raws {
		entity, err := d.decode(raw)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
				fmt.Sprintf("invalid %s record", d.Noun()))
		}
		out = append(out, entity)
	}
	return out, nil
}

// Normalize validates the form and builds the write body. Validation failures never reach
// the network.
func (d ResourceDescriptor) Normalize(form dto.FormData, v *validator.Validate) (map[string]interface{}, error) {
	return d.normalize(form, v)
}

// Row renders one entity as table cells.
func (d ResourceDescriptor) Row(entity models.Entity) dto.TableRow {
	return dto.TableRow{ID: entity.EntityID(), Name: entity.DisplayName(), Cells: entity.TableCells()}
}

// ResourceRegistry maps resource tags to descriptors.
type ResourceRegistry struct {
	descriptors map[models.ResourceType]ResourceDescriptor
	order       []models.ResourceType
}

// NewResourceRegistry returns the registry of the six managed collections.
func NewResourceRegistry() *ResourceRegistry {
	r := &ResourceRegistry{descriptors: map[models.ResourceType]ResourceDescriptor{}}
	r.register(ResourceDescriptor{
		Type:        models.ResourceAcademicPrograms,
		Label:       "Academic Programs",
		PluralKey:   "programs",
		SingularKey: "program",
		Headers:     []string{"Title", "Short Title", "Duration", "Units", "Status"},
		decode:      decodeAs[models.AcademicProgram],
		normalize:   normalizeAcademicProgram,
	})
	r.register(ResourceDescriptor{
		Type:        models.ResourceEvents,
		Label:       "Events",
		PluralKey:   "events",
		SingularKey: "event",
		Headers:     []string{"Title", "Date", "Time", "Location", "Status"},
		decode:      decodeAs[models.Event],
		normalize:   spreadWithDates("event_date", "start_time", "end_time"),
	})
	r.register(ResourceDescriptor{
		Type:        models.ResourceAchievements,
		Label:       "Achievements",
		PluralKey:   "achievements",
		SingularKey: "achievement",
		Headers:     []string{"Title", "Date", "Category", "Status"},
		decode:      decodeAs[models.Achievement],
		normalize:   spreadWithDates("achievement_date"),
	})
	r.register(ResourceDescriptor{
		Type:        models.ResourceAnnouncements,
		Label:       "Announcements",
		PluralKey:   "announcements",
		SingularKey: "announcement",
		Headers:     []string{"Title", "Date", "Status"},
		decode:      decodeAs[models.Announcement],
		normalize:   spreadWithDates("date"),
	})
	r.register(ResourceDescriptor{
		Type:        models.ResourceDepartments,
		Label:       "Departments",
		PluralKey:   "departments",
		SingularKey: "department",
		Headers:     []string{"Name", "Type", "Head", "Office", "Status"},
		decode:      decodeAs[models.Department],
		normalize:   normalizeDepartment,
	})
	r.register(ResourceDescriptor{
		Type:        models.ResourcePersonnel,
		Label:       "Personnel",
		PluralKey:   "personnel",
		SingularKey: "personnel",
		Headers:     []string{"Name", "Department", "Title", "Position Type", "Status"},
		decode:      decodeAs[models.Personnel],
		normalize:   normalizePersonnel,
	})
	return r
}

func (r *ResourceRegistry) register(d ResourceDescriptor) {
	r.descriptors[d.Type] = d
	r.order = append(r.order, d.Type)
}

// Lookup resolves a resource tag.
func (r *ResourceRegistry) Lookup(t models.ResourceType) (ResourceDescriptor, error) {
	d, ok := r.descriptors[t]
	if !ok {
		return ResourceDescriptor{}, appErrors.Clone(appErrors.ErrUnknownResource, fmt.Sprintf("Unknown type: %s", t))
	}
	return d, nil
}

// All returns descriptors in navigation order.
func (r *ResourceRegistry) All() []ResourceDescriptor {
	out := make([]ResourceDescriptor, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.descriptors[t])
	}
	return out
}

func decodeAs[T models.Entity](raw json.RawMessage) (models.Entity, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// spreadBody starts a write body from every form field with is_active and display_order coerced.
func spreadBody(form dto.FormData) map[string]interface{} {
	body := map[string]interface{}(form.Clone())
	if body == nil {
		body = map[string]interface{}{}
	}
	body["is_active"] = form.Truthy("is_active")
	body["display_order"] = form.NumberOr("display_order", 0)
	return body
}

func spreadWithDates(fields ...string) func(dto.FormData, *validator.Validate) (map[string]interface{}, error) {
	return func(form dto.FormData, _ *validator.Validate) (map[string]interface{}, error) {
		body := spreadBody(form)
		for _, field := range fields {
			body[field] = form.Text(field, "")
		}
		return body, nil
	}
}

func normalizeAcademicProgram(form dto.FormData, _ *validator.Validate) (map[string]interface{}, error) {
	body := spreadBody(form)
	body["duration_years"] = form.NumberOr("duration_years", 4)
	body["total_units"] = form.NumberOr("total_units", 120)
	body["with_enhancements"] = form.NumberOr("with_enhancements", 0)
	return body, nil
}

func normalizeDepartment(form dto.FormData, v *validator.Validate) (map[string]interface{}, error) {
	payload := models.DepartmentPayload{
		Name:           strings.TrimSpace(form.Text("name", "")),
		DepartmentType: form.Text("department_type", string(models.DepartmentAcademic)),
		Description:    form.Text("description", ""),
		OfficeLocation: form.Text("office_location", ""),
		Phone:          form.Text("phone", ""),
		Email:          form.Text("email", ""),
		HeadName:       form.Text("head_name", ""),
		HeadTitle:      form.Text("head_title", ""),
		DisplayOrder:   form.FiniteNumberOr("display_order", 0),
		IsActive:       form.Truthy("is_active"),
	}
	if payload.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Name is required")
	}
	if err := v.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}
	return structBody(payload)
}

func normalizePersonnel(form dto.FormData, v *validator.Validate) (map[string]interface{}, error) {
	body := spreadBody(form)
	body["department_id"] = form.OptionalID("department_id")
	position := form.Text("position_type", string(models.PositionFaculty))
	if err := v.Var(position, "oneof=faculty administrative support"); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid position type")
	}
	body["position_type"] = position
	return body, nil
}

func structBody(payload interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}
