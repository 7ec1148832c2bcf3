package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal/internal/dto"
	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

const (
	formModeCreate = "create"
	formModeEdit   = "edit"

	sessionExpiredMessage = "Session expired. Please log in again."
)

type contentAPI interface {
	CheckAuth(ctx context.Context) (*models.AuthCheckResponse, error)
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	List(ctx context.Context, resource, pluralKey string) ([]json.RawMessage, error)
	Create(ctx context.Context, resource, singularKey string, payload interface{}) (json.RawMessage, error)
	Update(ctx context.Context, resource, singularKey string, id int64, payload interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, resource string, id int64) error
}

// SessionStore persists the session marker between restarts.
type SessionStore interface {
	Load(ctx context.Context) (models.SessionMarker, error)
	Save(ctx context.Context, marker models.SessionMarker) error
	Clear(ctx context.Context) error
}

type activityRecorder interface {
	Record(entry models.ActivityLog)
}

type formState struct {
	open    bool
	editing models.Entity
	data    dto.FormData
}

// AdminService is the single-operator console controller. All state is guarded by mu and
// content API calls are never made while holding it.
type AdminService struct {
	api       contentAPI
	sessions  SessionStore
	registry  *ResourceRegistry
	alerts    *AlertQueue
	activity  activityRecorder
	validator *validator.Validate
	logger    *zap.Logger
	onChange  func(ctx context.Context)

	mu          sync.Mutex
	phase       models.AuthPhase
	user        *models.AdminUser
	activeTab   string
	busy        int
	pageError   string
	form        formState
	collections map[models.ResourceType][]models.Entity
}

// AdminServiceConfig collects the controller's collaborators.
type AdminServiceConfig struct {
	API       contentAPI
	Sessions  SessionStore
	Registry  *ResourceRegistry
	Alerts    *AlertQueue
	Activity  activityRecorder
	Validator *validator.Validate
	Logger    *zap.Logger
	// OnContentChange runs after every successful write, e.g. to drop cached public pages.
	OnContentChange func(ctx context.Context)
}

// NewAdminService constructs the controller in the checking-auth phase.
func NewAdminService(cfg AdminServiceConfig) *AdminService {
	if cfg.Registry == nil {
		cfg.Registry = NewResourceRegistry()
	}
	if cfg.Alerts == nil {
		cfg.Alerts = NewAlertQueue(AlertQueueConfig{})
	}
	if cfg.Validator == nil {
		cfg.Validator = validator.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &AdminService{
		api:         cfg.API,
		sessions:    cfg.Sessions,
		registry:    cfg.Registry,
		alerts:      cfg.Alerts,
		activity:    cfg.Activity,
		validator:   cfg.Validator,
		logger:      cfg.Logger,
		onChange:    cfg.OnContentChange,
		phase:       models.AuthChecking,
		activeTab:   models.TabDashboard,
		collections: make(map[models.ResourceType][]models.Entity),
	}
}

// Alerts exposes the controller's alert queue.
func (s *AdminService) Alerts() *AlertQueue { return s.alerts }

// Registry exposes the resource registry.
func (s *AdminService) Registry() *ResourceRegistry { return s.registry }

// Init restores the optimistic user from the session marker, then asks the content API
// whether the session is still valid. Only a confirmed session authenticates. An already
// authenticated console is left alone; the heartbeat re-verifies it.
func (s *AdminService) Init(ctx context.Context) bool {
	s.mu.Lock()
	if s.phase == models.AuthAuthenticated {
		s.mu.Unlock()
		return true
	}
	s.phase = models.AuthChecking
	s.mu.Unlock()

	if marker, err := s.sessions.Load(ctx); err != nil {
		s.logger.Warn("load session marker", zap.Error(err))
	} else if user, err := marker.User(); err != nil {
		s.logger.Warn("decode session marker", zap.Error(err))
	} else if user != nil {
		s.mu.Lock()
		s.user = user
		s.mu.Unlock()
	}

	resp, err := s.api.CheckAuth(ctx)
	if err != nil || resp == nil || resp.Status != "success" || !resp.Authenticated {
		if err != nil {
			s.logger.Info("session check failed", zap.Error(err))
		}
		s.teardown(ctx)
		return false
	}

	s.authenticate(ctx, resp.User)
	s.LoadAllData(ctx)
	return true
}

// Login opens a content API session for the operator and loads every collection.
func (s *AdminService) Login(ctx context.Context, req models.LoginRequest) (*models.AdminUser, error) {
	if err := s.validator.Struct(req); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
		s.alerts.Push(models.AlertError, "Login Failed", err.Error())
		return nil, err
	}

	resp, err := s.api.Login(ctx, req.Username, req.Password)
	if err == nil && (resp == nil || resp.User == nil) {
		err = appErrors.Clone(appErrors.ErrUpstream, "login response did not include a user")
	}
	if err != nil {
		s.alerts.Push(models.AlertError, "Login Failed", appErrors.FromError(err).Message)
		return nil, err
	}

	user := resp.User
	s.authenticate(ctx, user)
	s.alerts.Push(models.AlertSuccess, "Welcome back!", fmt.Sprintf("Welcome back, %s!", user.Username))
	s.record(user.Username, models.ActivityLogin, "", nil, nil)
	s.LoadAllData(ctx)
	return user, nil
}

// LoadAllData fetches the six collections concurrently. Each result is applied to its own
// collection as soon as it settles; the outcome alert is raised once all have settled.
func (s *AdminService) LoadAllData(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != models.AuthAuthenticated {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrUnauthorized, "not authenticated")
	}
	s.busy++
	s.pageError = ""
	s.mu.Unlock()
	defer s.done()

	descriptors := s.registry.All()
	errs := make([]error, len(descriptors))
	var wg sync.WaitGroup
	for i, d := range descriptors {
		wg.Add(1)
		go func(i int, d ResourceDescriptor) {
			defer wg.Done()
			entities, err := s.fetch(ctx, d)
			if err != nil {
				errs[i] = fmt.Errorf("list %s: %w", d.Type, err)
				return
			}
			s.mu.Lock()
			if s.phase == models.AuthAuthenticated {
				s.collections[d.Type] = entities
			}
			s.mu.Unlock()
		}(i, d)
	}
	wg.Wait()

	var failure error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if appErrors.HasCode(err, appErrors.ErrUnauthorized.Code) {
			s.expireSession(ctx)
			return appErrors.Clone(appErrors.ErrUnauthorized, sessionExpiredMessage)
		}
		if failure == nil {
			failure = err
		}
	}

	if failure != nil {
		msg := "Failed to load data: " + errorText(failure)
		s.mu.Lock()
		s.pageError = msg
		s.mu.Unlock()
		s.alerts.Push(models.AlertError, "Data Load Failed", msg)
		s.logger.Warn("load all data", zap.Error(failure))
		return appErrors.Wrap(failure, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
	}

	s.alerts.Push(models.AlertInfo, "Data Loaded", "All data has been loaded successfully.")
	return nil
}

func (s *AdminService) fetch(ctx context.Context, d ResourceDescriptor) ([]models.Entity, error) {
	raws, err := s.api.List(ctx, d.Path(), d.PluralKey)
	if err != nil {
		return nil, err
	}
	return d.DecodeAll(raws)
}

// SelectTab switches the active tab and discards any open form.
func (s *AdminService) SelectTab(tab string) error {
	if tab != models.TabDashboard {
		if _, err := s.registry.Lookup(models.ResourceType(tab)); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown tab: %s", tab))
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
	s.form = formState{}
	return nil
}

// OpenCreate opens an empty form for the active tab.
func (s *AdminService) OpenCreate() error {
	s.mu.Lock()
	d, err := s.activeDescriptorLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.form = formState{open: true, data: dto.FormData{}}
	s.mu.Unlock()

	s.alerts.Push(models.AlertInfo, "Create Mode", "Creating new "+d.Noun())
	return nil
}

// OpenEdit opens the form pre-filled from a cached record of the active tab.
func (s *AdminService) OpenEdit(id int64) error {
	s.mu.Lock()
	d, err := s.activeDescriptorLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	entity := findEntity(s.collections[d.Type], id)
	if entity == nil {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %d not found", d.Noun(), id))
	}
	data, err := dto.FormFromEntity(entity)
	if err != nil {
		s.mu.Unlock()
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "prefill form")
	}
	s.form = formState{open: true, editing: entity, data: data}
	s.mu.Unlock()

	s.alerts.Push(models.AlertInfo, "Edit Mode", fmt.Sprintf("Editing %s: %s", d.Noun(), entity.DisplayName()))
	return nil
}

// SetField writes one form field.
func (s *AdminService) SetField(name string, value interface{}) error {
	return s.UpdateForm(map[string]interface{}{name: value})
}

// UpdateForm merges fields into the open form.
func (s *AdminService) UpdateForm(fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.form.open {
		return appErrors.Clone(appErrors.ErrValidation, "no form is open")
	}
	s.form.data = s.form.data.Merge(fields)
	return nil
}

// CancelForm closes the form and drops its data.
func (s *AdminService) CancelForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = formState{}
}

// Submit validates and normalizes the open form, writes it through the content API and
// then reloads every collection before closing the form. On failure the form stays open.
func (s *AdminService) Submit(ctx context.Context) error {
	s.mu.Lock()
	if !s.form.open {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "no form is open")
	}
	tab := s.activeTab
	data := s.form.data.Clone()
	editing := s.form.editing
	actor := s.actorLocked()
	s.busy++
	s.pageError = ""
	s.mu.Unlock()
	defer s.done()

	noun := dashNoun(tab)
	d, err := s.registry.Lookup(models.ResourceType(tab))
	if err != nil {
		err = appErrors.Clone(appErrors.ErrUnknownResource, "Unknown active tab: "+tab)
		s.alerts.Push(models.AlertError, "Save Failed", fmt.Sprintf("Failed to save %s: %s", noun, errorText(err)))
		return err
	}

	body, err := d.Normalize(data, s.validator)
	if err != nil {
		s.alerts.Push(models.AlertError, "Save Failed", fmt.Sprintf("Failed to save %s: %s", noun, errorText(err)))
		return err
	}

	var (
		raw    json.RawMessage
		action = models.ActivityCreate
		verb   = "created"
		title  = "Created Successfully"
	)
	if editing != nil {
		action, verb, title = models.ActivityUpdate, "updated", "Updated Successfully"
		raw, err = s.api.Update(ctx, d.Path(), d.SingularKey, editing.EntityID(), body)
	} else {
		raw, err = s.api.Create(ctx, d.Path(), d.SingularKey, body)
	}
	if err != nil {
		s.alerts.Push(models.AlertError, "Save Failed", fmt.Sprintf("Failed to save %s: %s", noun, errorText(err)))
		return err
	}

	var resourceID *int64
	if editing != nil {
		id := editing.EntityID()
		resourceID = &id
	}
	if stored := s.spliceReturned(d, raw, editing); stored != nil {
		id := stored.EntityID()
		resourceID = &id
	}

	s.alerts.Push(models.AlertSuccess, title, fmt.Sprintf("%s has been %s successfully!", noun, verb))
	s.record(actor, action, string(d.Type), resourceID, body)
	s.contentChanged(ctx)

	_ = s.LoadAllData(ctx)

	s.mu.Lock()
	s.form = formState{}
	s.mu.Unlock()
	return nil
}

// spliceReturned applies the stored record returned by a write ahead of the full reload.
func (s *AdminService) spliceReturned(d ResourceDescriptor, raw json.RawMessage, editing models.Entity) models.Entity {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	stored, err := d.Decode(raw)
	if err != nil {
		s.logger.Debug("decode written record", zap.String("resource", string(d.Type)), zap.Error(err))
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[d.Type]
	if editing == nil {
		s.collections[d.Type] = append(append([]models.Entity(nil), items...), stored)
		return stored
	}
	next := make([]models.Entity, len(items))
	for i, item := range items {
		if item.EntityID() == editing.EntityID() {
			next[i] = stored
		} else {
			next[i] = item
		}
	}
	s.collections[d.Type] = next
	return stored
}

// Delete removes a record once the operator confirmed it. Without confirmation nothing is
// sent and ErrConfirmationRequired carries the prompt.
func (s *AdminService) Delete(ctx context.Context, t models.ResourceType, id int64, confirmed bool) error {
	noun := dashNoun(string(t))
	d, err := s.registry.Lookup(t)
	if err != nil {
		s.alerts.Push(models.AlertError, "Delete Failed", fmt.Sprintf("Failed to delete %s: %s", noun, errorText(err)))
		return err
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, fmt.Sprintf("Are you sure you want to delete this %s?", t))
	}

	s.mu.Lock()
	actor := s.actorLocked()
	s.busy++
	s.pageError = ""
	s.mu.Unlock()
	defer s.done()

	if err := s.api.Delete(ctx, d.Path(), id); err != nil {
		s.alerts.Push(models.AlertError, "Delete Failed", fmt.Sprintf("Failed to delete %s: %s", noun, errorText(err)))
		return err
	}

	s.mu.Lock()
	items := s.collections[d.Type]
	kept := make([]models.Entity, 0, len(items))
	for _, item := range items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	s.collections[d.Type] = kept
	s.mu.Unlock()

	s.alerts.Push(models.AlertSuccess, "Deleted Successfully", fmt.Sprintf("%s has been deleted successfully!", noun))
	s.record(actor, models.ActivityDelete, string(d.Type), &id, nil)
	s.contentChanged(ctx)
	return nil
}

// Logout notifies the content API best-effort and always tears the local session down.
func (s *AdminService) Logout(ctx context.Context) {
	s.mu.Lock()
	actor := s.actorLocked()
	s.mu.Unlock()

	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("logout error", zap.Error(err))
	}
	s.teardown(ctx)
	s.alerts.Push(models.AlertInfo, "Logged out", "You have been successfully logged out.")
	s.record(actor, models.ActivityLogout, "", nil, nil)
}

// VerifySession re-probes the content API session. An unauthenticated answer expires the
// local session; transport failures are returned without touching state.
func (s *AdminService) VerifySession(ctx context.Context) error {
	s.mu.Lock()
	phase := s.phase
	s.mu.Unlock()
	if phase != models.AuthAuthenticated {
		return nil
	}

	resp, err := s.api.CheckAuth(ctx)
	if err != nil && !appErrors.HasCode(err, appErrors.ErrUnauthorized.Code) {
		return err
	}
	if err != nil || resp == nil || resp.Status != "success" || !resp.Authenticated {
		s.expireSession(ctx)
		return appErrors.Clone(appErrors.ErrUnauthorized, sessionExpiredMessage)
	}
	return nil
}

// Phase reports the authentication phase.
func (s *AdminService) Phase() models.AuthPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentUser returns the authenticated operator, or nil.
func (s *AdminService) CurrentUser() *models.AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != models.AuthAuthenticated || s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Collection returns the cached records of one type.
func (s *AdminService) Collection(t models.ResourceType) ([]models.Entity, error) {
	if _, err := s.registry.Lookup(t); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Entity(nil), s.collections[t]...), nil
}

// Table renders the cached records of one type.
func (s *AdminService) Table(t models.ResourceType) (dto.TableView, error) {
	d, err := s.registry.Lookup(t)
	if err != nil {
		return dto.TableView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableLocked(d), nil
}

// Snapshot returns a read-only view of the controller.
func (s *AdminService) Snapshot() dto.AdminState {
	s.mu.Lock()
	state := dto.AdminState{
		Phase:       s.phase,
		ActiveTab:   s.activeTab,
		Loading:     s.busy > 0,
		Error:       s.pageError,
		Collections: make(map[models.ResourceType][]models.Entity, len(s.collections)),
		Form: dto.FormState{
			Open: s.form.open,
			Data: s.form.data.Clone(),
		},
	}
	if s.user != nil {
		user := *s.user
		state.User = &user
	}
	if s.form.open {
		state.Form.Mode = formModeCreate
		if s.form.editing != nil {
			id := s.form.editing.EntityID()
			state.Form.Mode = formModeEdit
			state.Form.EditingID = &id
		}
	}
	if state.Form.Data == nil {
		state.Form.Data = dto.FormData{}
	}
	for _, d := range s.registry.All() {
		items := s.collections[d.Type]
		state.Dashboard = append(state.Dashboard, dto.DashboardCount{Type: d.Type, Label: d.Label, Count: len(items)})
		state.Collections[d.Type] = append([]models.Entity{}, items...)
	}
	if d, err := s.registry.Lookup(models.ResourceType(s.activeTab)); err == nil {
		table := s.tableLocked(d)
		state.Table = &table
	}
	s.mu.Unlock()

	state.Alerts = s.alerts.List()
	return state
}

func (s *AdminService) tableLocked(d ResourceDescriptor) dto.TableView {
	items := s.collections[d.Type]
	view := dto.TableView{Type: d.Type, Label: d.Label, Headers: d.Headers, Rows: make([]dto.TableRow, 0, len(items))}
	for _, item := range items {
		view.Rows = append(view.Rows, d.Row(item))
	}
	return view
}

func (s *AdminService) activeDescriptorLocked() (ResourceDescriptor, error) {
	if s.phase != models.AuthAuthenticated {
		return ResourceDescriptor{}, appErrors.Clone(appErrors.ErrUnauthorized, "not authenticated")
	}
	if s.activeTab == models.TabDashboard {
		return ResourceDescriptor{}, appErrors.Clone(appErrors.ErrValidation, "select a resource tab first")
	}
	return s.registry.Lookup(models.ResourceType(s.activeTab))
}

func (s *AdminService) authenticate(ctx context.Context, user *models.AdminUser) {
	s.mu.Lock()
	s.user = user
	s.phase = models.AuthAuthenticated
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("encode session marker", zap.Error(err))
		return
	}
	if err := s.sessions.Save(ctx, models.SessionMarker{Raw: raw, Verified: true}); err != nil {
		s.logger.Warn("save session marker", zap.Error(err))
	}
}

// expireSession is the forced logout raised by an authorization failure.
func (s *AdminService) expireSession(ctx context.Context) {
	s.teardown(ctx)
	s.mu.Lock()
	s.pageError = sessionExpiredMessage
	s.mu.Unlock()
	s.alerts.Push(models.AlertWarning, "Session expired", "Please log in again.")
}

func (s *AdminService) teardown(ctx context.Context) {
	s.mu.Lock()
	s.phase = models.AuthUnauthenticated
	s.user = nil
	s.form = formState{}
	s.collections = make(map[models.ResourceType][]models.Entity)
	s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Warn("clear session marker", zap.Error(err))
	}
}

func (s *AdminService) done() {
	s.mu.Lock()
	s.busy--
	s.mu.Unlock()
}

func (s *AdminService) actorLocked() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

func (s *AdminService) record(actor, action, resource string, id *int64, details interface{}) {
	if s.activity == nil {
		return
	}
	entry := models.ActivityLog{Actor: actor, Action: action, Resource: resource, ResourceID: id}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}
	s.activity.Record(entry)
}

func (s *AdminService) contentChanged(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx)
	}
}

func findEntity(items []models.Entity, id int64) models.Entity {
	for _, item := range items {
		if item.EntityID() == id {
			return item
		}
	}
	return nil
}

func dashNoun(tag string) string {
	return ResourceDescriptor{Type: models.ResourceType(tag)}.Noun()
}

func errorText(err error) string {
	if appErr := appErrors.FromError(err); appErr != nil && appErr.Code != appErrors.ErrInternal.Code {
		return appErr.Message
	}
	return err.Error()
}
