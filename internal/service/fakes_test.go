package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

// fakeContentAPI keeps records per admin collection in memory and assigns ids on create.
type fakeContentAPI struct {
	mu sync.Mutex

	authenticated bool
	checkErr      error
	user          *models.AdminUser
	loginErr      error
	logoutErr     error

	records   map[string][]map[string]interface{}
	listErr   map[string]error
	createErr error
	updateErr error
	deleteErr error
	nextID    int64
	lastBody  map[string]interface{}
	calls     []string

	public    map[string][]json.RawMessage
	publicErr map[string]error
	info      *models.AdmissionsInfo
	infoErr   error
}

func newFakeContentAPI() *fakeContentAPI {
	return &fakeContentAPI{
		authenticated: true,
		user:          &models.AdminUser{ID: 1, Username: "admin"},
		records:       map[string][]map[string]interface{}{},
		listErr:       map[string]error{},
		public:        map[string][]json.RawMessage{},
		publicErr:     map[string]error{},
		nextID:        100,
	}
}

func (f *fakeContentAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeContentAPI) seed(resource string, items ...map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[resource] = append(f.records[resource], items...)
}

func (f *fakeContentAPI) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeContentAPI) CheckAuth(context.Context) (*models.AuthCheckResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("check")
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &models.AuthCheckResponse{Status: "success", Authenticated: f.authenticated, User: f.user}, nil
}

func (f *fakeContentAPI) Login(_ context.Context, username, password string) (*models.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.authenticated = true
	return &models.LoginResponse{Status: "success", User: &models.AdminUser{ID: 1, Username: username}}, nil
}

func (f *fakeContentAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("logout")
	f.authenticated = false
	return f.logoutErr
}

func (f *fakeContentAPI) List(_ context.Context, resource, pluralKey string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list:" + resource)
	if err := f.listErr[resource]; err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(f.records[resource]))
	for _, item := range f.records[resource] {
		raw, _ := json.Marshal(item)
		out = append(out, raw)
	}
	return out, nil
}

func (f *fakeContentAPI) Create(_ context.Context, resource, singularKey string, payload interface{}) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create:" + resource)
	if f.createErr != nil {
		return nil, f.createErr
	}
	item := toMap(payload)
	f.lastBody = toMap(payload)
	f.nextID++
	item["id"] = f.nextID
	f.records[resource] = append(f.records[resource], item)
	raw, _ := json.Marshal(item)
	return raw, nil
}

func (f *fakeContentAPI) Update(_ context.Context, resource, singularKey string, id int64, payload interface{}) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update:" + resource)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	item := toMap(payload)
	f.lastBody = toMap(payload)
	item["id"] = id
	for i, existing := range f.records[resource] {
		if idOf(existing) == id {
			f.records[resource][i] = item
			raw, _ := json.Marshal(item)
			return raw, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrUpstream, "HTTP 404")
}

func (f *fakeContentAPI) Delete(_ context.Context, resource string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete:" + resource)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.records[resource][:0]
	for _, item := range f.records[resource] {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	f.records[resource] = kept
	return nil
}

func (f *fakeContentAPI) PublicList(_ context.Context, section string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("public:" + section)
	if err := f.publicErr[section]; err != nil {
		return nil, err
	}
	return f.public[section], nil
}

func (f *fakeContentAPI) InstitutionalInfo(context.Context) (*models.AdmissionsInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("info")
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func toMap(v interface{}) map[string]interface{} {
	raw, _ := json.Marshal(v)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return out
}

func idOf(item map[string]interface{}) int64 {
	switch v := item["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// fakeClock is a manual Scheduler; Advance fires due timers in deadline order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fn()
	}
}

func (c *fakeClock) Fired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// memorySessions is a SessionStore that counts writes.
type memorySessions struct {
	mu     sync.Mutex
	marker models.SessionMarker
	saves  int
	clears int
}

func (m *memorySessions) Load(context.Context) (models.SessionMarker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marker, nil
}

func (m *memorySessions) Save(_ context.Context, marker models.SessionMarker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = marker
	m.saves++
	return nil
}

func (m *memorySessions) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = models.SessionMarker{}
	m.clears++
	return nil
}
