package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

type adminFixture struct {
	svc      *AdminService
	api      *fakeContentAPI
	sessions *memorySessions
	clock    *fakeClock
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	api := newFakeContentAPI()
	sessions := &memorySessions{}
	clock := newFakeClock()
	svc := NewAdminService(AdminServiceConfig{
		API:      api,
		Sessions: sessions,
		Alerts:   NewAlertQueue(AlertQueueConfig{Scheduler: clock, Now: clock.Now}),
	})
	return &adminFixture{svc: svc, api: api, sessions: sessions, clock: clock}
}

func (f *adminFixture) login(t *testing.T) {
	t.Helper()
	require.True(t, f.svc.Init(context.Background()))
	f.svc.Alerts().Clear()
}

func lastAlert(t *testing.T, svc *AdminService) models.Alert {
	t.Helper()
	alerts := svc.Alerts().List()
	require.NotEmpty(t, alerts)
	return alerts[len(alerts)-1]
}

func alertTitles(svc *AdminService) []string {
	var titles []string
	for _, a := range svc.Alerts().List() {
		titles = append(titles, a.Title)
	}
	return titles
}

func TestInitRequiresServerVerifiedSession(t *testing.T) {
	f := newAdminFixture(t)
	f.sessions.marker = models.SessionMarker{Raw: json.RawMessage(`{"id":9,"username":"stale"}`)}
	f.api.authenticated = false

	assert.False(t, f.svc.Init(context.Background()))
	assert.Equal(t, models.AuthUnauthenticated, f.svc.Phase())
	assert.Nil(t, f.svc.CurrentUser())
	assert.True(t, f.sessions.marker.Empty())
	assert.Nil(t, f.svc.Snapshot().User)
	assert.Equal(t, 0, f.api.callCount("list:"))
}

func TestInitCheckErrorTearsDown(t *testing.T) {
	f := newAdminFixture(t)
	f.api.checkErr = appErrors.Clone(appErrors.ErrUpstream, "network error")

	assert.False(t, f.svc.Init(context.Background()))
	assert.Equal(t, models.AuthUnauthenticated, f.svc.Phase())
	assert.Equal(t, 1, f.sessions.clears)
}

func TestInitAuthenticatesAndLoads(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("events", map[string]interface{}{"id": 1, "title": "Fair", "event_date": "2026-03-31", "is_active": true})

	require.True(t, f.svc.Init(context.Background()))

	assert.Equal(t, models.AuthAuthenticated, f.svc.Phase())
	assert.Equal(t, "admin", f.svc.CurrentUser().Username)
	assert.True(t, f.sessions.marker.Verified)
	user, err := f.sessions.marker.User()
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	events, err := f.svc.Collection(models.ResourceEvents)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Fair", events[0].DisplayName())
	assert.Equal(t, 6, f.api.callCount("list:"))
	assert.Equal(t, []string{"Data Loaded"}, alertTitles(f.svc))
	assert.Empty(t, f.svc.Snapshot().Error)
}

func TestInitLeavesAuthenticatedConsoleAlone(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	checks, lists := f.api.callCount("check"), f.api.callCount("list:")

	assert.True(t, f.svc.Init(context.Background()))

	assert.Equal(t, models.AuthAuthenticated, f.svc.Phase())
	assert.Equal(t, checks, f.api.callCount("check"))
	assert.Equal(t, lists, f.api.callCount("list:"))
	assert.Empty(t, f.svc.Alerts().List())
}

func TestLoginShowsWelcomeAndLoads(t *testing.T) {
	f := newAdminFixture(t)
	f.api.authenticated = false
	require.False(t, f.svc.Init(context.Background()))

	user, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "registrar", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "registrar", user.Username)
	assert.Equal(t, models.AuthAuthenticated, f.svc.Phase())

	titles := alertTitles(f.svc)
	assert.Contains(t, titles, "Welcome back!")
	assert.Contains(t, titles, "Data Loaded")
}

func TestLoginFailureKeepsUnauthenticated(t *testing.T) {
	f := newAdminFixture(t)
	f.api.authenticated = false
	f.svc.Init(context.Background())
	f.api.loginErr = appErrors.Clone(appErrors.ErrUnauthorized, "Invalid credentials")

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, models.AuthUnauthenticated, f.svc.Phase())
	alert := lastAlert(t, f.svc)
	assert.Equal(t, models.AlertError, alert.Type)
	assert.Equal(t, "Invalid credentials", alert.Message)

	_, err = f.svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 1, f.api.callCount("login"))
}

func validForm(t models.ResourceType) map[string]interface{} {
	switch t {
	case models.ResourceDepartments:
		return map[string]interface{}{"name": "  Registrar  ", "department_type": "administrative", "is_active": "on"}
	case models.ResourcePersonnel:
		return map[string]interface{}{"first_name": "Ana", "last_name": "Cruz", "department_id": "3", "is_active": true}
	default:
		return map[string]interface{}{"title": "New " + string(t), "is_active": true}
	}
}

func TestCreateThenReloadAddsExactlyOneItem(t *testing.T) {
	for _, rt := range models.ResourceTypes {
		t.Run(string(rt), func(t *testing.T) {
			f := newAdminFixture(t)
			f.api.seed(string(rt), map[string]interface{}{"id": 1, "title": "Existing", "name": "Existing"})
			f.login(t)

			before, err := f.svc.Collection(rt)
			require.NoError(t, err)

			require.NoError(t, f.svc.SelectTab(string(rt)))
			require.NoError(t, f.svc.OpenCreate())
			require.NoError(t, f.svc.UpdateForm(validForm(rt)))
			listsBefore := f.api.callCount("list:")
			require.NoError(t, f.svc.Submit(context.Background()))

			after, err := f.svc.Collection(rt)
			require.NoError(t, err)
			require.Len(t, after, len(before)+1)
			created := after[len(after)-1]
			assert.Equal(t, f.api.nextID, created.EntityID())
			assert.Equal(t, listsBefore+6, f.api.callCount("list:"), "writes trigger a full reload")

			stored := toMap(created)
			for key, value := range f.api.lastBody {
				if _, ok := stored[key]; ok {
					assert.Equal(t, value, stored[key], key)
				}
			}

			state := f.svc.Snapshot()
			assert.False(t, state.Form.Open)
			assert.Contains(t, alertTitles(f.svc), "Created Successfully")
		})
	}
}

func TestProgramNormalizationDefaults(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceAcademicPrograms)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.UpdateForm(map[string]interface{}{
		"title":          "BS Information Technology",
		"duration_years": "",
		"total_units":    "abc",
		"display_order":  "2",
		"extra_field":    "kept",
	}))
	require.NoError(t, f.svc.Submit(context.Background()))

	body := f.api.lastBody
	assert.Equal(t, 4.0, body["duration_years"])
	assert.Equal(t, 120.0, body["total_units"])
	assert.Equal(t, 0.0, body["with_enhancements"])
	assert.Equal(t, 2.0, body["display_order"])
	assert.Equal(t, false, body["is_active"])
	assert.Equal(t, "kept", body["extra_field"])
}

func TestPersonnelNormalization(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourcePersonnel)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.UpdateForm(map[string]interface{}{"first_name": "Ana", "department_id": ""}))
	require.NoError(t, f.svc.Submit(context.Background()))

	assert.Nil(t, f.api.lastBody["department_id"])
	assert.Equal(t, "faculty", f.api.lastBody["position_type"])
}

func TestSubmitKeepsFractionalNumbers(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceAcademicPrograms)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.UpdateForm(map[string]interface{}{
		"title":          "Diploma in Nursing",
		"duration_years": "2.5",
		"display_order":  1.9,
	}))
	require.NoError(t, f.svc.Submit(context.Background()))

	assert.Equal(t, 2.5, f.api.lastBody["duration_years"])
	assert.Equal(t, 1.9, f.api.lastBody["display_order"])
	assert.Empty(t, f.svc.Snapshot().Error)
	table, err := f.svc.Table(models.ResourceAcademicPrograms)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2.5", table.Rows[0].Cells[2])

	require.NoError(t, f.svc.SelectTab(string(models.ResourcePersonnel)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.UpdateForm(map[string]interface{}{"first_name": "Ana", "department_id": "0.5"}))
	require.NoError(t, f.svc.Submit(context.Background()))
	assert.Nil(t, f.api.lastBody["department_id"])
}

func TestBooleanCoercionOnSubmit(t *testing.T) {
	cases := []struct {
		value interface{}
		set   bool
		want  bool
	}{
		{set: false, want: false},
		{value: 0.0, set: true, want: false},
		{value: "", set: true, want: false},
		{value: false, set: true, want: false},
		{value: nil, set: true, want: false},
		{value: true, set: true, want: true},
		{value: "on", set: true, want: true},
		{value: 1.0, set: true, want: true},
		{value: "0", set: true, want: true},
	}
	for _, tc := range cases {
		f := newAdminFixture(t)
		f.login(t)
		require.NoError(t, f.svc.SelectTab(string(models.ResourceEvents)))
		require.NoError(t, f.svc.OpenCreate())
		fields := map[string]interface{}{"title": "Fair"}
		if tc.set {
			fields["is_active"] = tc.value
		}
		require.NoError(t, f.svc.UpdateForm(fields))
		require.NoError(t, f.svc.Submit(context.Background()))
		assert.Equal(t, tc.want, f.api.lastBody["is_active"], "%#v", tc.value)
	}
}

func TestDepartmentBlankNameFailsWithoutNetwork(t *testing.T) {
	for _, name := range []string{"", "   "} {
		f := newAdminFixture(t)
		f.login(t)
		require.NoError(t, f.svc.SelectTab(string(models.ResourceDepartments)))
		require.NoError(t, f.svc.OpenCreate())
		require.NoError(t, f.svc.SetField("name", name))

		err := f.svc.Submit(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, appErrors.ErrValidation)
		assert.Equal(t, 0, f.api.callCount("create:"))

		alert := lastAlert(t, f.svc)
		assert.Equal(t, "Save Failed", alert.Title)
		assert.Equal(t, "Failed to save departments: Name is required", alert.Message)
		assert.True(t, f.svc.Snapshot().Form.Open)
	}
}

func TestDepartmentUpdateValidatesToo(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("departments", map[string]interface{}{"id": 5, "name": "Registrar", "department_type": "administrative"})
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceDepartments)))
	require.NoError(t, f.svc.OpenEdit(5))
	require.NoError(t, f.svc.SetField("name", " "))

	assert.ErrorIs(t, f.svc.Submit(context.Background()), appErrors.ErrValidation)
	assert.Equal(t, 0, f.api.callCount("update:"))
}

func TestEditPrefillsAndUpdates(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("announcements",
		map[string]interface{}{"id": 1, "title": "Enrollment", "date": "2026-03-02", "is_active": true},
		map[string]interface{}{"id": 2, "title": "Holiday", "date": "2026-03-20", "is_active": true},
	)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceAnnouncements)))
	require.NoError(t, f.svc.OpenEdit(2))

	state := f.svc.Snapshot()
	require.True(t, state.Form.Open)
	assert.Equal(t, "edit", state.Form.Mode)
	assert.Equal(t, "Holiday", state.Form.Data["title"])
	assert.Equal(t, "Editing announcements: Holiday", lastAlert(t, f.svc).Message)

	require.NoError(t, f.svc.SetField("title", "Holiday Break"))
	require.NoError(t, f.svc.Submit(context.Background()))

	items, err := f.svc.Collection(models.ResourceAnnouncements)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Enrollment", items[0].DisplayName())
	assert.Equal(t, "Holiday Break", items[1].DisplayName())
	assert.Contains(t, alertTitles(f.svc), "Updated Successfully")
	assert.Equal(t, 1, f.api.callCount("update:announcements"))
}

func TestOpenEditUnknownID(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceEvents)))
	assert.ErrorIs(t, f.svc.OpenEdit(42), appErrors.ErrNotFound)
	assert.False(t, f.svc.Snapshot().Form.Open)
}

func TestSubmitFailureKeepsStateAndForm(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("achievements", map[string]interface{}{"id": 1, "title": "Award"})
	f.login(t)
	f.api.createErr = appErrors.Clone(appErrors.ErrUpstream, "HTTP 500")
	require.NoError(t, f.svc.SelectTab(string(models.ResourceAchievements)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.SetField("title", "Press"))

	require.Error(t, f.svc.Submit(context.Background()))

	items, _ := f.svc.Collection(models.ResourceAchievements)
	assert.Len(t, items, 1)
	state := f.svc.Snapshot()
	assert.True(t, state.Form.Open)
	assert.Equal(t, "Press", state.Form.Data["title"])
	alert := lastAlert(t, f.svc)
	assert.Equal(t, "Save Failed", alert.Title)
	assert.Equal(t, "Failed to save achievements: HTTP 500", alert.Message)
}

func TestDeleteRemovesOnlyThatID(t *testing.T) {
	for _, rt := range models.ResourceTypes {
		t.Run(string(rt), func(t *testing.T) {
			f := newAdminFixture(t)
			f.api.seed(string(rt),
				map[string]interface{}{"id": 1, "title": "a"},
				map[string]interface{}{"id": 2, "title": "b"},
				map[string]interface{}{"id": 3, "title": "c"},
			)
			other := models.ResourceEvents
			if rt == other {
				other = models.ResourceAnnouncements
			}
			f.api.seed(string(other), map[string]interface{}{"id": 2, "title": "other"})
			f.login(t)

			require.NoError(t, f.svc.Delete(context.Background(), rt, 2, true))

			items, err := f.svc.Collection(rt)
			require.NoError(t, err)
			var ids []int64
			for _, item := range items {
				ids = append(ids, item.EntityID())
			}
			assert.Equal(t, []int64{1, 3}, ids)

			untouched, err := f.svc.Collection(other)
			require.NoError(t, err)
			require.Len(t, untouched, 1)
			assert.Equal(t, int64(2), untouched[0].EntityID())
			assert.Equal(t, 1, f.api.callCount("delete:"+string(rt)))
			assert.Equal(t, "Deleted Successfully", lastAlert(t, f.svc).Title)
		})
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("events", map[string]interface{}{"id": 1, "title": "Fair"})
	f.login(t)

	err := f.svc.Delete(context.Background(), models.ResourceEvents, 1, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConfirmationRequired)
	assert.Equal(t, "Are you sure you want to delete this events?", err.Error())
	assert.Equal(t, 0, f.api.callCount("delete:"))
	items, _ := f.svc.Collection(models.ResourceEvents)
	assert.Len(t, items, 1)
}

func TestDeleteFailureLeavesCollection(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("personnel", map[string]interface{}{"id": 1, "first_name": "Ana"})
	f.login(t)
	f.api.deleteErr = appErrors.Clone(appErrors.ErrUpstream, "HTTP 500")

	require.Error(t, f.svc.Delete(context.Background(), models.ResourcePersonnel, 1, true))
	items, _ := f.svc.Collection(models.ResourcePersonnel)
	assert.Len(t, items, 1)
	alert := lastAlert(t, f.svc)
	assert.Equal(t, "Delete Failed", alert.Title)
	assert.Equal(t, models.AlertError, alert.Type)
}

func TestDeleteUnknownTypeSurfacesAsError(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)

	err := f.svc.Delete(context.Background(), models.ResourceType("admissions-dates"), 1, true)
	assert.ErrorIs(t, err, appErrors.ErrUnknownResource)
	alert := lastAlert(t, f.svc)
	assert.Equal(t, "Delete Failed", alert.Title)
	assert.Equal(t, "Failed to delete admissions dates: Unknown type: admissions-dates", alert.Message)
}

func TestLoadAllDataSessionExpiry(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	f.api.listErr["departments"] = appErrors.Clone(appErrors.ErrUnauthorized, "Authentication required")

	err := f.svc.LoadAllData(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	assert.Equal(t, models.AuthUnauthenticated, f.svc.Phase())
	assert.Nil(t, f.svc.CurrentUser())
	assert.True(t, f.sessions.marker.Empty())
	state := f.svc.Snapshot()
	assert.Equal(t, sessionExpiredMessage, state.Error)
	alert := lastAlert(t, f.svc)
	assert.Equal(t, models.AlertWarning, alert.Type)
	assert.Equal(t, "Session expired", alert.Title)
}

func TestLoadAllDataFailSoft(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("events", map[string]interface{}{"id": 1, "title": "Fair"})
	f.api.seed("personnel", map[string]interface{}{"id": 1, "first_name": "Ana"})
	f.api.listErr["achievements"] = appErrors.Clone(appErrors.ErrUpstream, "boom")

	require.True(t, f.svc.Init(context.Background()))

	events, _ := f.svc.Collection(models.ResourceEvents)
	personnel, _ := f.svc.Collection(models.ResourcePersonnel)
	assert.Len(t, events, 1)
	assert.Len(t, personnel, 1)
	assert.Equal(t, models.AuthAuthenticated, f.svc.Phase())

	state := f.svc.Snapshot()
	assert.Equal(t, "Failed to load data: boom", state.Error)
	alert := lastAlert(t, f.svc)
	assert.Equal(t, "Data Load Failed", alert.Title)
	assert.Equal(t, models.AlertError, alert.Type)

	delete(f.api.listErr, "achievements")
	require.NoError(t, f.svc.LoadAllData(context.Background()))
	assert.Empty(t, f.svc.Snapshot().Error)
}

func TestSelectTabClearsForm(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceAcademicPrograms)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.UpdateForm(map[string]interface{}{"title": "BSIT", "duration_years": "4"}))

	require.NoError(t, f.svc.SelectTab(string(models.ResourceEvents)))
	state := f.svc.Snapshot()
	assert.False(t, state.Form.Open)
	assert.Empty(t, state.Form.Data)

	require.NoError(t, f.svc.OpenCreate())
	assert.Empty(t, f.svc.Snapshot().Form.Data)
	assert.Equal(t, "Creating new events", lastAlert(t, f.svc).Message)
}

func TestSelectUnknownTab(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	assert.ErrorIs(t, f.svc.SelectTab("admissions-dates"), appErrors.ErrValidation)
	assert.Equal(t, models.TabDashboard, f.svc.Snapshot().ActiveTab)
}

func TestFormOperationsNeedAResourceTab(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	assert.ErrorIs(t, f.svc.OpenCreate(), appErrors.ErrValidation)
	assert.ErrorIs(t, f.svc.SetField("title", "x"), appErrors.ErrValidation)
	assert.ErrorIs(t, f.svc.Submit(context.Background()), appErrors.ErrValidation)
}

func TestCancelFormDropsData(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceEvents)))
	require.NoError(t, f.svc.OpenCreate())
	require.NoError(t, f.svc.SetField("title", "Fair"))
	f.svc.CancelForm()

	state := f.svc.Snapshot()
	assert.False(t, state.Form.Open)
	assert.Empty(t, state.Form.Data)
}

func TestLogoutIsBestEffort(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	f.api.logoutErr = appErrors.Clone(appErrors.ErrUpstream, "network error")

	f.svc.Logout(context.Background())

	assert.Equal(t, models.AuthUnauthenticated, f.svc.Phase())
	assert.True(t, f.sessions.marker.Empty())
	alert := lastAlert(t, f.svc)
	assert.Equal(t, "Logged out", alert.Title)
	assert.Equal(t, models.AlertInfo, alert.Type)

	f.svc.Logout(context.Background())
	assert.True(t, f.sessions.marker.Empty())
}

func TestVerifySessionExpiresOnUnauthenticatedAnswer(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)

	require.NoError(t, f.svc.VerifySession(context.Background()))
	assert.Equal(t, models.AuthAuthenticated, f.svc.Phase())

	f.api.checkErr = appErrors.Clone(appErrors.ErrUpstream, "network error")
	assert.Error(t, f.svc.VerifySession(context.Background()))
	assert.Equal(t, models.AuthAuthenticated, f.svc.Phase())

	f.api.checkErr = nil
	f.api.authenticated = false
	assert.ErrorIs(t, f.svc.VerifySession(context.Background()), appErrors.ErrUnauthorized)
	assert.Equal(t, models.AuthUnauthenticated, f.svc.Phase())
	assert.Equal(t, "Session expired", lastAlert(t, f.svc).Title)
}

func TestSnapshotRendersActiveTable(t *testing.T) {
	f := newAdminFixture(t)
	f.api.seed("events", map[string]interface{}{"id": 1, "title": "Fair", "event_date": "2026-03-31", "start_time": "09:00"})
	f.login(t)
	require.NoError(t, f.svc.SelectTab(string(models.ResourceEvents)))

	state := f.svc.Snapshot()
	require.NotNil(t, state.Table)
	assert.Equal(t, []string{"Title", "Date", "Time", "Location", "Status"}, state.Table.Headers)
	require.Len(t, state.Table.Rows, 1)
	assert.Equal(t, []string{"Fair", "2026-03-31", "09:00 - N/A", "TBA", "Inactive"}, state.Table.Rows[0].Cells)

	counts := map[models.ResourceType]int{}
	for _, c := range state.Dashboard {
		counts[c.Type] = c.Count
	}
	assert.Equal(t, 1, counts[models.ResourceEvents])
	assert.Equal(t, 0, counts[models.ResourcePersonnel])
}

func TestWritesNotifyContentChange(t *testing.T) {
	api := newFakeContentAPI()
	api.seed("events", map[string]interface{}{"id": 1, "title": "Fair"})
	changes := 0
	svc := NewAdminService(AdminServiceConfig{
		API:             api,
		Sessions:        &memorySessions{},
		OnContentChange: func(context.Context) { changes++ },
	})
	require.True(t, svc.Init(context.Background()))

	require.NoError(t, svc.SelectTab(string(models.ResourceEvents)))
	require.NoError(t, svc.OpenCreate())
	require.NoError(t, svc.SetField("title", "Orientation"))
	require.NoError(t, svc.Submit(context.Background()))
	require.NoError(t, svc.Delete(context.Background(), models.ResourceEvents, 1, true))
	assert.Error(t, svc.Delete(context.Background(), models.ResourceEvents, 1, false))

	assert.Equal(t, 2, changes)
}
