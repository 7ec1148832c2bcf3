package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal/internal/models"
	"github.com/noah-isme/campus-portal/pkg/jobs"
)

type activityRepoStub struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	written chan struct{}
}

func (r *activityRepoStub) Create(_ context.Context, entry *models.ActivityLog) error {
	r.mu.Lock()
	r.entries = append(r.entries, *entry)
	r.mu.Unlock()
	r.written <- struct{}{}
	return nil
}

func (r *activityRepoStub) List(context.Context, models.ActivityFilter) ([]models.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, nil
}

func TestActivityRecordIsPersistedAsync(t *testing.T) {
	repo := &activityRepoStub{written: make(chan struct{}, 4)}
	svc := NewActivityService(repo, jobs.QueueConfig{Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Record(models.ActivityLog{Actor: "admin", Action: models.ActivityDelete, Resource: "events"})

	select {
	case <-repo.written:
	case <-time.After(2 * time.Second):
		t.Fatal("activity entry not written")
	}
	entries, err := svc.List(context.Background(), models.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, models.ActivityDelete, entries[0].Action)
}

func TestActivityListNeverNil(t *testing.T) {
	svc := NewActivityService(&activityRepoStub{}, jobs.QueueConfig{}, nil)
	entries, err := svc.List(context.Background(), models.ActivityFilter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
}

func TestActivityRecordOnNilServiceIsNoop(t *testing.T) {
	var svc *ActivityService
	svc.Record(models.ActivityLog{Action: models.ActivityLogin})
}

func TestAdminOperationsAreRecorded(t *testing.T) {
	repo := &activityRepoStub{written: make(chan struct{}, 8)}
	activity := NewActivityService(repo, jobs.QueueConfig{Workers: 1}, nil)
	activity.Start(context.Background())
	defer activity.Stop()

	api := newFakeContentAPI()
	api.seed("events", map[string]interface{}{"id": 1, "title": "Fair"})
	svc := NewAdminService(AdminServiceConfig{API: api, Sessions: &memorySessions{}, Activity: activity})
	require.True(t, svc.Init(context.Background()))
	require.NoError(t, svc.Delete(context.Background(), models.ResourceEvents, 1, true))

	select {
	case <-repo.written:
	case <-time.After(2 * time.Second):
		t.Fatal("delete not recorded")
	}
	entries, _ := activity.List(context.Background(), models.ActivityFilter{})
	require.Len(t, entries, 1)
	assert.Equal(t, "admin", entries[0].Actor)
	assert.Equal(t, "events", entries[0].Resource)
	require.NotNil(t, entries[0].ResourceID)
	assert.Equal(t, int64(1), *entries[0].ResourceID)
}
