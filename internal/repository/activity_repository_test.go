package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal/internal/models"
)

func newActivityRepoMock(t *testing.T) (*ActivityRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewActivityRepository(sqlxDB), mock, func() {
		sqlxDB.Close()
	}
}

func TestActivityRepositoryCreate(t *testing.T) {
	repo, mock, cleanup := newActivityRepoMock(t)
	defer cleanup()

	id := int64(12)
	mock.ExpectExec("INSERT INTO console_activity").
		WithArgs("act-1", "admin", models.ActivityDelete, "events", &id, []byte(`{"title":"Fair"}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.ActivityLog{
		ID:         "act-1",
		Actor:      "admin",
		Action:     models.ActivityDelete,
		Resource:   "events",
		ResourceID: &id,
		Details:    []byte(`{"title":"Fair"}`),
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepositoryListFiltersByResource(t *testing.T) {
	repo, mock, cleanup := newActivityRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "actor", "action", "resource", "resource_id", "details", "created_at"}).
		AddRow("act-2", "admin", models.ActivityCreate, "events", int64(3), nil, time.Now()).
		AddRow("act-1", "admin", models.ActivityUpdate, "events", int64(2), []byte(`{}`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM console_activity WHERE resource = $1 ORDER BY created_at DESC LIMIT $2")).
		WithArgs("events", 10).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), models.ActivityFilter{Resource: "events", Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "act-2", entries[0].ID)
	require.NotNil(t, entries[0].ResourceID)
	assert.Equal(t, int64(3), *entries[0].ResourceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepositoryListDefaultsLimit(t *testing.T) {
	repo, mock, cleanup := newActivityRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM console_activity ORDER BY created_at DESC LIMIT $1")).
		WithArgs(defaultActivityLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "resource", "resource_id", "details", "created_at"}))

	entries, err := repo.List(context.Background(), models.ActivityFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
