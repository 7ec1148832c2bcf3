package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal/internal/models"
)

func TestMemorySessionStoreSaveClearIdempotent(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	marker, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, marker.Empty())

	saved := models.SessionMarker{Raw: json.RawMessage(`{"id":1,"username":"admin"}`), Verified: true}
	require.NoError(t, store.Save(ctx, saved))
	require.NoError(t, store.Save(ctx, saved))

	marker, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, marker)

	user, err := marker.User()
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	marker, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, marker.Empty())
}

func TestSessionMarkerEncodingDropsVerified(t *testing.T) {
	marker := models.SessionMarker{Raw: json.RawMessage(`{"id":1,"username":"admin"}`), Verified: true}

	payload, err := json.Marshal(marker)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "verified")

	var restored models.SessionMarker
	require.NoError(t, json.Unmarshal([]byte(`{"raw":{"id":1,"username":"admin"},"verified":true}`), &restored))
	assert.False(t, restored.Verified)
	user, err := restored.User()
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}
