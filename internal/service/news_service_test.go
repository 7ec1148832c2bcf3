package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

// mapCache is a CacheRepository keeping JSON payloads in a map.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.deleted = append(c.deleted, key)
		}
	}
	return nil
}

func rawItems(t *testing.T, items ...interface{}) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		require.NoError(t, err)
		out = append(out, raw)
	}
	return out
}

func newNewsFixture(t *testing.T, cache *CacheService) (*NewsService, *fakeContentAPI) {
	t.Helper()
	api := newFakeContentAPI()
	svc := NewNewsService(api, cache, nil)
	svc.now = newFakeClock().Now
	return svc, api
}

func TestNewsPageSectionsFailIndependently(t *testing.T) {
	svc, api := newNewsFixture(t, nil)
	api.publicErr[SectionEvents] = appErrors.Clone(appErrors.ErrUpstream, "HTTP 500")
	api.public[SectionAnnouncements] = rawItems(t, models.Announcement{ID: 1, Title: "Enrollment", Date: "2026-03-02"})
	api.public[SectionAchievements] = rawItems(t, models.Achievement{ID: 4, Title: "Regional Champion"})

	page, err := svc.Page(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Failed to load events", page.CalendarError)
	assert.Equal(t, "2026-03", page.Calendar.Cursor)
	assert.Empty(t, page.Announcements.Error)
	require.Len(t, page.Announcements.Items, 1)
	assert.Equal(t, "Enrollment", page.Announcements.Items[0].Title)
	assert.Empty(t, page.Achievements.Error)
	require.Len(t, page.Achievements.Items, 1)

	day := dayOf(t, page.Calendar, "2026-03-02")
	require.Len(t, day.Announcements, 1)
}

func TestNewsPageMalformedSectionFails(t *testing.T) {
	svc, api := newNewsFixture(t, nil)
	api.public[SectionAchievements] = []json.RawMessage{json.RawMessage(`"oops"`)}

	page, err := svc.Page(context.Background(), "2026-04")
	require.NoError(t, err)
	assert.Equal(t, "Failed to load achievements", page.Achievements.Error)
	assert.NotNil(t, page.Achievements.Items)
	assert.Empty(t, page.Achievements.Items)
	assert.Equal(t, "APRIL 2026", page.Calendar.Label)
}

func TestNewsPageRejectsBadMonth(t *testing.T) {
	svc, _ := newNewsFixture(t, nil)
	_, err := svc.Page(context.Background(), "March")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestNewsDetailEvent(t *testing.T) {
	svc, api := newNewsFixture(t, nil)
	api.public[SectionEvents] = rawItems(t, models.Event{
		ID:          3,
		Title:       "Founders Day",
		EventDate:   "2026-03-31",
		StartTime:   "08:00",
		EndTime:     "17:00",
		Location:    "Gym",
		Description: "short",
		Details:     "Opening program\n\n  Parade <script>alert(1)</script>\nLunch",
	})

	view, err := svc.Detail(context.Background(), SectionEvents, 3)
	require.NoError(t, err)
	assert.Equal(t, "March 31, 2026", view.FormattedDate)
	assert.Equal(t, "08:00 - 17:00", view.Time)
	assert.Equal(t, "Gym", view.Location)
	require.NotNil(t, view.ShortDate)
	assert.Equal(t, models.ShortDate{Day: "31", Month: "MAR"}, *view.ShortDate)
	assert.Equal(t, []string{"Opening program", "Parade <script>alert(1)</script>", "Lunch"}, view.Paragraphs)
	assert.Contains(t, view.HTML, "<br>")
	assert.NotContains(t, view.HTML, "<script>")
}

func TestNewsDetailFallsBackToSummary(t *testing.T) {
	svc, api := newNewsFixture(t, nil)
	api.public[SectionAchievements] = rawItems(t, models.Achievement{
		ID: 8, Title: "Press", AchievementDate: "bad", Category: "Sports", Description: "Won the meet",
	})

	view, err := svc.Detail(context.Background(), SectionAchievements, 8)
	require.NoError(t, err)
	assert.Equal(t, "bad", view.FormattedDate)
	assert.Equal(t, "Sports", view.Category)
	assert.Equal(t, []string{"Won the meet"}, view.Paragraphs)
	assert.Nil(t, view.ShortDate)
}

func TestNewsDetailErrors(t *testing.T) {
	svc, api := newNewsFixture(t, nil)
	api.public[SectionAnnouncements] = rawItems(t, models.Announcement{ID: 1, Title: "Enrollment"})

	_, err := svc.Detail(context.Background(), SectionAnnouncements, 2)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Detail(context.Background(), "personnel", 1)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	api.publicErr[SectionEvents] = appErrors.Clone(appErrors.ErrUpstream, "HTTP 502")
	_, err = svc.Detail(context.Background(), SectionEvents, 1)
	assert.ErrorIs(t, err, appErrors.ErrUpstream)
}

func TestNewsSectionsAreCached(t *testing.T) {
	repo := newMapCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	svc, api := newNewsFixture(t, cache)
	api.public[SectionAnnouncements] = rawItems(t, models.Announcement{ID: 1, Title: "Enrollment"})

	_, err := svc.Page(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.Page(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount("public:announcements"))

	svc.Invalidate(context.Background())
	assert.Contains(t, repo.deleted, "news:announcements")
	_, err = svc.Page(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, api.callCount("public:announcements"))
}

func TestParagraphsAndDates(t *testing.T) {
	assert.Equal(t, []string{}, Paragraphs("  \n\n"))
	assert.Equal(t, []string{"a", "b"}, Paragraphs(" a \r\n\nb"))
	assert.Equal(t, "January 5, 2026", FormatLongDate("2026-01-05T10:00:00Z"))
	assert.Equal(t, models.ShortDate{Day: "01", Month: "JAN"}, ShortDate(""))
	assert.Equal(t, models.ShortDate{Day: "5", Month: "JAN"}, ShortDate("2026-01-05"))
}
