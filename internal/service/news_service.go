package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

// Public news sections, named after their content API collections.
const (
	SectionEvents        = "events"
	SectionAnnouncements = "announcements"
	SectionAchievements  = "achievements"

	newsCachePrefix = "news:"
	longDateLayout  = "January 2, 2006"
)

type publicContentAPI interface {
	PublicList(ctx context.Context, section string) ([]json.RawMessage, error)
}

// NewsService assembles the public news & events page. Each section loads on its own and a
// failed section never hides the others.
type NewsService struct {
	api      publicContentAPI
	cache    *CacheService
	markdown goldmark.Markdown
	logger   *zap.Logger
	now      func() time.Time
}

// NewNewsService constructs the service. cache may be nil.
func NewNewsService(api publicContentAPI, cache *CacheService, logger *zap.Logger) *NewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsService{
		api:   api,
		cache: cache,
		markdown: goldmark.New(
			goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
		),
		logger: logger,
		now:    time.Now,
	}
}

// Page builds the calendar for month (YYYY-MM, blank for the current month) together with
// the announcement and achievement lists.
func (s *NewsService) Page(ctx context.Context, month string) (models.NewsPage, error) {
	now := s.now()
	cursor, err := ParseMonthCursor(month, now)
	if err != nil {
		return models.NewsPage{}, err
	}

	events, eventsErr := loadSection[models.Event](ctx, s, SectionEvents)
	anns, annsErr := loadSection[models.Announcement](ctx, s, SectionAnnouncements)
	achievements, achErr := loadSection[models.Achievement](ctx, s, SectionAchievements)

	page := models.NewsPage{
		Calendar:      BuildMonth(cursor, events, anns, now),
		Announcements: models.NewsSection[models.Announcement]{Items: nonNil(anns)},
		Achievements:  models.NewsSection[models.Achievement]{Items: nonNil(achievements)},
	}
	if eventsErr != nil {
		page.CalendarError = eventsErr.Error()
	}
	if annsErr != nil {
		page.Announcements.Error = annsErr.Error()
	}
	if achErr != nil {
		page.Achievements.Error = achErr.Error()
	}
	return page, nil
}

// Detail renders the modal view of one public item.
func (s *NewsService) Detail(ctx context.Context, kind string, id int64) (models.DetailView, error) {
	switch kind {
	case SectionEvents:
		items, err := loadSection[models.Event](ctx, s, kind)
		if err != nil {
			return models.DetailView{}, err
		}
		for _, evt := range items {
			if evt.ID == id {
				return s.eventDetail(evt), nil
			}
		}
	case SectionAnnouncements:
		items, err := loadSection[models.Announcement](ctx, s, kind)
		if err != nil {
			return models.DetailView{}, err
		}
		for _, ann := range items {
			if ann.ID == id {
				return s.detail(kind, ann.ID, ann.Title, ann.Date, ann.Details, ann.Body), nil
			}
		}
	case SectionAchievements:
		items, err := loadSection[models.Achievement](ctx, s, kind)
		if err != nil {
			return models.DetailView{}, err
		}
		for _, a := range items {
			if a.ID == id {
				view := s.detail(kind, a.ID, a.Title, a.AchievementDate, a.Details, a.Description)
				view.Category = a.Category
				return view, nil
			}
		}
	default:
		return models.DetailView{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown news kind: %s", kind))
	}
	return models.DetailView{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %d not found", strings.TrimSuffix(kind, "s"), id))
}

// Invalidate drops cached sections so the next page view refetches them.
func (s *NewsService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, newsCachePrefix+"*")
}

func (s *NewsService) eventDetail(evt models.Event) models.DetailView {
	view := s.detail(SectionEvents, evt.ID, evt.Title, evt.EventDate, evt.Details, evt.Description)
	view.Location = evt.Location
	view.Time = evt.FormattedTime
	if view.Time == "" && (evt.StartTime != "" || evt.EndTime != "") {
		view.Time = strings.TrimSpace(evt.StartTime + " - " + evt.EndTime)
	}
	short := ShortDate(evt.EventDate)
	view.ShortDate = &short
	return view
}

func (s *NewsService) detail(kind string, id int64, title, date, details, fallback string) models.DetailView {
	text := fallback
	if strings.TrimSpace(details) != "" {
		text = details
	}
	return models.DetailView{
		Kind:          kind,
		ID:            id,
		Title:         title,
		FormattedDate: FormatLongDate(date),
		Paragraphs:    Paragraphs(text),
		HTML:          s.renderHTML(text),
	}
}

func (s *NewsService) renderHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		s.logger.Debug("render detail markdown", zap.Error(err))
		return ""
	}
	return buf.String()
}

func loadSection[T any](ctx context.Context, s *NewsService, section string) ([]T, error) {
	key := newsCachePrefix + section
	var items []T
	if s.cache.Get(ctx, key, &items) {
		return items, nil
	}

	failed := appErrors.Clone(appErrors.ErrUpstream, "Failed to load "+section)
	raws, err := s.api.PublicList(ctx, section)
	if err != nil {
		s.logger.Warn("load public section", zap.String("section", section), zap.Error(err))
		return nil, failed
	}
	items = make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			s.logger.Warn("decode public item", zap.String("section", section), zap.Error(err))
			return nil, failed
		}
		items = append(items, item)
	}
	s.cache.Set(ctx, key, items)
	return items, nil
}

// FormatLongDate renders a content date like "March 31, 2026"; unreadable input is returned as is.
func FormatLongDate(raw string) string {
	day, ok := ParseItemDate(raw)
	if !ok {
		return raw
	}
	return day.Format(longDateLayout)
}

// ShortDate renders the day/month badge of an event card.
func ShortDate(raw string) models.ShortDate {
	day, ok := ParseItemDate(raw)
	if !ok {
		return models.ShortDate{Day: "01", Month: "JAN"}
	}
	return models.ShortDate{Day: strconv.Itoa(day.Day()), Month: strings.ToUpper(day.Format("Jan"))}
}

// Paragraphs splits text on newlines, trimming lines and dropping blank ones.
func Paragraphs(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
