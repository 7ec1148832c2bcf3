package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

const (
	calendarDayLayout   = "2006-01-02"
	calendarMonthLayout = "2006-01"
	maxItemsPerCell     = 3
)

var (
	calendarWeekdays = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}
	itemDateLayouts  = []string{calendarDayLayout, time.RFC3339Nano, "2006-01-02T15:04:05"}
)

// ParseItemDate reads the calendar day of an event or announcement date. Timestamps keep
// the day as written, without converting zones.
func ParseItemDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range itemDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// PrevMonth moves the cursor one month back.
func PrevMonth(cursor time.Time) time.Time { return MonthStart(cursor).AddDate(0, -1, 0) }

// NextMonth moves the cursor one month forward.
func NextMonth(cursor time.Time) time.Time { return MonthStart(cursor).AddDate(0, 1, 0) }

// MonthLabel renders e.g. "MARCH 2026".
func MonthLabel(cursor time.Time) string {
	return strings.ToUpper(MonthStart(cursor).Format("January 2006"))
}

// ParseMonthCursor reads a YYYY-MM cursor; blank means the month containing now.
func ParseMonthCursor(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MonthStart(now), nil
	}
	t, err := time.Parse(calendarMonthLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("month must be YYYY-MM, got %q", raw))
	}
	return t, nil
}

// BuildMonth buckets events and announcements into the full-week grid around cursor's
// month. Items with unparsable dates are left out; they never fail the build.
func BuildMonth(cursor time.Time, events []models.Event, announcements []models.Announcement, now time.Time) models.CalendarMonth {
	first := MonthStart(cursor)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	eventsByDay := make(map[string][]models.CalendarItem)
	for _, evt := range events {
		if day, ok := ParseItemDate(evt.EventDate); ok {
			key := day.Format(calendarDayLayout)
			eventsByDay[key] = append(eventsByDay[key], models.CalendarItem{ID: evt.ID, Title: evt.Title, Kind: "event"})
		}
	}
	annsByDay := make(map[string][]models.CalendarItem)
	for _, ann := range announcements {
		if day, ok := ParseItemDate(ann.Date); ok {
			key := day.Format(calendarDayLayout)
			annsByDay[key] = append(annsByDay[key], models.CalendarItem{ID: ann.ID, Title: ann.Title, Kind: "announcement"})
		}
	}

	ty, tm, td := now.Date()
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	month := models.CalendarMonth{
		Cursor:   first.Format(calendarMonthLayout),
		Label:    MonthLabel(first),
		Start:    start.Format(calendarDayLayout),
		End:      end.Format(calendarDayLayout),
		Weekdays: append([]string(nil), calendarWeekdays...),
		Previous: PrevMonth(first).Format(calendarMonthLayout),
		Next:     NextMonth(first).Format(calendarMonthLayout),
		Today:    today.Format(calendarMonthLayout),
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(calendarDayLayout)
		dayEvents := eventsByDay[key]
		dayAnns := annsByDay[key]
		weekday := day.Weekday()
		inMonth := day.Month() == first.Month()
		month.Days = append(month.Days, models.CalendarDay{
			Date:                key,
			Day:                 day.Day(),
			InMonth:             inMonth,
			IsToday:             day.Equal(today),
			IsWeekend:           weekday == time.Saturday || weekday == time.Sunday,
			IsDimmed:            !inMonth,
			Events:              capItems(dayEvents),
			Announcements:       capItems(dayAnns),
			EventMarkers:        min(len(dayEvents), maxItemsPerCell),
			AnnouncementMarkers: min(len(dayAnns), maxItemsPerCell),
			MoreEvents:          max(len(dayEvents)-maxItemsPerCell, 0),
			MoreAnnouncements:   max(len(dayAnns)-maxItemsPerCell, 0),
		})
	}
	month.Weeks = len(month.Days) / 7
	return month
}

func capItems(items []models.CalendarItem) []models.CalendarItem {
	if len(items) > maxItemsPerCell {
		items = items[:maxItemsPerCell]
	}
	return append([]models.CalendarItem{}, items...)
}
