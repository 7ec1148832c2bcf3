package service

import (
	"sync"
	"time"

	"github.com/noah-isme/campus-portal/internal/models"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d. The default uses time.AfterFunc; tests inject a fake clock.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// AlertQueueConfig configures an AlertQueue.
type AlertQueueConfig struct {
	DefaultDuration time.Duration
	Scheduler       Scheduler
	Now             func() time.Time
	Metrics         *MetricsService
}

// AlertQueue holds operator notifications in insertion order. Every alert owns one timer
// keyed by its id; dismissing an alert stops only that timer.
type AlertQueue struct {
	mu        sync.Mutex
	alerts    []models.Alert
	timers    map[int64]Timer
	nextID    int64
	duration  time.Duration
	scheduler Scheduler
	now       func() time.Time
	metrics   *MetricsService
}

// NewAlertQueue constructs an empty queue.
func NewAlertQueue(cfg AlertQueueConfig) *AlertQueue {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = 5 * time.Second
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = wallScheduler{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AlertQueue{
		timers:    make(map[int64]Timer),
		duration:  cfg.DefaultDuration,
		scheduler: cfg.Scheduler,
		now:       cfg.Now,
		metrics:   cfg.Metrics,
	}
}

// Push enqueues an alert with the default duration.
func (q *AlertQueue) Push(t models.AlertType, title, message string) models.Alert {
	return q.PushFor(t, title, message, q.duration)
}

// PushFor enqueues an alert that removes itself after d.
func (q *AlertQueue) PushFor(t models.AlertType, title, message string, d time.Duration) models.Alert {
	if d <= 0 {
		d = q.duration
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	alert := models.Alert{
		ID:         q.nextID,
		Type:       t,
		Title:      title,
		Message:    message,
		Timestamp:  q.now().UTC(),
		Duration:   d,
		DurationMS: d.Milliseconds(),
	}
	q.nextID++
	q.alerts = append(q.alerts, alert)

	id := alert.ID
	q.timers[id] = q.scheduler.AfterFunc(d, func() { q.expire(id) })
	q.metrics.RecordAlert(t)
	return alert
}

// Dismiss removes one alert early and cancels its timer. It reports whether the alert was live.
func (q *AlertQueue) Dismiss(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	return q.remove(id)
}

// Clear removes every alert and cancels all timers.
func (q *AlertQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.alerts = nil
}

// List returns the live alerts in insertion order.
func (q *AlertQueue) List() []models.Alert {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Alert, len(q.alerts))
	copy(out, q.alerts)
	return out
}

// Pending reports how many timers are still armed.
func (q *AlertQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

func (q *AlertQueue) expire(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	// A timer that fired after Dismiss or Clear no longer owns an entry.
	if _, ok := q.timers[id]; !ok {
		return
	}
	delete(q.timers, id)
	q.remove(id)
}

func (q *AlertQueue) remove(id int64) bool {
	for i, alert := range q.alerts {
		if alert.ID == id {
			q.alerts = append(q.alerts[:i], q.alerts[i+1:]...)
			return true
		}
	}
	return false
}
