package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal/internal/models"
	"github.com/noah-isme/campus-portal/pkg/jobs"
)

const activityJobType = "activity"

type activityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error)
}

// ActivityService records console operations asynchronously through a retrying job queue.
type ActivityService struct {
	repo   activityRepository
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewActivityService wires the repository behind a job queue. Call Start before recording.
func NewActivityService(repo activityRepository, cfg jobs.QueueConfig, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	s := &ActivityService{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("activity", s.handle, cfg)
	return s
}

// Start launches the workers.
func (s *ActivityService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop drains the workers.
func (s *ActivityService) Stop() { s.queue.Stop() }

// Record enqueues an entry without blocking; a full queue drops the entry with a warning.
func (s *ActivityService) Record(entry models.ActivityLog) {
	if s == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := s.queue.TryEnqueue(jobs.Job{ID: entry.ID, Type: activityJobType, Payload: entry}); err != nil {
		s.logger.Warn("activity entry dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}

// List returns recent entries.
func (s *ActivityService) List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ActivityLog{}
	}
	return entries, nil
}

func (s *ActivityService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.ActivityLog)
	if !ok {
		return fmt.Errorf("unexpected activity payload %T", job.Payload)
	}
	return s.repo.Create(ctx, &entry)
}
