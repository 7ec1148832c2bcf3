package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

type sessionVerifier interface {
	VerifySession(ctx context.Context) error
}

// SessionHeartbeat periodically re-checks the content API session so an expired session
// is noticed without waiting for the next operator action.
type SessionHeartbeat struct {
	cron     *cron.Cron
	verifier sessionVerifier
	schedule string
	timeout  time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSessionHeartbeat constructs the heartbeat; schedule uses cron syntax or descriptors
// such as "@every 5m".
func NewSessionHeartbeat(verifier sessionVerifier, schedule string, metrics *MetricsService, logger *zap.Logger) *SessionHeartbeat {
	if schedule == "" {
		schedule = "@every 5m"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHeartbeat{
		cron:     cron.New(),
		verifier: verifier,
		schedule: schedule,
		timeout:  30 * time.Second,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start registers the job and starts the scheduler.
func (h *SessionHeartbeat) Start() error {
	if _, err := h.cron.AddFunc(h.schedule, h.Beat); err != nil {
		return fmt.Errorf("register session heartbeat %q: %w", h.schedule, err)
	}
	h.cron.Start()
	h.logger.Info("session heartbeat started", zap.String("schedule", h.schedule))
	return nil
}

// Stop waits for a running beat to finish.
func (h *SessionHeartbeat) Stop() {
	<-h.cron.Stop().Done()
	h.logger.Info("session heartbeat stopped")
}

// Beat runs one verification.
func (h *SessionHeartbeat) Beat() {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err := h.verifier.VerifySession(ctx)
	switch {
	case err == nil:
		h.metrics.RecordSessionCheck("ok")
	case appErrors.HasCode(err, appErrors.ErrUnauthorized.Code):
		h.metrics.RecordSessionCheck("expired")
		h.logger.Info("console session expired")
	default:
		h.metrics.RecordSessionCheck("error")
		h.logger.Warn("session heartbeat failed", zap.Error(err))
	}
}
