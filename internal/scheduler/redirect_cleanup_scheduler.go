package scheduler

import (
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RedirectCleanupScheduler deactivates expired redirect rules on a schedule.
// Lookup already filters by expires_at, so this is housekeeping that keeps
// the admin list and the hot query small.
type RedirectCleanupScheduler struct {
	cron            *cron.Cron
	redirectService service.RedirectService
	schedule        string
}

func NewRedirectCleanupScheduler(redirectService service.RedirectService, schedule string) *RedirectCleanupScheduler {
	return &RedirectCleanupScheduler{
		cron:            cron.New(),
		redirectService: redirectService,
		schedule:        schedule,
	}
}

func (s *RedirectCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled redirect rule cleanup", nil)

		count, err := s.redirectService.DeactivateExpiredRules(time.Now())
		if err != nil {
			logger.Error("Failed to deactivate expired redirect rules", err)
			return
		}

		logger.Info("Redirect rule cleanup finished", map[string]interface{}{
			"deactivated": count,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for redirect cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Redirect cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})

	return nil
}

func (s *RedirectCleanupScheduler) Stop() {
	logger.Info("Stopping redirect cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Redirect cleanup scheduler stopped", nil)
}
