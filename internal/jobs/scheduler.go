// Package jobs manages background tasks (cron).
// scheduler.go sets the schedule: the nightly leaderboard rebuild and
// the uploads cleanup.
package jobs

import (
	"context"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/features/leaderboard"
	"studyflow.app/server/internal/features/profile"
	"studyflow.app/server/internal/storage"
)

// Scheduler manages the background tasks.
type Scheduler struct {
	cron        *cron.Cron
	leaderboard *leaderboard.Service
	profiles    *profile.Repository
	files       *storage.Disk
	retention   time.Duration
}

// NewScheduler creates the scheduler in the given timezone.
func NewScheduler(loc *time.Location, lb *leaderboard.Service, profiles *profile.Repository, files *storage.Disk, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(loc)),
		leaderboard: lb,
		profiles:    profiles,
		files:       files,
		retention:   retention,
	}
}

// Start registers and launches all background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	// Rebuild the Redis leaderboard nightly; fire-and-forget score
	// mirroring can miss writes during Redis outages.
	s.cron.AddFunc("30 0 * * *", func() {
		log.Info("[CRON] Rebuilding leaderboard")
		if err := s.leaderboard.Rebuild(ctx); err != nil {
			log.WithError(err).Error("[CRON] Leaderboard rebuild failed")
		}
	})

	// Drop orphaned uploads past the retention window. Files referenced
	// by a profile row are kept regardless of age.
	s.cron.AddFunc("0 3 * * *", func() {
		urls, err := s.profiles.ListAvatarURLs(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Uploads cleanup failed")
			return
		}
		keep := make(map[string]bool, len(urls))
		for _, u := range urls {
			keep[filepath.Base(u)] = true
		}

		removed, err := s.files.CleanupOrphans(s.retention, keep)
		if err != nil {
			log.WithError(err).Error("[CRON] Uploads cleanup failed")
			return
		}
		if removed > 0 {
			log.WithField("removed", removed).Info("[CRON] Orphaned uploads removed")
		}
	})

	s.cron.Start()
	log.Info("Job scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Job scheduler stopped")
}
