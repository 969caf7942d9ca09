package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	"github.com/wildtour/wildtour-backend/internal/favorites"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

// AvailabilityScheduler re-resolves the availability of favorited items
// against the catalog so the denormalized snapshots do not go stale.
type AvailabilityScheduler struct {
	cron      *cron.Cron
	manager   *favorites.Manager
	snapshots service.SnapshotService
}

func NewAvailabilityScheduler(manager *favorites.Manager, snapshots service.SnapshotService) *AvailabilityScheduler {
	return &AvailabilityScheduler{
		cron:      cron.New(),
		manager:   manager,
		snapshots: snapshots,
	}
}

// Start schedules the refresh every hour on the hour.
func (s *AvailabilityScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", s.refreshAll)
	if err != nil {
		logger.Error("Failed to add cron job for availability refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Availability scheduler started successfully (hourly)", nil)
	return nil
}

// Stop shuts the scheduler down.
func (s *AvailabilityScheduler) Stop() {
	logger.Info("Stopping availability scheduler...", nil)
	s.cron.Stop()
	logger.Info("Availability scheduler stopped", nil)
}

// refreshAll walks every cached store. Stores not in memory are skipped:
// their snapshots refresh on next hydration-and-use.
func (s *AvailabilityScheduler) refreshAll() {
	logger.Info("Starting scheduled availability refresh", nil)

	refreshed := 0
	s.manager.ForEach(func(userID uint, store *favorites.Store) {
		err := store.RefreshAvailability(context.Background(), s.snapshots.ResolveAvailability)
		if err != nil {
			logger.Error("Failed to refresh favorites availability", err, map[string]interface{}{
				"user_id": userID,
			})
			return
		}
		refreshed++
	})

	logger.Info("Scheduled availability refresh finished", map[string]interface{}{
		"stores_refreshed": refreshed,
	})
}
