package services

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/repositories"
)

// CleanupService periodically evicts expired datasets from the registry.
type CleanupService struct {
	cron *cron.Cron
	repo *repositories.DatasetRepo
}

func NewCleanupService(repo *repositories.DatasetRepo) *CleanupService {
	return &CleanupService{
		cron: cron.New(),
		repo: repo,
	}
}

// Start registers the sweep job and starts the scheduler.
// Runs every 5 minutes; expired datasets are also invisible to Get
// before the sweep, so the interval is not latency-sensitive.
func (s *CleanupService) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		removed := s.repo.DeleteExpired()
		if removed > 0 {
			log.Info().Int("removed", removed).Msg("🧹 Evicted expired datasets")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Info().Msg("⏰ Dataset cleanup scheduler started")
	return nil
}

func (s *CleanupService) Stop() {
	s.cron.Stop()
	log.Info().Msg("⏰ Dataset cleanup scheduler stopped")
}
