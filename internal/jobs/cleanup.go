package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hackforge/portal-server-go/internal/repository"
)

// CleanupJob periodically deletes team session rows that are past expiry.
// Verification never deletes rows itself, so without this sweep the table
// would only ever grow.
type CleanupJob struct {
	teamSessionRepo repository.TeamSessionRepository
	interval        time.Duration
	done            chan struct{}
}

func NewCleanupJob(teamSessionRepo repository.TeamSessionRepository, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		teamSessionRepo: teamSessionRepo,
		interval:        interval,
		done:            make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.teamSessionRepo.DeleteExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to cleanup team sessions")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("cleaned up team sessions")
	}
}
