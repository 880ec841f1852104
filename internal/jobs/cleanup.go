package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/libertysafety/liberty-server-go/internal/repository"
)

const (
	// Read notifications older than this are purged.
	notificationRetention = 30 * 24 * time.Hour
	// Rooms whose incident closed this long ago go inactive.
	staleChatRoomAge = 7 * 24 * time.Hour
)

// CleanupJob periodically prunes read notifications past their retention
// and deactivates chat rooms whose incidents have long been closed.
type CleanupJob struct {
	notificationRepo repository.NotificationRepository
	roomRepo         repository.ChatRoomRepository
	interval         time.Duration
	done             chan struct{}
}

func NewCleanupJob(
	notificationRepo repository.NotificationRepository,
	roomRepo repository.ChatRoomRepository,
	interval time.Duration,
) *CleanupJob {
	return &CleanupJob{
		notificationRepo: notificationRepo,
		roomRepo:         roomRepo,
		interval:         interval,
		done:             make(chan struct{}),
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

	j.runCleanup(ctx, "read notifications", func(ctx context.Context) (int64, error) {
		return j.notificationRepo.DeleteReadOlderThan(ctx, time.Now().Add(-notificationRetention))
	})
	j.runCleanup(ctx, "stale chat rooms", func(ctx context.Context) (int64, error) {
		return j.roomRepo.DeactivateStale(ctx, time.Now().Add(-staleChatRoomAge))
	})
}

func (j *CleanupJob) runCleanup(ctx context.Context, name string, fn func(context.Context) (int64, error)) {
	count, err := fn(ctx)
	if err != nil {
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
	} else if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
