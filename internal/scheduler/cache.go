package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	cacheRebuildJobName = "boxscore_cache_rebuild"
	cacheRebuildTimeout = 5 * time.Minute
)

// Rebuilder recomputes the cached box score of every game.
type Rebuilder interface {
	RebuildAll(ctx context.Context) (int, error)
}

// RegisterCacheRebuildJob schedules rebuilder on svc. Runs never overlap.
func RegisterCacheRebuildJob(svc *Service, rebuilder Rebuilder, cronExpr string) (gocron.Job, error) {
	if rebuilder == nil {
		return nil, fmt.Errorf("cache rebuild job requires a rebuilder")
	}

	jobLogger := log.With().
		Str("component", "cache_rebuild_job").
		Str("job_name", cacheRebuildJobName).
		Logger()

	job, err := svc.AddJob(cacheRebuildJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheRebuildTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		started := time.Now()
		games, err := rebuilder.RebuildAll(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Int("games", games).Msg("Box score cache rebuild failed")
			return
		}
		jobLogger.Info().Int("games", games).Dur("took", time.Since(started)).Msg("Box score cache rebuilt")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return nil, fmt.Errorf("add cache rebuild job: %w", err)
	}
	return job, nil
}
