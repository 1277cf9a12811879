// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"questchain/models"
)

// AvailabilityChecker re-runs wallet detection. Implemented by *wallet.Session.
type AvailabilityChecker interface {
	CheckAvailableWallets(ctx context.Context) models.Availability
}

type SchedulerConfig struct {
	WalletRefresh  time.Duration
	LeaderboardLog time.Duration
	LeaderboardTop int
}

type scheduledJob struct {
	name       string
	definition gocron.JobDefinition
	task       gocron.Task
	options    []gocron.JobOption
}

// StartScheduler registers the periodic jobs and starts the scheduler. Zero intervals disable a job.
// The caller owns shutdown.
func StartScheduler(ctx context.Context, cfg SchedulerConfig, wallets AvailabilityChecker, store *QuestStore) (gocron.Scheduler, error) {
	var jobs []scheduledJob

	if cfg.WalletRefresh > 0 && wallets != nil {
		jobs = append(jobs, scheduledJob{
			name:       "wallet refresh",
			definition: gocron.DurationJob(cfg.WalletRefresh),
			task: gocron.NewTask(func() {
				a := wallets.CheckAvailableWallets(ctx)
				log.Debug().
					Bool("keplr", a.Keplr).
					Bool("leap", a.Leap).
					Bool("metamask", a.MetaMask).
					Msg("[Scheduler] wallet availability refreshed")
			}),
			options: []gocron.JobOption{gocron.WithSingletonMode(gocron.LimitModeReschedule)},
		})
	}

	if cfg.LeaderboardLog > 0 && store != nil {
		top := cfg.LeaderboardTop
		if top <= 0 {
			top = 10
		}
		jobs = append(jobs, scheduledJob{
			name:       "leaderboard",
			definition: gocron.DurationJob(cfg.LeaderboardLog),
			task:       gocron.NewTask(func() { logLeaderboard(store, top) }),
		})
	}

	return startJobs(jobs)
}

// startJobs starts a scheduler running jobs. A scheduler that fails to take every job is shut down.
func startJobs(jobs []scheduledJob) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	for _, j := range jobs {
		if _, err := sched.NewJob(j.definition, j.task, j.options...); err != nil {
			if serr := sched.Shutdown(); serr != nil {
				log.Warn().Err(serr).Msg("[Scheduler] shutdown after failed registration")
			}
			return nil, fmt.Errorf("register %s job: %w", j.name, err)
		}
	}
	sched.Start()
	return sched, nil
}

func logLeaderboard(store *QuestStore, top int) {
	entries := store.LeaderboardEntries()
	if len(entries) == 0 {
		log.Info().Msg("[Scheduler] leaderboard empty")
		return
	}
	for _, e := range entries[:min(top, len(entries))] {
		log.Info().
			Int("rank", e.Rank).
			Str("address", e.Address).
			Int64("total_xp", e.TotalXP).
			Str("level", e.LevelName).
			Msg("[Scheduler] leaderboard")
	}
}
