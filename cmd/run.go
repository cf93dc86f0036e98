package main

import (
	"context"
	"errors"
	"sync"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/repositories"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	"github.com/ttufts/youtube-smart-playlists/internal/tasks"
	"github.com/ttufts/youtube-smart-playlists/internal/ui"
	"github.com/urfave/cli/v3"
)

// Run loads the rules and uploads cache, then sweeps on a fixed delay until the context is cancelled.
//
// With --once it performs a single sweep, streaming progress, and returns the sweep's error.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	rules, err := models.LoadRules(cmd.String("smart-playlists"))
	if err != nil {
		return err
	}

	manager, cache, err := r.buildManager(ctx, cmd)
	if err != nil {
		return err
	}
	r.logger.Info("loaded smart playlists", "rules", len(rules), "channels", len(rules.Channels()), "cached", cache.Len())

	sweeper := tasks.NewSweeper(manager, rules, r.logger)
	if !cmd.Bool("no-history") {
		if recorder, closeDB := r.openHistory(); recorder != nil {
			defer closeDB()
			sweeper.Recorder = recorder
		}
	}

	interval := r.config.Schedule.Interval.Duration
	if d := cmd.Duration("interval"); d > 0 {
		interval = d
	}
	scheduler := tasks.NewScheduler(interval, sweeper.Sweep, r.logger)

	if cmd.Bool("once") {
		progress := make(chan tasks.ProgressUpdate, 64)
		sweeper.Progress = progress

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for update := range progress {
				r.writePlain("%s\n", ui.Help(update.Message))
			}
		}()

		result, err := scheduler.RunOnce(ctx)
		close(progress)
		wg.Wait()

		r.writePlain("%s", ui.SweepReport(result, err))
		return err
	}

	scheduler.OnResult = func(result *tasks.SweepResult, err error) {
		if ctx.Err() != nil {
			return
		}
		r.writePlain("%s", ui.SweepReport(result, err))
	}

	r.logger.Info("starting sweep loop", "interval", interval)
	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	r.logger.Info("stopped")
	return nil
}

// openHistory opens the history database. Failures are logged and disable recording.
func (r *Runner) openHistory() (*repositories.AdditionRepository, func()) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("history disabled, could not open database", "path", r.config.Database.Path, "error", err)
		return nil, nil
	}
	return repositories.NewAdditionRepository(db), func() { db.Close() }
}
