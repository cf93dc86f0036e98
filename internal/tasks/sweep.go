package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// AdditionRecorder persists additions made by a sweep. Implemented by repositories.AdditionRepository.
type AdditionRecorder interface {
	RecordAddition(ctx context.Context, addition models.Addition) error
}

// SweepResult summarises one pass over every smart playlist rule.
type SweepResult struct {
	ID         string            `json:"id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Rules      int               `json:"rules"`
	Channels   int               `json:"channels"`   // channel scans performed
	Candidates int               `json:"candidates"` // videos published today
	Added      int               `json:"added"`
	Skipped    int               `json:"skipped"` // already present or insert failed
	Additions  []models.Addition `json:"additions"`
}

// Duration returns how long the sweep ran.
func (r *SweepResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// AddedMessage is the line logged for every video a sweep files.
func AddedMessage(a models.Addition) string {
	return fmt.Sprintf("Added %s (%s) to %s", a.Title, a.ChannelTitle, a.Rule)
}

// Sweeper files today's uploads from each rule's channels into the rule's playlist.
type Sweeper struct {
	manager *Manager
	rules   models.RuleSet
	logger  *log.Logger

	// Recorder receives every successful addition. Optional; its errors are logged and never abort a sweep.
	Recorder AdditionRecorder
	// Progress receives non-blocking progress updates. Optional.
	Progress chan<- ProgressUpdate
	// Now stamps results and additions. Defaults to time.Now.
	Now func() time.Time
}

// NewSweeper creates a Sweeper over rules.
func NewSweeper(manager *Manager, rules models.RuleSet, logger *log.Logger) *Sweeper {
	return &Sweeper{manager: manager, rules: rules, logger: logger, Now: time.Now}
}

func (s *Sweeper) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Sweep runs one full pass over the rules in name order.
//
// A rule or channel with nothing new is not an error. A listing or resolution failure stops the sweep;
// the partial result is returned alongside the error.
func (s *Sweeper) Sweep(ctx context.Context) (*SweepResult, error) {
	rules := s.rules.Rules()
	result := &SweepResult{
		ID:        shared.GenerateID(),
		StartedAt: s.now(),
		Rules:     len(rules),
		Additions: []models.Addition{},
	}
	defer func() { result.FinishedAt = s.now() }()

	logger := s.logger.With("sweep", result.ID)
	logger.Debug("sweep started", "rules", len(rules))
	sendProgress(s.Progress, sweepStartedUpdate(result.ID, len(rules)))

	total := 0
	for _, rule := range rules {
		total += len(rule.Channels)
	}

	for _, rule := range rules {
		for _, channelID := range rule.Channels {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			result.Channels++
			sendProgress(s.Progress, scanChannelUpdate(result.Channels, total, rule.Name, channelID))

			if err := s.sweepChannel(ctx, logger, rule, channelID, result); err != nil {
				return result, fmt.Errorf("rule %q, channel %s: %w", rule.Name, channelID, err)
			}
		}
	}

	sendProgress(s.Progress, sweepFinishedUpdate(result))
	logger.Debug("sweep finished", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

func (s *Sweeper) sweepChannel(ctx context.Context, logger *log.Logger, rule models.Rule, channelID string, result *SweepResult) error {
	for video, err := range s.manager.TodaysVideos(ctx, channelID) {
		if err != nil {
			return err
		}
		result.Candidates++

		added, err := s.manager.AddIfAbsent(ctx, video.VideoID, rule.PlaylistID)
		if err != nil {
			return err
		}
		if !added {
			result.Skipped++
			continue
		}

		addition := models.Addition{
			ID:           shared.GenerateID(),
			SweepID:      result.ID,
			Rule:         rule.Name,
			PlaylistID:   rule.PlaylistID,
			VideoID:      video.VideoID,
			Title:        video.Title,
			ChannelTitle: video.ChannelTitle,
			AddedAt:      s.now(),
		}
		result.Added++
		result.Additions = append(result.Additions, addition)

		logger.Info(AddedMessage(addition))
		sendProgress(s.Progress, addVideoUpdate(result.Added, result.Candidates, addition))

		if s.Recorder != nil {
			if err := s.Recorder.RecordAddition(ctx, addition); err != nil {
				logger.Error("failed to record addition", "video", video.VideoID, "err", err)
			}
		}
	}
	return nil
}
