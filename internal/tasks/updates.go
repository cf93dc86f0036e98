package tasks

import (
	"fmt"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
)

// ProgressUpdate represents a progress event during a sweep.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Sweep phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Sweep phase enumeration
type Phase int

const (
	SweepStarted Phase = iota
	ScanChannel
	AddVideo
	SweepFinished
)

func (p Phase) String() string {
	switch p {
	case SweepStarted:
		return "sweep_started"
	case ScanChannel:
		return "scan_channel"
	case AddVideo:
		return "add_video"
	case SweepFinished:
		return "sweep_finished"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}

func sweepStartedUpdate(id string, rules int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SweepStarted,
		Total:   rules,
		Message: fmt.Sprintf("Starting sweep %s over %d smart playlists...", id, rules),
	}
}

func scanChannelUpdate(step, total int, rule, channelID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanChannel,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: checking %s...", step, total, rule, channelID),
	}
}

func addVideoUpdate(step, total int, a models.Addition) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, AddedMessage(a)),
		Data:    a,
	}
}

func sweepFinishedUpdate(r *SweepResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SweepFinished,
		Step:    r.Channels,
		Total:   r.Channels,
		Message: fmt.Sprintf("Sweep %s finished: %d added, %d skipped", r.ID, r.Added, r.Skipped),
		Data:    r,
	}
}
