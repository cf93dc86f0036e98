package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/tasks"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// SweepReport summarises a finished sweep. err is the error the sweep stopped with, if any.
func SweepReport(r *tasks.SweepResult, err error) string {
	var b strings.Builder

	if r == nil {
		fmt.Fprintf(&b, "%s %v\n", Err("✗ Sweep failed:"), err)
		return b.String()
	}

	b.WriteString(Title(fmt.Sprintf("Sweep %s", r.ID)) + "\n")
	fmt.Fprintf(&b, "Rules: %d  Channels: %d  Today's videos: %d  Took: %s\n",
		r.Rules, r.Channels, r.Candidates, r.Duration().Round(time.Millisecond))

	for _, a := range r.Additions {
		b.WriteString(OK("✓ ") + tasks.AddedMessage(a) + "\n")
	}

	switch {
	case err != nil:
		fmt.Fprintf(&b, "%s %v\n", Err("✗ Sweep stopped:"), err)
	case r.Added == 0:
		b.WriteString(Help("Nothing new to add.") + "\n")
	default:
		b.WriteString(OK(fmt.Sprintf("%d added", r.Added)))
		if r.Skipped > 0 {
			b.WriteString(Warn(fmt.Sprintf(", %d skipped", r.Skipped)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RulesTable lists rules with their playlist and channel count.
func RulesTable(rules []models.Rule) string {
	t := newTable("RULE", "PLAYLIST", "CHANNELS")
	for _, r := range rules {
		t.Row(r.Name, r.PlaylistID, fmt.Sprintf("%d", len(r.Channels)))
	}
	return t.Render() + "\n"
}

// HistoryTable lists additions newest first, with times shown in loc.
func HistoryTable(additions []models.Addition, loc *time.Location) string {
	if len(additions) == 0 {
		return Help("No additions recorded yet.") + "\n"
	}
	if loc == nil {
		loc = time.Local
	}

	t := newTable("ADDED", "RULE", "VIDEO", "TITLE", "CHANNEL")
	for _, a := range additions {
		t.Row(a.AddedAt.In(loc).Format("2006-01-02 15:04"), a.Rule, a.VideoID, a.Title, a.ChannelTitle)
	}
	return t.Render() + "\n"
}

// VideosTable lists videos with their publish time in loc.
func VideosTable(videos []models.Video, loc *time.Location) string {
	if len(videos) == 0 {
		return Help("No videos published today.") + "\n"
	}
	if loc == nil {
		loc = time.Local
	}

	t := newTable("PUBLISHED", "VIDEO", "TITLE", "CHANNEL")
	for _, v := range videos {
		t.Row(v.PublishedAt.In(loc).Format("15:04"), v.VideoID, v.Title, v.ChannelTitle)
	}
	return t.Render() + "\n"
}

// CacheTable lists uploads cache entries.
func CacheTable(ids []string, lookup func(string) (string, bool)) string {
	if len(ids) == 0 {
		return Help("Uploads cache is empty.") + "\n"
	}

	t := newTable("CHANNEL", "UPLOADS PLAYLIST")
	for _, id := range ids {
		playlist, _ := lookup(id)
		t.Row(id, playlist)
	}
	return t.Render() + "\n"
}
