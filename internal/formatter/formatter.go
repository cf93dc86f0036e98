// package formatter exports addition history to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// Formats lists the export formats accepted by [Export].
var Formats = []string{"json", "csv", "markdown", "txt"}

// WatchURL returns the public URL of a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// PlaylistURL returns the public URL of a playlist.
func PlaylistURL(playlistID string) string {
	return "https://www.youtube.com/playlist?list=" + playlistID
}

// ExportToCSV converts additions to CSV with columns: Added At, Rule, Playlist ID, Video ID, Title, Channel, Sweep ID
func ExportToCSV(additions []models.Addition) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Added At", "Rule", "Playlist ID", "Video ID", "Title", "Channel", "Sweep ID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range additions {
		record := []string{
			a.AddedAt.UTC().Format(time.RFC3339),
			a.Rule,
			a.PlaylistID,
			a.VideoID,
			a.Title,
			a.ChannelTitle,
			a.SweepID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown groups additions by rule, one section per smart playlist, with links to each video.
func ExportToMarkdown(additions []models.Addition, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	var buf bytes.Buffer
	buf.WriteString("# Smart playlist history\n\n")
	buf.WriteString(fmt.Sprintf("**Additions**: %d\n\n", len(additions)))

	byRule := map[string][]models.Addition{}
	for _, a := range additions {
		byRule[a.Rule] = append(byRule[a.Rule], a)
	}

	rules := make([]string, 0, len(byRule))
	for rule := range byRule {
		rules = append(rules, rule)
	}
	slices.Sort(rules)

	for _, rule := range rules {
		group := byRule[rule]
		buf.WriteString(fmt.Sprintf("## %s\n\n", rule))
		buf.WriteString(fmt.Sprintf("[Playlist](%s)\n\n", PlaylistURL(group[0].PlaylistID)))
		for i, a := range group {
			buf.WriteString(fmt.Sprintf("%d. [%s](%s) by %s, %s\n",
				i+1, escapeMarkdown(a.Title), WatchURL(a.VideoID), escapeMarkdown(a.ChannelTitle),
				a.AddedAt.In(loc).Format("2006-01-02 15:04")))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText renders one line per addition, matching the sweep log.
func ExportToText(additions []models.Addition, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	var buf bytes.Buffer
	for _, a := range additions {
		buf.WriteString(fmt.Sprintf("%s Added %s (%s) to %s\n",
			a.AddedAt.In(loc).Format("2006-01-02 15:04"), a.Title, a.ChannelTitle, a.Rule))
	}
	return buf.Bytes(), nil
}

// Export renders additions in format.
func Export(additions []models.Addition, format string, loc *time.Location) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		if additions == nil {
			additions = []models.Addition{}
		}
		return shared.MarshalJSON(additions, true)
	case "csv":
		return ExportToCSV(additions)
	case "markdown", "md":
		return ExportToMarkdown(additions, loc)
	case "txt", "text":
		return ExportToText(additions, loc)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// WriteExport renders additions and writes them to path atomically.
func WriteExport(additions []models.Addition, format, path string, loc *time.Location) error {
	data, err := Export(additions, format, loc)
	if err != nil {
		return err
	}
	if err := shared.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer("[", `\[`, "]", `\]`, "*", `\*`, "_", `\_`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
