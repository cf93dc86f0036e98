package formatter

import (
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	th "github.com/ttufts/youtube-smart-playlists/internal/testing"
)

var additions = []models.Addition{
	{
		SweepID: "s1", Rule: "Daily", PlaylistID: "PL1", VideoID: "V1",
		Title: "Video [One]", ChannelTitle: "Channel_One",
		AddedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	},
	{
		SweepID: "s1", Rule: "Archive", PlaylistID: "PL2", VideoID: "V2",
		Title: "Video, Two", ChannelTitle: "Channel Two",
		AddedAt: time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC),
	},
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(additions)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("CSV output does not parse: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if records[0][0] != "Added At" {
			t.Errorf("unexpected header %v", records[0])
		}
		if records[2][4] != "Video, Two" {
			t.Errorf("expected quoted title to round trip, got %q", records[2][4])
		}
		if records[1][0] != "2024-05-01T12:00:00Z" {
			t.Errorf("unexpected timestamp %q", records[1][0])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(additions, time.UTC)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		archive := strings.Index(output, "## Archive")
		daily := strings.Index(output, "## Daily")
		if archive < 0 || daily < 0 || archive > daily {
			t.Errorf("expected rule sections sorted by name, got:\n%s", output)
		}
		if !strings.Contains(output, `[Video \[One\]](https://www.youtube.com/watch?v=V1)`) {
			t.Errorf("expected escaped video link, got:\n%s", output)
		}
		if !strings.Contains(output, `Channel\_One`) {
			t.Errorf("expected escaped channel title, got:\n%s", output)
		}
		if !strings.Contains(output, "https://www.youtube.com/playlist?list=PL2") {
			t.Errorf("expected playlist link, got:\n%s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(additions, time.UTC)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		want := "2024-05-01 12:00 Added Video [One] (Channel_One) to Daily\n"
		if !strings.HasPrefix(string(data), want) {
			t.Errorf("expected %q, got %q", want, data)
		}
	})
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"video_id": "V1"`},
		{"CSV", "Added At,Rule"},
		{"md", "# Smart playlist history"},
		{"text", "Added Video, Two"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Export(additions, tt.format, time.UTC)
			if err != nil {
				t.Fatalf("Export(%s) error = %v", tt.format, err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("expected %q in output:\n%s", tt.want, data)
			}
		})
	}

	t.Run("empty json is an array", func(t *testing.T) {
		data, err := Export(nil, "json", nil)
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("expected [], got %s", data)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Export(additions, "xml", nil)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")

	if err := WriteExport(additions, "csv", path, time.UTC); err != nil {
		t.Fatalf("WriteExport() error = %v", err)
	}

	th.AssertFileExists(t, path)
	if content := th.MustReadFile(t, path); !strings.Contains(content, "V2") {
		t.Errorf("expected exported file to contain V2, got %s", content)
	}
}
