package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

func TestParseRules(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		data := []byte(`{
    "Daily": {"playlist": "PL1", "channels": ["C1", "C2"]},
    "Art": {"playlist": "PL2", "channels": []}
}`)
		rules, err := ParseRules(data)
		if err != nil {
			t.Fatalf("ParseRules() error = %v", err)
		}

		got := rules.Rules()
		if len(got) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(got))
		}
		if got[0].Name != "Art" || got[1].Name != "Daily" {
			t.Errorf("expected rules sorted by name, got %s, %s", got[0].Name, got[1].Name)
		}
		if got[1].PlaylistID != "PL1" || len(got[1].Channels) != 2 {
			t.Errorf("unexpected Daily rule %+v", got[1])
		}
	})

	tc := []struct {
		name string
		data string
	}{
		{"malformed json", `{"Daily": `},
		{"null document", `null`},
		{"array document", `[]`},
		{"missing playlist", `{"Daily": {"channels": ["C1"]}}`},
		{"empty channel id", `{"Daily": {"playlist": "PL1", "channels": [""]}}`},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.data))
			if !errors.Is(err, shared.ErrInvalidRules) {
				t.Errorf("expected ErrInvalidRules, got %v", err)
			}
		})
	}

	t.Run("LoadRules missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, shared.ErrInvalidRules) {
			t.Errorf("expected ErrInvalidRules, got %v", err)
		}
	})

	t.Run("LoadRules from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "smart_playlists.json")
		if err := os.WriteFile(path, []byte(`{"Daily": {"playlist": "PL1", "channels": ["C1"]}}`), 0644); err != nil {
			t.Fatalf("failed to write rules: %v", err)
		}
		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("LoadRules() error = %v", err)
		}
		if rules["Daily"].Playlist != "PL1" {
			t.Errorf("unexpected rules %+v", rules)
		}
	})
}

func TestRuleSetChannels(t *testing.T) {
	rules := RuleSet{
		"A": {Playlist: "PL1", Channels: []string{"C2", "C1"}},
		"B": {Playlist: "PL2", Channels: []string{"C1", "C3"}},
	}

	got := rules.Channels()
	want := []string{"C1", "C2", "C3"}
	if len(got) != len(want) {
		t.Fatalf("Channels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Channels()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParsePublishedAt(t *testing.T) {
	tc := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "rfc3339 utc",
			raw:  "2024-03-01T23:58:00Z",
			want: time.Date(2024, 3, 1, 23, 58, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			raw:  "2024-03-01T10:00:00+02:00",
			want: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "loose layout read in location",
			raw:  "2024-03-01 10:00:00",
			want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{name: "empty", raw: "", wantErr: true},
		{name: "garbage", raw: "hello world", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePublishedAt(tt.raw, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePublishedAt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParsePublishedAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2024, 3, 1, 23, 58, 0, 0, time.UTC)
	morning := time.Date(2024, 3, 2, 10, 0, 0, 0, tokyo) // 01:00 UTC

	if SameDay(late, morning, time.UTC) {
		t.Error("different UTC dates should not match")
	}
	if !SameDay(late, morning, tokyo) {
		t.Error("both instants fall on 2024-03-02 in JST")
	}
}

func TestAdditionValidate(t *testing.T) {
	valid := Addition{SweepID: "s", Rule: "Daily", PlaylistID: "PL1", VideoID: "V1", AddedAt: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid addition, got %v", err)
	}

	missing := valid
	missing.VideoID = ""
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing video_id")
	}
}
