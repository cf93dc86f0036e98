package repositories

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func newAddition(sweepID, videoID string, at time.Time) *models.Addition {
	return &models.Addition{
		SweepID:      sweepID,
		Rule:         "Daily",
		PlaylistID:   "PL1",
		VideoID:      videoID,
		Title:        "Video " + videoID,
		ChannelTitle: "Channel",
		AddedAt:      at,
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "additions")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for unknown sequence table")
	}
}

func TestAdditionRepository(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Create", func(t *testing.T) {
		repo := NewAdditionRepository(setupTestDB(t))
		addition := newAddition("sweep-1", "V1", now)

		if err := repo.Create(addition); err != nil {
			t.Fatalf("failed to create addition: %v", err)
		}
		if addition.ID == "" {
			t.Error("addition ID should be set after creation")
		}
	})

	t.Run("Create rejects invalid addition", func(t *testing.T) {
		repo := NewAdditionRepository(setupTestDB(t))
		addition := newAddition("sweep-1", "", now)

		if err := repo.Create(addition); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("List newest first", func(t *testing.T) {
		repo := NewAdditionRepository(setupTestDB(t))
		for i, id := range []string{"V1", "V2", "V3"} {
			if err := repo.Create(newAddition("sweep-1", id, now.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("failed to create addition: %v", err)
			}
		}

		all, err := repo.List(0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 additions, got %d", len(all))
		}
		if all[0].VideoID != "V3" || all[2].VideoID != "V1" {
			t.Errorf("unexpected order: %s, %s, %s", all[0].VideoID, all[1].VideoID, all[2].VideoID)
		}
		if !all[2].AddedAt.Equal(now) {
			t.Errorf("expected added_at %v, got %v", now, all[2].AddedAt)
		}

		limited, err := repo.List(2)
		if err != nil {
			t.Fatalf("List(2) error = %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 additions, got %d", len(limited))
		}
	})

	t.Run("ListBySweep", func(t *testing.T) {
		repo := NewAdditionRepository(setupTestDB(t))
		repo.Create(newAddition("sweep-1", "V1", now))
		repo.Create(newAddition("sweep-2", "V2", now))
		repo.Create(newAddition("sweep-1", "V3", now))

		additions, err := repo.ListBySweep("sweep-1")
		if err != nil {
			t.Fatalf("ListBySweep() error = %v", err)
		}
		if len(additions) != 2 {
			t.Fatalf("expected 2 additions, got %d", len(additions))
		}
		if additions[0].VideoID != "V1" || additions[1].VideoID != "V3" {
			t.Errorf("unexpected additions %+v", additions)
		}

		none, err := repo.ListBySweep("sweep-3")
		if err != nil {
			t.Fatalf("ListBySweep() error = %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no additions, got %d", len(none))
		}
	})

	t.Run("Exists", func(t *testing.T) {
		repo := NewAdditionRepository(setupTestDB(t))
		repo.Create(newAddition("sweep-1", "V1", now))

		tests := []struct {
			name       string
			playlistID string
			videoID    string
			want       bool
		}{
			{"recorded", "PL1", "V1", true},
			{"other video", "PL1", "V2", false},
			{"other playlist", "PL2", "V1", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.Exists(tt.playlistID, tt.videoID)
				if err != nil {
					t.Fatalf("Exists() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("Exists(%s, %s) = %v, want %v", tt.playlistID, tt.videoID, got, tt.want)
				}
			})
		}
	})

	t.Run("RecordAddition", func(t *testing.T) {
		repo := NewAdditionRepository(setupTestDB(t))
		if err := repo.RecordAddition(t.Context(), *newAddition("sweep-1", "V1", now)); err != nil {
			t.Fatalf("RecordAddition() error = %v", err)
		}

		ok, _ := repo.Exists("PL1", "V1")
		if !ok {
			t.Error("expected recorded addition to exist")
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAdditionRepository(db)
		db.Close()

		if err := repo.Create(newAddition("sweep-1", "V1", now)); err == nil {
			t.Error("expected error on closed database")
		}
		if _, err := repo.List(10); err == nil {
			t.Error("expected error on closed database")
		}
		if _, err := repo.Exists("PL1", "V1"); err == nil {
			t.Error("expected error on closed database")
		}
	})
}

func TestUploadsCache(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		cache, err := LoadUploadsCache(filepath.Join(t.TempDir(), "sub_cache.json"))
		if err != nil {
			t.Fatalf("LoadUploadsCache() error = %v", err)
		}
		if cache.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", cache.Len())
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"not json", "{not json"},
			{"wrong value type", `{"C1": 42}`},
			{"array", `["C1"]`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "sub_cache.json")
				os.WriteFile(path, []byte(tt.content), 0644)

				_, err := LoadUploadsCache(path)
				if !errors.Is(err, shared.ErrCorruptCache) {
					t.Errorf("expected ErrCorruptCache, got %v", err)
				}
			})
		}
	})

	t.Run("put and get", func(t *testing.T) {
		cache := NewUploadsCache(filepath.Join(t.TempDir(), "sub_cache.json"))
		if _, ok := cache.Get("C1"); ok {
			t.Error("expected miss on empty cache")
		}

		cache.Put("C1", "UU1")
		cache.Put("C1", "UU-other")

		got, ok := cache.Get("C1")
		if !ok || got != "UU1" {
			t.Errorf("expected UU1, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("forget", func(t *testing.T) {
		cache := NewUploadsCache(filepath.Join(t.TempDir(), "sub_cache.json"))
		cache.Put("C1", "UU1")
		cache.Put("C2", "UU2")

		cache.Forget("C1")
		cache.Forget("missing")

		if _, ok := cache.Get("C1"); ok {
			t.Error("expected C1 to be forgotten")
		}
		if cache.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", cache.Len())
		}
	})

	t.Run("flush round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub_cache.json")
		cache := NewUploadsCache(path)
		cache.Put("C2", "UU2")
		cache.Put("C1", "UU1")

		if err := cache.Flush(); err != nil {
			t.Fatalf("Flush() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read cache file: %v", err)
		}
		if !strings.Contains(string(data), "\n    \"C1\": \"UU1\"") {
			t.Errorf("expected 4-space indented JSON, got:\n%s", data)
		}

		loaded, err := LoadUploadsCache(path)
		if err != nil {
			t.Fatalf("LoadUploadsCache() error = %v", err)
		}
		ids := loaded.ChannelIDs()
		if len(ids) != 2 || ids[0] != "C1" || ids[1] != "C2" {
			t.Errorf("unexpected channel IDs %v", ids)
		}
		if got, _ := loaded.Get("C2"); got != "UU2" {
			t.Errorf("expected UU2, got %q", got)
		}
	})
}
