package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name    string
		in      string
		want    log.Level
		wantErr bool
	}{
		{name: "empty defaults to info", in: "", want: log.InfoLevel},
		{name: "debug", in: "debug", want: log.DebugLevel},
		{name: "mixed case with spaces", in: "  WARN ", want: log.WarnLevel},
		{name: "unknown", in: "loud", want: log.InfoLevel, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	t.Run("WriteJSONFile uses four space indent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "cache.json")

		if err := WriteJSONFile(path, map[string]string{"UC1": "UU1"}, 0644); err != nil {
			t.Fatalf("WriteJSONFile() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(data), "\n    \"UC1\": \"UU1\"") {
			t.Errorf("unexpected file contents %q", string(data))
		}
	})

	t.Run("WriteFileAtomic leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")

		for _, body := range []string{"first", "second"} {
			if err := WriteFileAtomic(path, []byte(body), 0644); err != nil {
				t.Fatalf("WriteFileAtomic() error = %v", err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, found %d entries", len(entries))
		}

		data, _ := os.ReadFile(path)
		if string(data) != "second" {
			t.Errorf("expected latest contents, got %q", string(data))
		}
	})

	t.Run("VerifyAndReadFile", func(t *testing.T) {
		dir := t.TempDir()

		if _, err := VerifyAndReadFile(""); err == nil {
			t.Error("expected error for empty path")
		}
		if _, err := VerifyAndReadFile(dir); err == nil {
			t.Error("expected error for directory")
		}
		if _, err := VerifyAndReadFile(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ValidateJSON", func(t *testing.T) {
		if err := ValidateJSON([]byte(`{"a": 1}`)); err != nil {
			t.Errorf("expected valid JSON, got %v", err)
		}
		if err := ValidateJSON([]byte(`{"a": `)); err == nil {
			t.Error("expected error for truncated JSON")
		}
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("YTSP_TEST_LOAD_ENV=from-file\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("YTSP_TEST_LOAD_ENV") })

	if err := LoadEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv("YTSP_TEST_LOAD_ENV"); got != "from-file" {
		t.Errorf("expected variable from file, got %q", got)
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	b, _ := GenerateState()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty states, got %q and %q", a, b)
	}
}
