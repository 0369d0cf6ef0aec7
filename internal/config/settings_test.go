package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}
	if s.ParsedQuality() != model.QualityOrigin {
		t.Errorf("default quality = %v, want origin", s.ParsedQuality())
	}
	if s.MaxConcurrentDownloads != 4 {
		t.Errorf("default concurrency = %d, want 4", s.MaxConcurrentDownloads)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "no-such-config.json"))
	if err != nil {
		t.Fatalf("Load on missing file should not fail: %v", err)
	}
	if s.Quality != DefaultSettings().Quality {
		t.Errorf("missing file should yield defaults, got quality %q", s.Quality)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s := DefaultSettings()
	s.Quality = "large800"
	s.MaxConcurrentDownloads = 8
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Quality != "large800" || loaded.MaxConcurrentDownloads != 8 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown quality", `{"quality": "8k"}`},
		{"zero concurrency", `{"max_concurrent_downloads": 0}`},
		{"negative retries", `{"download_max_retries": -1}`},
		{"zero timeout", `{"timeout_seconds": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
