package download

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

func makePhoto(name, id string, variants map[model.Quality]string) *model.Photo {
	return &model.Photo{
		RemoteID:      id,
		SuggestedName: name,
		FileSize:      2048,
		Variants:      variants,
	}
}

func TestResolver_Resolve(t *testing.T) {
	origin := map[model.Quality]string{model.QualityOrigin: "https://imagex.xxpie.com/o/1"}

	tests := []struct {
		name     string
		photo    *model.Photo
		quality  model.Quality
		format   string
		wantName string
		wantErr  bool
	}{
		{
			name:     "plain name",
			photo:    makePhoto("IMG_0001.jpg", "obj1", origin),
			quality:  model.QualityOrigin,
			wantName: "IMG_0001.jpg",
		},
		{
			name:     "invalid characters sanitized",
			photo:    makePhoto("IMG: 1/2.jpg", "obj1", origin),
			quality:  model.QualityOrigin,
			wantName: "IMG_ 1_2.jpg",
		},
		{
			name:     "missing extension gets jpg",
			photo:    makePhoto("IMG_0001", "obj1", origin),
			quality:  model.QualityOrigin,
			wantName: "IMG_0001.jpg",
		},
		{
			name:     "empty name falls back to remote id",
			photo:    makePhoto("", "abc123", origin),
			quality:  model.QualityOrigin,
			wantName: "photo_abc123.jpg",
		},
		{
			name:     "id and quality placeholders",
			photo:    makePhoto("IMG_0001.jpg", "abc123", origin),
			quality:  model.QualityOrigin,
			format:   "{id}_{quality}",
			wantName: "abc123_origin.jpg",
		},
		{
			name:    "tier not offered",
			photo:   makePhoto("IMG_0001.jpg", "obj1", origin),
			quality: model.QualityLarge1920,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver("albumdir", tt.quality, tt.format)
			task, err := r.Resolve(tt.photo)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, ErrUnsupportedQuality) {
					t.Errorf("error should wrap ErrUnsupportedQuality, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := filepath.Base(task.DestPath); got != tt.wantName {
				t.Errorf("file name = %q, want %q", got, tt.wantName)
			}
			if filepath.Dir(task.DestPath) != "albumdir" {
				t.Errorf("task path %q not under album directory", task.DestPath)
			}
			if task.Status != model.StatusPending {
				t.Errorf("new task status = %v, want pending", task.Status)
			}
		})
	}
}

func TestResolver_DuplicateNames(t *testing.T) {
	variants := map[model.Quality]string{model.QualityOrigin: "https://imagex.xxpie.com/o/1"}
	r := NewResolver("albumdir", model.QualityOrigin, "")

	want := []string{"IMG_0001.jpg", "IMG_0001 (2).jpg", "IMG_0001 (3).jpg"}
	for i, expected := range want {
		task, err := r.Resolve(makePhoto("IMG_0001.jpg", "obj", variants))
		if err != nil {
			t.Fatalf("photo %d: unexpected error: %v", i, err)
		}
		if got := filepath.Base(task.DestPath); got != expected {
			t.Errorf("photo %d: name = %q, want %q", i, got, expected)
		}
	}
}

func TestResolver_DuplicateNamesCaseInsensitive(t *testing.T) {
	variants := map[model.Quality]string{model.QualityOrigin: "https://imagex.xxpie.com/o/1"}
	r := NewResolver("albumdir", model.QualityOrigin, "")

	first, _ := r.Resolve(makePhoto("IMG_0001.JPG", "obj", variants))
	second, _ := r.Resolve(makePhoto("img_0001.jpg", "obj", variants))

	if first.DestPath == second.DestPath {
		t.Error("names differing only in case must still resolve to distinct paths")
	}
}

func TestResolver_ExpectedSize(t *testing.T) {
	variants := map[model.Quality]string{
		model.QualityOrigin:   "https://imagex.xxpie.com/o/1",
		model.QualityLarge800: "https://imagex.xxpie.com/l8/1",
	}

	r := NewResolver("albumdir", model.QualityOrigin, "")
	task, err := r.Resolve(makePhoto("IMG_0001.jpg", "obj", variants))
	if err != nil {
		t.Fatal(err)
	}
	if task.ExpectedSize != 2048 {
		t.Errorf("origin tier ExpectedSize = %d, want reported file size", task.ExpectedSize)
	}

	r = NewResolver("albumdir", model.QualityLarge800, "")
	task, err = r.Resolve(makePhoto("IMG_0001.jpg", "obj", variants))
	if err != nil {
		t.Fatal(err)
	}
	if task.ExpectedSize != 0 {
		t.Errorf("scaled tier ExpectedSize = %d, want 0 (size unknown)", task.ExpectedSize)
	}
}
