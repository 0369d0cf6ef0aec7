package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath             string  `json:"downloads_path"`
	Quality                   string  `json:"quality"`
	MaxConcurrentDownloads    int     `json:"max_concurrent_downloads"`
	DownloadMaxRetries        int     `json:"download_max_retries"`
	DownloadRetryCooldown     float64 `json:"download_retry_cooldown"`
	DownloadRetryExponent     float64 `json:"download_retry_exponent"`
	TimeoutSeconds            float64 `json:"timeout_seconds"`
	RequestDelay              float64 `json:"request_delay"`
	SkipExisting              bool    `json:"skip_existing"`
	AllowedFileSizeDifference float64 `json:"allowed_file_size_difference"`

	// File naming
	FileNameFormat string `json:"file_name_format"`

	// Image post-processing
	ConvertToJPG       bool `json:"convert_to_jpg"`
	ResizeMaxDimension int  `json:"resize_max_dimension"`

	// Manifest settings
	WriteManifest  bool   `json:"write_manifest"`
	ManifestFormat string `json:"manifest_format"` // json, csv, txt
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadsPath:             filepath.Join("graduation_photos", "{album}"),
		Quality:                   model.QualityOrigin.String(),
		MaxConcurrentDownloads:    4,
		DownloadMaxRetries:        3,
		DownloadRetryCooldown:     0.5,
		DownloadRetryExponent:     2.0,
		TimeoutSeconds:            30,
		RequestDelay:              0.5,
		SkipExisting:              true,
		AllowedFileSizeDifference: 0.05,

		FileNameFormat: "{name}",

		ConvertToJPG:       false,
		ResizeMaxDimension: 0,

		WriteManifest:  false,
		ManifestFormat: "json",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks option values that would otherwise surface as
// confusing failures deep in the download pipeline.
func (s *Settings) Validate() error {
	if _, err := model.ParseQuality(s.Quality); err != nil {
		return err
	}
	if s.MaxConcurrentDownloads < 1 {
		return fmt.Errorf("max_concurrent_downloads must be positive, got %d", s.MaxConcurrentDownloads)
	}
	if s.DownloadMaxRetries < 0 {
		return fmt.Errorf("download_max_retries must not be negative, got %d", s.DownloadMaxRetries)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %v", s.TimeoutSeconds)
	}
	return nil
}

// ParsedQuality returns the configured quality tier.
// Call Validate first; unknown tiers fall back to origin here.
func (s *Settings) ParsedQuality() model.Quality {
	q, err := model.ParseQuality(s.Quality)
	if err != nil {
		return model.QualityOrigin
	}
	return q
}

// ToPathConfig converts settings to a model.PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		DownloadsPath: s.DownloadsPath,
	}
}
