// Package config provides configuration management for
// gradphoto-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of option values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to graduation_photos/{album}
//	// Original quality, 4 concurrent downloads
//	// 3 retries, 30 second timeout, skip existing files
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Download path and file naming
//   - Quality tier selection
//   - Concurrent download limit
//   - Retry behavior and per-request timeout
//   - Request pacing toward the photo service
//   - Skip-vs-overwrite behavior for existing files
//   - Image post-processing (resize, JPEG conversion)
//   - Manifest generation
package config
