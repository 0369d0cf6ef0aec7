package model

import (
	"regexp"
	"strings"
)

// Album represents one xxpie photo album.
//
// The local directory path is computed when creating an album via
// NewAlbum, using the {album} placeholder in PathConfig.DownloadsPath.
//
// Example:
//
//	cfg := &PathConfig{DownloadsPath: "photos/{album}"}
//	album := NewAlbum("684fe6d7e66eb911b3071bc3", sourceURL, cfg)
//	// album.Path = "photos/684fe6d7e66eb911b3071bc3"
type Album struct {
	// ID is the album identifier extracted from the album URL.
	ID string

	// SourceURL is the album page URL the user supplied. It doubles
	// as the Referer for photo requests.
	SourceURL string

	// Photos contains all photos fetched from the album API.
	Photos []*Photo

	// Path is the computed local directory where photos are saved.
	Path string
}

// PathConfig holds path formatting settings for albums.
//
// DownloadsPath supports the {album} placeholder, replaced with the
// sanitized album identifier.
type PathConfig struct {
	// DownloadsPath is the base path template for saving albums.
	// Example: "graduation_photos/{album}"
	DownloadsPath string
}

// NewAlbum creates a new Album with its computed local path.
//
// Invalid filename characters in the album identifier are replaced
// with underscores, and the path is truncated if it exceeds Windows
// folder path limits (248 characters).
func NewAlbum(id, sourceURL string, cfg *PathConfig) *Album {
	album := &Album{
		ID:        id,
		SourceURL: sourceURL,
	}
	album.Path = album.parseFolderPath(cfg)
	return album
}

// TotalBytes sums the reported original file sizes of all photos.
// Photos without a reported size contribute zero.
func (a *Album) TotalBytes() int64 {
	var total int64
	for _, p := range a.Photos {
		total += p.FileSize
	}
	return total
}

// parseFolderPath computes the album folder path from the config template.
func (a *Album) parseFolderPath(cfg *PathConfig) string {
	path := strings.ReplaceAll(cfg.DownloadsPath, "{album}", SanitizeFileName(a.ID))

	// Limit path length for cross-platform compatibility (Windows MAX_PATH)
	if len(path) >= 248 {
		path = path[:247]
	}

	return path
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	SanitizeFileName("IMG: 1/2.jpg") // Returns "IMG_ 1_2.jpg"
func SanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
