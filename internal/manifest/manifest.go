package manifest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

// Format represents supported manifest file formats.
//
// Each format targets a different consumer:
//   - JSON: machine-readable, full detail
//   - CSV: spreadsheet import
//   - Text: quick human inspection
type Format int

const (
	// FormatJSON creates .json manifests (full detail).
	FormatJSON Format = iota

	// FormatCSV creates .csv manifests for spreadsheet tools.
	FormatCSV

	// FormatText creates .txt manifests with one line per photo.
	FormatText
)

// ParseFormat converts a config value ("json", "csv", "txt") into a
// Format. Unknown values fall back to JSON.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV
	case "txt", "text":
		return FormatText
	default:
		return FormatJSON
	}
}

// Ext returns the file extension for the format, with the leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatText:
		return ".txt"
	default:
		return ".json"
	}
}

// Entry describes one photo in the manifest.
type Entry struct {
	FileName string `json:"file_name"`
	RemoteID string `json:"remote_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Status   string `json:"status"`
}

// document is the JSON manifest root.
type document struct {
	AlbumID   string  `json:"album_id"`
	SourceURL string  `json:"source_url"`
	Count     int     `json:"count"`
	Photos    []Entry `json:"photos"`
}

// Writer renders an album's download outcome into manifest content.
//
// The manifest lists every task the batch attempted, including failed
// ones, so a re-run can be checked against it.
//
// Example:
//
//	writer := NewWriter(FormatJSON)
//	content, err := writer.Render(album, tasks)
//	os.WriteFile(filepath.Join(album.Path, "manifest"+FormatJSON.Ext()), content, 0644)
type Writer struct {
	format Format
}

// NewWriter creates a manifest writer for the given format.
func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

// Render generates manifest content for an album and its tasks.
//
// Entries appear in task order. File names are relative to the album
// directory, assuming the manifest is written next to the photos.
func (w *Writer) Render(album *model.Album, tasks []*model.DownloadTask) ([]byte, error) {
	entries := make([]Entry, 0, len(tasks))
	for _, task := range tasks {
		entry := Entry{
			FileName: filepath.Base(task.DestPath),
			Status:   task.Status.String(),
		}
		if task.Photo != nil {
			entry.RemoteID = task.Photo.RemoteID
			entry.Width = task.Photo.Width
			entry.Height = task.Photo.Height
			entry.Size = task.Photo.FileSize
		}
		entries = append(entries, entry)
	}

	switch w.format {
	case FormatCSV:
		return w.renderCSV(entries)
	case FormatText:
		return w.renderText(album, entries), nil
	default:
		return w.renderJSON(album, entries)
	}
}

func (w *Writer) renderJSON(album *model.Album, entries []Entry) ([]byte, error) {
	doc := document{
		AlbumID:   album.ID,
		SourceURL: album.SourceURL,
		Count:     len(entries),
		Photos:    entries,
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (w *Writer) renderCSV(entries []Entry) ([]byte, error) {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)

	if err := cw.Write([]string{"file_name", "remote_id", "width", "height", "size", "status"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		record := []string{
			e.FileName,
			e.RemoteID,
			fmt.Sprintf("%d", e.Width),
			fmt.Sprintf("%d", e.Height),
			fmt.Sprintf("%d", e.Size),
			e.Status,
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return []byte(sb.String()), nil
}

func (w *Writer) renderText(album *model.Album, entries []Entry) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Album %s (%d photos)\n", album.ID, len(entries)))
	sb.WriteString(fmt.Sprintf("Source: %s\n\n", album.SourceURL))

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s\t%dx%d\t%s\n", e.FileName, e.Width, e.Height, e.Status))
	}

	return []byte(sb.String())
}
