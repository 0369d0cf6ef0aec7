package download

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/io"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

// ErrUnsupportedQuality is returned when a photo does not offer the
// requested quality tier.
var ErrUnsupportedQuality = errors.New("quality tier not available for photo")

// Resolver turns photos into download tasks: it picks the variant URL
// for the configured quality tier and computes a unique, sanitized
// destination path inside the album directory.
//
// A Resolver is bound to one album batch. It remembers every name it
// has handed out, so two photos that report the same file name get
// distinct paths ("IMG_0001.jpg", "IMG_0001 (2).jpg", ...).
// Name comparison is case-insensitive to stay safe on Windows and
// macOS file systems.
//
// Resolver is not safe for concurrent use; resolve all tasks before
// handing them to the pool.
type Resolver struct {
	dir     string
	quality model.Quality
	format  string

	used map[string]int
}

// NewResolver creates a resolver for one album directory.
//
// format is the file name template. Supported placeholders:
//
//	{name}    the photo's suggested name without extension
//	{id}      the photo's remote object identifier
//	{quality} the configured quality tier name
func NewResolver(dir string, quality model.Quality, format string) *Resolver {
	if format == "" {
		format = "{name}"
	}
	return &Resolver{
		dir:     dir,
		quality: quality,
		format:  format,
		used:    make(map[string]int),
	}
}

// Resolve builds the download task for one photo.
//
// Returns an error wrapping ErrUnsupportedQuality when the photo does
// not offer the configured tier. The album API reports photos without
// a given variant by omitting its URL, so this surfaces per photo, not
// per album.
func (r *Resolver) Resolve(photo *model.Photo) (*model.DownloadTask, error) {
	sourceURL, ok := photo.VariantURL(r.quality)
	if !ok {
		return nil, fmt.Errorf("%s: %w (%s)", r.displayName(photo), ErrUnsupportedQuality, r.quality)
	}

	name := r.uniqueName(r.fileName(photo))

	task := &model.DownloadTask{
		Photo:     photo,
		SourceURL: sourceURL,
		DestPath:  filepath.Join(r.dir, name),
		Status:    model.StatusPending,
	}

	// The reported size describes the original upload, so it only
	// predicts the download size for the origin tier.
	if r.quality == model.QualityOrigin {
		task.ExpectedSize = photo.FileSize
	}

	return task, nil
}

// fileName renders the name template for a photo.
func (r *Resolver) fileName(photo *model.Photo) string {
	suggested := r.displayName(photo)
	ext := filepath.Ext(suggested)
	base := strings.TrimSuffix(suggested, ext)

	name := r.format
	name = strings.ReplaceAll(name, "{name}", base)
	name = strings.ReplaceAll(name, "{id}", photo.RemoteID)
	name = strings.ReplaceAll(name, "{quality}", r.quality.String())

	name = ioutils.SanitizeFileName(name) + ext
	return ioutils.EnsureExtension(name, ".jpg")
}

// uniqueName suffixes duplicate names with a counter before the extension.
func (r *Resolver) uniqueName(name string) string {
	key := strings.ToLower(name)
	r.used[key]++
	if r.used[key] == 1 {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for {
		candidate := fmt.Sprintf("%s (%d)%s", base, r.used[key], ext)
		candidateKey := strings.ToLower(candidate)
		if r.used[candidateKey] == 0 {
			r.used[candidateKey]++
			return candidate
		}
		r.used[key]++
	}
}

// displayName is the photo's suggested name, or a stable fallback for
// entries the service reports without one.
func (r *Resolver) displayName(photo *model.Photo) string {
	if photo.SuggestedName != "" {
		return photo.SuggestedName
	}
	return fmt.Sprintf("photo_%s.jpg", photo.RemoteID)
}
