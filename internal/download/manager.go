package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/config"
	httpx "github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/http"
	ioutils "github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/io"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/manifest"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/xxpie"
)

// Manager coordinates one album download from URL to saved files.
//
// Usage is two-phase: Initialize fetches the album metadata and builds
// the task list, then StartDownloads runs the batch. Between the two,
// callers can inspect Album and Tasks (e.g. for a dry run or to show
// totals in a UI).
type Manager struct {
	settings     *config.Settings
	httpClient   *httpx.Client
	api          *xxpie.Client
	imageService *ioutils.ImageService

	album           *model.Album
	tasks           []*model.DownloadTask
	resolveFailures []model.TaskFailure

	totalBytes    int64
	receivedBytes int64
	totalFiles    int32
	finishedFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	httpClient := httpx.NewClient(
		time.Duration(settings.TimeoutSeconds*float64(time.Second)),
		time.Duration(settings.RequestDelay*float64(time.Second)),
	)

	return &Manager{
		settings:     settings,
		httpClient:   httpClient,
		api:          xxpie.NewClient(httpClient),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize fetches album metadata and builds the download task list.
//
// The album page is fetched first to scrape the access token; a failure
// there is reported but not fatal, since public albums work without it.
// Photos that do not offer the configured quality tier are recorded as
// failures and reported with the final batch result.
func (m *Manager) Initialize(ctx context.Context, rawURL string) error {
	ref, err := xxpie.ParseAlbumURL(rawURL)
	if err != nil {
		return err
	}

	// Image URLs are referer-checked against the album page.
	m.httpClient.SetReferer(ref.Referer)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching album page: %s", rawURL), Level: LevelVerbose})
	if html, err := m.httpClient.GetString(ctx, rawURL); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not fetch album page for access token: %v", err), Level: LevelWarning})
	} else if token := xxpie.ExtractAccessToken(html); token != "" {
		m.api.SetAccessToken(token)
		m.progress(ProgressEvent{Message: "Found access token on album page", Level: LevelVerbose})
	}

	m.api.OnPage = func(page, count int) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Fetched page %d (%d photos)", page, count), Level: LevelVerbose})
	}

	photos, err := m.api.FetchAlbumPhotos(ctx, ref)
	if err != nil {
		return err
	}

	m.album = model.NewAlbum(ref.ID, rawURL, m.settings.ToPathConfig())
	m.album.Photos = photos

	quality := m.settings.ParsedQuality()
	resolver := NewResolver(m.album.Path, quality, m.settings.FileNameFormat)
	for _, photo := range photos {
		task, err := resolver.Resolve(photo)
		if err != nil {
			m.resolveFailures = append(m.resolveFailures, model.TaskFailure{
				Name:   photo.SuggestedName,
				Reason: model.ReasonUnsupportedQuality,
				Err:    err,
			})
			m.progress(ProgressEvent{Message: err.Error(), Level: LevelWarning})
			continue
		}
		m.tasks = append(m.tasks, task)
		m.totalBytes += task.ExpectedSize
	}
	m.totalFiles = int32(len(m.tasks))

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found album %s: %d photos at %s quality", m.album.ID, len(m.tasks), quality),
		Level:   LevelInfo,
	})

	return nil
}

// Album returns the initialized album, or nil before Initialize.
func (m *Manager) Album() *model.Album {
	return m.album
}

// Tasks returns the resolved download tasks.
func (m *Manager) Tasks() []*model.DownloadTask {
	return m.tasks
}

// StartDownloads runs the batch and returns the aggregated result.
//
// An error is returned only when the album directory cannot be created;
// per-task failures are reported in the result instead.
func (m *Manager) StartDownloads(ctx context.Context) (*model.BatchResult, error) {
	if err := ioutils.EnsureDir(m.album.Path); err != nil {
		return nil, fmt.Errorf("create album directory: %w", err)
	}

	pool := NewPool(PoolConfig{
		Concurrency:     m.settings.MaxConcurrentDownloads,
		MaxRetries:      m.settings.DownloadMaxRetries,
		RetryCooldown:   m.settings.DownloadRetryCooldown,
		RetryExponent:   m.settings.DownloadRetryExponent,
		SkipExisting:    m.settings.SkipExisting,
		AllowedSizeDiff: m.settings.AllowedFileSizeDifference,
	}, m.httpClient, m.onProgress, m.taskFinished, m.addBytes)

	result := pool.Run(ctx, m.tasks)

	// Photos dropped at resolution time count as failures too.
	result.Failed += len(m.resolveFailures)
	result.Failures = append(result.Failures, m.resolveFailures...)

	m.postProcess(ctx)

	if m.settings.WriteManifest {
		m.writeManifest()
	}

	if result.Ok() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Album complete: %d downloaded, %d skipped", result.Succeeded, result.Skipped), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Album finished with %d failures", result.Failed), Level: LevelWarning})
	}

	return result, nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received, total int64, filesFinished, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), m.totalBytes,
		atomic.LoadInt32(&m.finishedFiles), m.totalFiles
}

// postProcess applies resize/convert to every downloaded file.
func (m *Manager) postProcess(ctx context.Context) {
	if m.settings.ResizeMaxDimension <= 0 && !m.settings.ConvertToJPG {
		return
	}

	for _, task := range m.tasks {
		if task.Status != model.StatusDone {
			continue
		}
		if err := m.imageService.ProcessFile(ctx, task.DestPath, m.settings.ResizeMaxDimension, m.settings.ConvertToJPG); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error processing %s: %v", filepath.Base(task.DestPath), err), Level: LevelWarning})
		}
	}
}

func (m *Manager) writeManifest() {
	format := manifest.ParseFormat(m.settings.ManifestFormat)
	content, err := manifest.NewWriter(format).Render(m.album, m.tasks)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error rendering manifest: %v", err), Level: LevelWarning})
		return
	}

	path := filepath.Join(m.album.Path, "manifest"+format.Ext())
	if err := os.WriteFile(path, content, 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing manifest: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote manifest: %s", path), Level: LevelVerbose})
}

func (m *Manager) taskFinished(task *model.DownloadTask) {
	atomic.AddInt32(&m.finishedFiles, 1)
}

func (m *Manager) addBytes(delta int64) {
	atomic.AddInt64(&m.receivedBytes, delta)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
