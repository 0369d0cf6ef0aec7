package model

import "time"

// TaskStatus is the lifecycle state of a DownloadTask.
//
// Valid transitions:
//
//	Pending -> InProgress -> Done
//	Pending -> InProgress -> Failed
//	Pending -> Failed (cancelled before starting)
//
// Done and Failed are terminal.
type TaskStatus int

const (
	// StatusPending means the task has not started yet.
	StatusPending TaskStatus = iota

	// StatusInProgress means a worker is fetching the file.
	StatusInProgress

	// StatusDone means the file was saved (or validly skipped).
	StatusDone

	// StatusFailed means the task gave up after its retry budget.
	StatusFailed
)

// String returns a human-readable status name.
func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in progress"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is final.
func (s TaskStatus) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// FailReason classifies why a task failed.
type FailReason int

const (
	// ReasonNone is set on tasks that did not fail.
	ReasonNone FailReason = iota

	// ReasonNetwork covers transport errors and bad HTTP statuses.
	ReasonNetwork

	// ReasonTimeout means the per-request timeout elapsed.
	ReasonTimeout

	// ReasonCancelled means the batch was cancelled before or during
	// the task.
	ReasonCancelled

	// ReasonFilesystem means the destination file could not be written.
	ReasonFilesystem

	// ReasonUnsupportedQuality means the requested tier is not offered
	// for the photo, so no task could be built for it.
	ReasonUnsupportedQuality
)

// String returns a human-readable reason name.
func (r FailReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNetwork:
		return "network error"
	case ReasonTimeout:
		return "timeout"
	case ReasonCancelled:
		return "cancelled"
	case ReasonFilesystem:
		return "filesystem error"
	case ReasonUnsupportedQuality:
		return "unsupported quality"
	default:
		return "unknown"
	}
}

// DownloadTask is one unit of work for the download pool: fetch one
// photo variant and save it to a local path.
//
// Tasks are created by the resolver in StatusPending and mutated only
// by the pool. After the batch completes the task slice is discarded;
// outcomes live on in the BatchResult.
type DownloadTask struct {
	// Photo is the source photo this task was derived from.
	Photo *Photo

	// SourceURL is the variant URL to fetch.
	SourceURL string

	// DestPath is the local file path to save to.
	DestPath string

	// ExpectedSize is the remote size in bytes when known, else 0.
	// Used for the skip-existing check.
	ExpectedSize int64

	// Status is the task's lifecycle state.
	Status TaskStatus

	// Reason is set when Status is StatusFailed.
	Reason FailReason

	// Err holds the underlying error for a failed task.
	Err error
}

// TaskFailure records one failed item for the batch report.
type TaskFailure struct {
	// Name is the destination file name (or suggested name for
	// resolution failures).
	Name string

	// Reason classifies the failure.
	Reason FailReason

	// Err is the underlying error.
	Err error
}

// BatchResult aggregates the outcome of one album batch.
//
// It is owned by the pool's caller and filled in as tasks complete.
// Completion order is unspecified; callers must not assume submission
// order.
type BatchResult struct {
	// Succeeded counts tasks that downloaded their file.
	Succeeded int

	// Skipped counts tasks that found a matching file already on disk.
	Skipped int

	// Failed counts tasks that ended in StatusFailed, plus photos that
	// could not be resolved into tasks.
	Failed int

	// BytesReceived is the total size of files written or skipped.
	BytesReceived int64

	// Elapsed is the wall time of the batch.
	Elapsed time.Duration

	// Failures lists each failed item with its reason.
	Failures []TaskFailure
}

// Ok reports whether the whole batch completed without failures.
func (r *BatchResult) Ok() bool {
	return r.Failed == 0
}
