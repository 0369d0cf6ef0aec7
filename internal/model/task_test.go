package model

import "testing"

func TestTaskStatus_Terminal(t *testing.T) {
	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusDone, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailReason_String(t *testing.T) {
	tests := []struct {
		reason FailReason
		want   string
	}{
		{ReasonNone, "none"},
		{ReasonNetwork, "network error"},
		{ReasonTimeout, "timeout"},
		{ReasonCancelled, "cancelled"},
		{ReasonFilesystem, "filesystem error"},
		{ReasonUnsupportedQuality, "unsupported quality"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("FailReason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestBatchResult_Ok(t *testing.T) {
	r := &BatchResult{Succeeded: 3}
	if !r.Ok() {
		t.Error("batch with no failures should be ok")
	}

	r.Failed = 1
	if r.Ok() {
		t.Error("batch with failures should not be ok")
	}
}
