package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, 0)
	body, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("body = %q, want %q", body, "hello")
	}
}

func TestClient_GetStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, 0)
	_, err := client.Get(context.Background(), server.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("status code = %d, want 404", statusErr.StatusCode)
	}
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, 0)
	client.SetReferer("https://www.xxpie.com/m/album?id=abc")
	client.SetHeader("x-access-token", "token-value")

	if _, err := client.Get(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}

	if got.Get("User-Agent") != defaultUserAgent {
		t.Errorf("User-Agent = %q", got.Get("User-Agent"))
	}
	if got.Get("Origin") != defaultOrigin {
		t.Errorf("Origin = %q", got.Get("Origin"))
	}
	if got.Get("Referer") != "https://www.xxpie.com/m/album?id=abc" {
		t.Errorf("Referer = %q", got.Get("Referer"))
	}
	if got.Get("x-access-token") != "token-value" {
		t.Errorf("x-access-token = %q", got.Get("x-access-token"))
	}
}

func TestClient_GetFileSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Length", "12345")
	}))
	defer server.Close()

	client := NewClient(5*time.Second, 0)
	size, err := client.GetFileSize(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if size != 12345 {
		t.Errorf("size = %d, want 12345", size)
	}
}

func TestClient_DownloadFile(t *testing.T) {
	content := "file-content-here"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "out.jpg")
	var lastWritten, lastTotal int64

	client := NewClient(5*time.Second, 0)
	err := client.DownloadFile(context.Background(), server.URL, dest, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("file content = %q, want %q", data, content)
	}
	if lastWritten != int64(len(content)) {
		t.Errorf("progress written = %d, want %d", lastWritten, len(content))
	}
	if lastTotal != int64(len(content)) {
		t.Errorf("progress total = %d, want %d", lastTotal, len(content))
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("late"))
	}))
	defer server.Close()

	client := NewClient(30*time.Millisecond, 0)
	_, err := client.Get(context.Background(), server.URL)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
