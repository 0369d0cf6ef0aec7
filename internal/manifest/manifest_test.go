package manifest

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

func sampleAlbum() (*model.Album, []*model.DownloadTask) {
	album := &model.Album{
		ID:        "684fe6d7e66eb911b3071bc3",
		SourceURL: "https://www.xxpie.com/m/album?id=684fe6d7e66eb911b3071bc3",
	}

	tasks := []*model.DownloadTask{
		{
			Photo:    &model.Photo{RemoteID: "obj1", Width: 4000, Height: 3000, FileSize: 1024},
			DestPath: "photos/IMG_0001.jpg",
			Status:   model.StatusDone,
		},
		{
			Photo:    &model.Photo{RemoteID: "obj2", Width: 3000, Height: 4000, FileSize: 2048},
			DestPath: "photos/IMG_0002.jpg",
			Status:   model.StatusFailed,
		},
	}
	return album, tasks
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"txt", FormatText},
		{"text", FormatText},
		{"bogus", FormatJSON},
		{"", FormatJSON},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriter_RenderJSON(t *testing.T) {
	album, tasks := sampleAlbum()

	content, err := NewWriter(FormatJSON).Render(album, tasks)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		AlbumID string  `json:"album_id"`
		Count   int     `json:"count"`
		Photos  []Entry `json:"photos"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}

	if doc.AlbumID != album.ID {
		t.Errorf("album_id = %q, want %q", doc.AlbumID, album.ID)
	}
	if doc.Count != 2 {
		t.Errorf("count = %d, want 2", doc.Count)
	}
	if doc.Photos[0].FileName != "IMG_0001.jpg" {
		t.Errorf("first entry = %q, want IMG_0001.jpg", doc.Photos[0].FileName)
	}
	if doc.Photos[1].Status != "failed" {
		t.Errorf("second entry status = %q, want failed", doc.Photos[1].Status)
	}
}

func TestWriter_RenderCSV(t *testing.T) {
	album, tasks := sampleAlbum()

	content, err := NewWriter(FormatCSV).Render(album, tasks)
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	if err != nil {
		t.Fatalf("manifest is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus 2 rows", len(records))
	}
	if records[0][0] != "file_name" {
		t.Errorf("header = %v, want file_name first", records[0])
	}
	if records[1][0] != "IMG_0001.jpg" || records[1][5] != "done" {
		t.Errorf("first row = %v", records[1])
	}
}

func TestWriter_RenderText(t *testing.T) {
	album, tasks := sampleAlbum()

	content, err := NewWriter(FormatText).Render(album, tasks)
	if err != nil {
		t.Fatal(err)
	}

	text := string(content)
	for _, want := range []string{album.ID, "IMG_0001.jpg", "IMG_0002.jpg", "failed"} {
		if !strings.Contains(text, want) {
			t.Errorf("text manifest missing %q:\n%s", want, text)
		}
	}
}

func TestFormat_Ext(t *testing.T) {
	if FormatJSON.Ext() != ".json" || FormatCSV.Ext() != ".csv" || FormatText.Ext() != ".txt" {
		t.Error("format extensions do not match their file types")
	}
}
