package dto

import (
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

// Envelope is the album API's response wrapper.
//
// A zero Code means success; any other value is an application-level
// error described by Message.
type Envelope struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Result  *Result `json:"result"`
}

// Result carries one page of album items.
type Result struct {
	Photos []JSONPhoto `json:"photos"`
	Total  int         `json:"total"`
}

// JSONPhoto represents one photo entry as the album API reports it.
type JSONPhoto struct {
	FileName        string `json:"file_name"`
	FileSize        int64  `json:"file_size"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	GalleryObjectID string `json:"gallery_ossobject_id"`

	URLThumbnail string `json:"url_thumbnail"`
	URLLarge500  string `json:"url_large500"`
	URLLarge800  string `json:"url_large800"`
	URLLarge1024 string `json:"url_large1024"`
	URLLarge     string `json:"url_large"`
	URLLarge1920 string `json:"url_large1920"`
	URLOrigin    string `json:"url_origin"`
}

// ToPhoto converts a JSONPhoto to a model.Photo.
//
// Quality tiers the service did not produce for this photo are left
// out of the Variants map.
func (jp *JSONPhoto) ToPhoto() *model.Photo {
	variants := make(map[model.Quality]string)
	for quality, url := range map[model.Quality]string{
		model.QualityThumbnail: jp.URLThumbnail,
		model.QualityLarge500:  jp.URLLarge500,
		model.QualityLarge800:  jp.URLLarge800,
		model.QualityLarge1024: jp.URLLarge1024,
		model.QualityLarge:     jp.URLLarge,
		model.QualityLarge1920: jp.URLLarge1920,
		model.QualityOrigin:    jp.URLOrigin,
	} {
		if url != "" {
			variants[quality] = url
		}
	}

	return &model.Photo{
		RemoteID:      jp.GalleryObjectID,
		SuggestedName: jp.FileName,
		FileSize:      jp.FileSize,
		Width:         jp.Width,
		Height:        jp.Height,
		Variants:      variants,
	}
}
