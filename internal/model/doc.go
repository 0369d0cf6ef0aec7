// Package model defines the core data structures used throughout
// the gradphoto-downloader application.
//
// # Album
//
// Album represents one xxpie photo album with its photo list and the
// computed local directory where files will be saved:
//
//	album := model.NewAlbum("684fe6d7e66eb911b3071bc3", sourceURL, pathConfig)
//	fmt.Println(album.Path) // Where photos are saved
//
// # Photo
//
// Photo is one remote photo with its quality variants:
//
//	url, ok := photo.VariantURL(model.QualityOrigin)
//
// # DownloadTask
//
// DownloadTask pairs a photo's source URL with a destination path and
// carries the per-task state machine:
//
//	Pending -> InProgress -> Done | Failed
//
// Tasks are created by the resolver and mutated only by the download
// pool. BatchResult aggregates the outcome of one album batch.
package model
