// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Extension handling for photo files
//   - Directory creation
//   - Image resizing and JPEG conversion of saved photos
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/photos/684fe6d7e66eb911b3071bc3")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/photos/manifest.json", data)
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("IMG: 1/2") // Returns "IMG_ 1_2"
//
// EnsureExtension appends a default extension when the service reports
// a bare name:
//
//	name := ioutils.EnsureExtension("IMG_0001", ".jpg") // "IMG_0001.jpg"
//
// # Image Processing
//
// The ImageService post-processes downloaded photos:
//
//	svc := ioutils.NewImageService()
//
//	// Re-encode a saved photo as JPEG, capped at 1920px
//	err := svc.ProcessFile(ctx, "/photos/IMG_0001.png", 1920, true)
package ioutils
