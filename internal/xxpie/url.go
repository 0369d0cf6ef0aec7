package xxpie

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when a string does not look like an xxpie
// album link.
//
// Valid links have the shape:
//
//	https://www.xxpie.com/m/album?id=<24 hex chars>&...
var ErrInvalidURL = errors.New("not a valid xxpie album URL")

// albumIDPattern matches the service's object identifiers.
var albumIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// AlbumRef identifies one album for API requests.
type AlbumRef struct {
	// ID is the album identifier from the URL's id parameter.
	ID string

	// NoWatermark is the opaque nowatermark parameter, empty when absent.
	NoWatermark string

	// SubAlbumID selects a sub-album, empty when absent.
	SubAlbumID string

	// Referer is the original album page URL. API and image requests
	// must send it as the Referer header.
	Referer string
}

// ParseAlbumURL extracts an AlbumRef from a raw album link.
//
// The function is pure: no network access, no side effects. It fails
// with an error wrapping ErrInvalidURL when the string is not an
// https xxpie album link or the id parameter is missing or malformed.
func ParseAlbumURL(raw string) (*AlbumRef, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host != "www.xxpie.com" && host != "xxpie.com" {
		return nil, fmt.Errorf("%w: unexpected host %q", ErrInvalidURL, parsed.Hostname())
	}

	if parsed.Path != "/m/album" {
		return nil, fmt.Errorf("%w: unexpected path %q", ErrInvalidURL, parsed.Path)
	}

	query := parsed.Query()
	id := query.Get("id")
	if !albumIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: missing or malformed album id", ErrInvalidURL)
	}

	return &AlbumRef{
		ID:          id,
		NoWatermark: query.Get("nowatermark"),
		SubAlbumID:  query.Get("sub_album_id"),
		Referer:     raw,
	}, nil
}
