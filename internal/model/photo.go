package model

// Photo represents a single remote photo in an album.
//
// A Photo is immutable once fetched from the album API. The Variants
// map holds one download URL per quality tier the service actually
// produced for this photo; tiers without a URL are absent from the map.
type Photo struct {
	// RemoteID is the service-side object identifier
	// (gallery_ossobject_id in the API response).
	RemoteID string

	// SuggestedName is the display file name reported by the API.
	// May be empty, in which case a name is derived from RemoteID.
	SuggestedName string

	// FileSize is the size of the original upload in bytes,
	// 0 when the API did not report it.
	FileSize int64

	// Width and Height are the pixel dimensions of the original.
	Width  int
	Height int

	// Variants maps quality tiers to their download URLs.
	Variants map[Quality]string
}

// VariantURL returns the download URL for the given quality tier.
// The second return value is false when the tier is not available.
func (p *Photo) VariantURL(q Quality) (string, bool) {
	url, ok := p.Variants[q]
	if !ok || url == "" {
		return "", false
	}
	return url, true
}

// HasVariant reports whether the photo offers the given quality tier.
func (p *Photo) HasVariant(q Quality) bool {
	_, ok := p.VariantURL(q)
	return ok
}
