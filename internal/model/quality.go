package model

import "fmt"

// Quality identifies one of the resolution variants xxpie offers per
// photo. The numeric order matches increasing resolution, so the
// highest available tier can be found by iterating Qualities backwards.
type Quality int

const (
	// QualityThumbnail is the small preview variant.
	QualityThumbnail Quality = iota

	// QualityLarge500 is the 500px variant.
	QualityLarge500

	// QualityLarge800 is the 800px variant.
	QualityLarge800

	// QualityLarge1024 is the 1024px variant.
	QualityLarge1024

	// QualityLarge is the 1920px variant. The service calls this tier
	// plain "large".
	QualityLarge

	// QualityLarge1920 is the 2560px variant. The tier name is
	// historical; it does not match the pixel size.
	QualityLarge1920

	// QualityOrigin is the unscaled original upload.
	QualityOrigin
)

// Qualities lists all tiers from lowest to highest resolution.
var Qualities = []Quality{
	QualityThumbnail,
	QualityLarge500,
	QualityLarge800,
	QualityLarge1024,
	QualityLarge,
	QualityLarge1920,
	QualityOrigin,
}

// String returns the tier name as used by the service and in config files.
func (q Quality) String() string {
	switch q {
	case QualityThumbnail:
		return "thumbnail"
	case QualityLarge500:
		return "large500"
	case QualityLarge800:
		return "large800"
	case QualityLarge1024:
		return "large1024"
	case QualityLarge:
		return "large"
	case QualityLarge1920:
		return "large1920"
	case QualityOrigin:
		return "origin"
	default:
		return "unknown"
	}
}

// ParseQuality converts a tier name into a Quality.
func ParseQuality(s string) (Quality, error) {
	for _, q := range Qualities {
		if q.String() == s {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown quality tier: %q", s)
}
