package models

import "fmt"

// Quality is an audio fidelity tier. Each tier maps to a fixed token
// embedded in media URLs; the API hands out the lowest tier's URL and the
// rest are derived by substituting the token.
type Quality string

const (
	QualityLow      Quality = "low"      // 12 kbps
	QualityMedium   Quality = "medium"   // 48 kbps
	QualityHigh     Quality = "high"     // 96 kbps
	QualityBest     Quality = "best"     // 160 kbps
	QualityLossless Quality = "lossless" // 320 kbps
)

// BaseQualitySuffix is the token carried by the media URLs the API returns.
const BaseQualitySuffix = "_12"

var qualitySuffixes = map[Quality]string{
	QualityLow:      "_12",
	QualityMedium:   "_48",
	QualityHigh:     "_96",
	QualityBest:     "_160",
	QualityLossless: "_320",
}

// Suffix returns the URL token for the tier.
func (q Quality) Suffix() string {
	return qualitySuffixes[q]
}

// Qualities lists the tiers in ascending fidelity order.
func Qualities() []Quality {
	return []Quality{QualityLow, QualityMedium, QualityHigh, QualityBest, QualityLossless}
}

// ParseQuality validates a user-supplied tier name.
func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if _, ok := qualitySuffixes[q]; !ok {
		return "", fmt.Errorf("unknown quality %q (expected one of low, medium, high, best, lossless)", s)
	}
	return q, nil
}

// ImageQuality selects one of the three artwork resolutions.
type ImageQuality string

const (
	ImageSmall  ImageQuality = "small"
	ImageMedium ImageQuality = "medium"
	ImageLarge  ImageQuality = "large"
)
