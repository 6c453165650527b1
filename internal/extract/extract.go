// Package extract calls the Gemini multimodal API to read a Japanese
// property flyer image and translate its contents into a structured listing
// record in the requested target language.
package extract

import (
	"context"

	"github.com/sora-estate/maisoku/internal/listing"
)

// Extractor extracts and translates a flyer image into a listing record.
type Extractor interface {
	// Extract reads a single still image and returns the translated record.
	// Failures are always classified into one of the Kind values.
	Extract(ctx context.Context, imageData []byte, mimeType string, lang listing.Language) (*listing.Record, error)
}

// Unconfigured is an Extractor used when no API credential is available.
// Every call refuses with KindConfigurationMissing without touching the
// network.
type Unconfigured struct{}

// Extract implements Extractor.
func (Unconfigured) Extract(ctx context.Context, imageData []byte, mimeType string, lang listing.Language) (*listing.Record, error) {
	return nil, &Error{Kind: KindConfigurationMissing, msg: "no API key configured"}
}
