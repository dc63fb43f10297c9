// Package describe generates accessibility descriptions of converted images.
//
// The conversion engine never calls a network itself; it exposes the
// Provider interface and callers inject an implementation (or none). The
// OpenAI implementation lives in openai.go.
package describe

import (
	"context"
	"image"
)

// Provider is the capability interface for image description. A nil or
// absent Provider simply means descriptions are unavailable; conversion
// proceeds without them.
type Provider interface {
	// Describe returns a screen-reader-friendly description of the image.
	// The context controls cancellation and timeout.
	Describe(ctx context.Context, img image.Image) (string, error)
}
