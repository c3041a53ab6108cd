package images

import (
	"context"

	"slidecast/internal/slides"
)

// Fetcher finds and downloads illustration images for a slide. A slide
// with no usable results yields an empty list, never an error the
// caller must abort on.
type Fetcher interface {
	FetchImagesForSlide(ctx context.Context, slide slides.Slide, destDir string) ([]string, error)
}
