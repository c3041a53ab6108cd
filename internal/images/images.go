package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"slidecast/internal/slides"
)

// searchResponse is the pixabay-style search API shape.
type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

type searchHit struct {
	WebformatURL string `json:"webformatURL"`
	Tags         string `json:"tags"`
}

// FetchImagesForSlide searches for candidate images and downloads up to
// maxPerSlide of them into destDir. Candidates that fail to download
// are skipped. Title slides never carry images.
func (f *implFetcher) FetchImagesForSlide(ctx context.Context, slide slides.Slide, destDir string) ([]string, error) {
	if slide.Type == slides.TypeTitle {
		return nil, nil
	}
	if f.searchURL == "" {
		f.logger.Debug(ctx, "Image search disabled, skipping slide %d", slide.SlideIndex+1)
		return nil, nil
	}

	query := buildQuery(slide)
	hits, err := f.search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var paths []string
	for i, hit := range hits {
		if len(paths) >= f.maxPerSlide {
			break
		}
		dest := filepath.Join(destDir, fmt.Sprintf("slide_%d_img_%d.jpg", slide.SlideIndex, i))
		if err := f.download(ctx, hit.WebformatURL, dest); err != nil {
			f.logger.Warn(ctx, "Download failed for slide %d candidate %d: %v", slide.SlideIndex+1, i, err)
			continue
		}
		paths = append(paths, dest)
	}

	f.logger.Info(ctx, "Slide %d: %d of %d image candidates downloaded", slide.SlideIndex+1, len(paths), len(hits))
	return paths, nil
}

// buildQuery enriches the slide title with its first bullet point, and
// appends an infographic hint for explanatory titles.
func buildQuery(slide slides.Slide) string {
	query := slide.Title
	if len(slide.Points) > 0 {
		first := slide.Points[0]
		if len(first) > 80 {
			first = first[:80]
		}
		query = query + " " + first
	}

	lower := strings.ToLower(slide.Title)
	for _, word := range []string{"how", "what", "why", "process", "steps"} {
		if strings.Contains(lower, word) {
			query += " infographic"
			break
		}
	}
	return strings.TrimSpace(query)
}

func (f *implFetcher) search(ctx context.Context, query string) ([]searchHit, error) {
	params := url.Values{}
	params.Set("key", f.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("orientation", "horizontal")
	params.Set("per_page", strconv.Itoa(f.maxPerSlide*2))
	params.Set("safesearch", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return result.Hits, nil
}

func (f *implFetcher) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download status %d", resp.StatusCode)
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
