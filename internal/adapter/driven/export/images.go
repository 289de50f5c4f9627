package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/entity"
)

var imageClient = &http.Client{Timeout: 15 * time.Second}

// DownloadProductImages fetches each record's image into dir, named by
// record id, skipping files that already exist. Failures are warned and
// skipped; a missing picture should not sink a report.
func (r *ExportRepositoryImpl) DownloadProductImages(ctx context.Context, records []entity.ProductRecord, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating images directory: %w", err)
	}

	for _, p := range records {
		if p.ImageURL == "" {
			continue
		}
		target := filepath.Join(dir, p.ID+imageExt(p.ImageURL))
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := downloadImage(ctx, p.ImageURL, target); err != nil {
			r.console.LogWarning("image for %s failed: %v", p.ID, err)
		}
	}
	return nil
}

func downloadImage(ctx context.Context, url, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := imageClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

func imageExt(url string) string {
	lower := strings.ToLower(url)
	for _, ext := range []string{".jpeg", ".jpg", ".png", ".webp"} {
		if strings.Contains(lower, ext) {
			return ext
		}
	}
	return ".jpg"
}
