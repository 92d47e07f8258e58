package importer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/PaquitoSoft/small-shop/internal/catalog"
)

// imageHash names a downloaded image after its source url so re-runs reuse
// the same file.
func imageHash(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// downloadProductImages fetches the detail and swatch images of one product
// into the static image directory. Downloads run concurrently, bounded by
// the configured downloader count.
func (i *Importer) downloadProductImages(ctx context.Context, product catalog.Product) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(i.downloaders)

	for _, imageURL := range product.ImagesURLs {
		imageURL := imageURL
		group.Go(func() error {
			dest := filepath.Join(i.imageDir, "products", product.ID, imageHash(imageURL)+".jpg")
			return i.downloadImage(ctx, imageURL, dest)
		})
	}
	for _, color := range product.Colors {
		color := color
		group.Go(func() error {
			dest := filepath.Join(i.imageDir, "colors", imageHash(color.ImageURL)+".jpg")
			return i.downloadImage(ctx, color.ImageURL, dest)
		})
	}

	return group.Wait()
}

// downloadImage fetches one image. Upstream serves protocol-relative urls.
func (i *Importer) downloadImage(ctx context.Context, url, destinationPath string) error {
	if strings.HasPrefix(url, "//") {
		url = "http:" + url
	}

	if err := os.MkdirAll(filepath.Dir(destinationPath), 0o755); err != nil {
		return fmt.Errorf("creating image directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building image request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching image %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("fetching image %s: status %d", url, resp.StatusCode)
	}

	file, err := os.Create(destinationPath)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("writing image file: %w", err)
	}
	return nil
}

// rewriteImageReferences swaps remote image urls for the hashed local names
// the static file server resolves.
func rewriteImageReferences(product catalog.Product) catalog.Product {
	hashed := make([]string, len(product.ImagesURLs))
	for index, imageURL := range product.ImagesURLs {
		hashed[index] = imageHash(imageURL)
	}
	product.ImagesURLs = hashed

	colors := make([]catalog.ProductColor, len(product.Colors))
	for index, color := range product.Colors {
		color.ImageURL = imageHash(color.ImageURL)
		colors[index] = color
	}
	product.Colors = colors

	return product
}
