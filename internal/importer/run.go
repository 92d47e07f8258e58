package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/pkg/config"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
)

// catalogStore is the slice of the catalog repository the importer writes
// through.
type catalogStore interface {
	FindCategoryByID(ctx context.Context, id string) (*catalog.Category, error)
	InsertCategory(ctx context.Context, category catalog.Category) error
	FindProductByID(ctx context.Context, id string) (*catalog.Product, error)
	InsertProduct(ctx context.Context, product catalog.Product) error
}

// Importer scrapes the upstream fashion site into the catalog store and the
// static image directory. Re-runs skip products already imported.
type Importer struct {
	store       catalogStore
	client      *http.Client
	logg        *logger.Logger
	baseURL     string
	imageDir    string
	downloaders int
	pageSize    int
	categories  []sourceCategory
}

// New builds an importer from the configured scrape target.
func New(store catalogStore, cfg config.ImporterConfig, logg *logger.Logger) (*Importer, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	downloaders := cfg.Downloaders
	if downloaders <= 0 {
		downloaders = 1
	}
	return &Importer{
		store:       store,
		client:      &http.Client{Timeout: cfg.HTTPTimeout},
		logg:        logg,
		baseURL:     cfg.BaseURL,
		imageDir:    cfg.ImageDir,
		downloaders: downloaders,
		pageSize:    cfg.PageSize,
		categories:  defaultCategories,
	}, nil
}

// Run imports every category in sequence. A category failure aborts the run;
// everything imported so far stays imported.
func (i *Importer) Run(ctx context.Context) error {
	for _, category := range i.categories {
		ctx := i.logg.WithField(ctx, "category", category.Name)
		i.logg.Info(ctx, "importing category")

		if err := i.importCategory(ctx, category); err != nil {
			return fmt.Errorf("importing category %s: %w", category.Name, err)
		}
	}
	return nil
}

func (i *Importer) importCategory(ctx context.Context, category sourceCategory) error {
	if err := i.ensureCategory(ctx, category); err != nil {
		return err
	}

	listingURL := fmt.Sprintf("%s/%s.html?&offset=30&page-size=%d", i.baseURL, category.Key, i.pageSize)
	resp, err := i.fetch(ctx, listingURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	products, err := parseListing(resp.Body, category.ID)
	if err != nil {
		return err
	}
	i.logg.Info(i.logg.WithField(ctx, "products", len(products)), "parsed category listing")

	for _, product := range products {
		if err := i.importProduct(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (i *Importer) ensureCategory(ctx context.Context, category sourceCategory) error {
	_, err := i.store.FindCategoryByID(ctx, category.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}
	return i.store.InsertCategory(ctx, catalog.Category{ID: category.ID, Name: category.Name})
}

func (i *Importer) importProduct(ctx context.Context, product catalog.Product) error {
	ctx = i.logg.WithField(ctx, "product", product.ID)

	_, err := i.store.FindProductByID(ctx, product.ID)
	if err == nil {
		i.logg.Info(ctx, "product already imported, skipping")
		return nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	resp, err := i.fetch(ctx, fmt.Sprintf("%s/productpage.%s.html", i.baseURL, product.ID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	fullProduct, err := parseProductDetail(resp.Body, product)
	if err != nil {
		return err
	}

	if err := i.downloadProductImages(ctx, fullProduct); err != nil {
		return err
	}

	if err := i.store.InsertProduct(ctx, rewriteImageReferences(fullProduct)); err != nil {
		return err
	}
	i.logg.Info(ctx, "product imported")
	return nil
}

func (i *Importer) fetch(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}
