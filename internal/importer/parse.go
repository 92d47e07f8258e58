package importer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/PaquitoSoft/small-shop/internal/catalog"
)

var productPagePattern = regexp.MustCompile(`productpage\.(\d*)\.html`)

// parseListing extracts the lightweight product tiles from a category
// listing page. Detail fields (images, colors, sizes) come later from the
// product page.
func parseListing(body io.Reader, categoryID string) ([]catalog.Product, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing listing page: %w", err)
	}

	var products []catalog.Product
	doc.Find(".product-items-content .product-item").Each(func(_ int, tile *goquery.Selection) {
		headline := tile.Find(".product-item-headline a")
		href, _ := headline.Attr("href")
		match := productPagePattern.FindStringSubmatch(href)
		if match == nil {
			return
		}
		products = append(products, catalog.Product{
			ID:         match[1],
			Name:       strings.TrimSpace(headline.Text()),
			Price:      parsePrice(tile.Find(".product-item-price").Text()),
			CategoryID: categoryID,
		})
	})
	return products, nil
}

// parsePrice strips the leading currency symbol from a price label.
func parsePrice(label string) float64 {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return 0
	}
	runes := []rune(trimmed)
	value, err := strconv.ParseFloat(strings.TrimSpace(string(runes[1:])), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseProductDetail fills a listing product with the detail page's images,
// colors and sizes. Thumbnail urls are swapped to their full-size variant.
func parseProductDetail(body io.Reader, product catalog.Product) (catalog.Product, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("parsing product page: %w", err)
	}

	detail := doc.Find(".product-detail")

	product.ImagesURLs = nil
	detail.Find(".product-detail-thumbnail-image").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			product.ImagesURLs = append(product.ImagesURLs, strings.Replace(src, "thumb", "main", 1))
		}
	})

	product.Colors = nil
	detail.Find(".product-colors").Each(func(_ int, color *goquery.Selection) {
		input := color.Find("li input")
		id, _ := input.Attr("data-articlecode")
		name, _ := input.Attr("value")
		sizesAttr, _ := input.Attr("data-sizes")
		imageURL, _ := color.Find(".detailbox img").Attr("src")
		product.Colors = append(product.Colors, catalog.ProductColor{
			ID:       id,
			Name:     name,
			ImageURL: imageURL,
			Sizes:    splitSizes(sizesAttr),
		})
	})

	product.Sizes = nil
	detail.Find(".product-sizes ul.inputlist").First().Find("li").Each(func(_ int, size *goquery.Selection) {
		input := size.Find("input")
		id, _ := input.Attr("data-size")
		name, _ := input.Attr("value")
		product.Sizes = append(product.Sizes, catalog.ProductSize{
			ID:   id,
			Name: name,
		})
	})

	return product, nil
}

func splitSizes(attr string) []string {
	if attr == "" {
		return nil
	}
	return strings.Split(attr, ",")
}
