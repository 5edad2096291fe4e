package client

import (
	"fmt"
	"strings"

	"scrapers/tools/internal/config"
	"scrapers/tools/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

type productParser struct {
	selectors config.SelectorConfig
}

func newProductParser(selectors config.SelectorConfig) *productParser {
	return &productParser{
		selectors: selectors,
	}
}

// ParseProduct reads every product field from a rendered page. All fields are
// required; the first missing one aborts the parse.
func (p *productParser) ParseProduct(html string, sourceURL string) (*domain.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Field: "document", Reason: ReasonSnapshot, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	product := &domain.Product{SourceURL: sourceURL}

	title, err := p.requireOne(doc, "name", p.selectors.Title)
	if err != nil {
		return nil, err
	}
	product.Name = normalizeText(title.Text())

	product.ImageURLs, err = p.extractImages(doc)
	if err != nil {
		return nil, err
	}

	price, err := p.requireOne(doc, "price", p.selectors.Price)
	if err != nil {
		return nil, err
	}
	product.Price = normalizeText(price.Text())

	seller, err := p.requireOne(doc, "seller", p.selectors.Seller)
	if err != nil {
		return nil, err
	}
	product.Seller = strings.TrimSpace(seller.AttrOr(p.selectors.SellerAttr, ""))

	shipping, err := p.requireOne(doc, "shipping_cost", p.selectors.Shipping)
	if err != nil {
		return nil, err
	}
	product.ShippingCost = normalizeText(shipping.Text())

	log.Debugf("Parsed product %q with %d images", product.Name, len(product.ImageURLs))
	return product, nil
}

// extractImages requires the carousel container but accepts zero images in it.
func (p *productParser) extractImages(doc *goquery.Document) ([]string, error) {
	carousel, err := p.requireOne(doc, "path_img", p.selectors.Carousel)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0)
	carousel.Find(p.selectors.Images).Each(func(i int, img *goquery.Selection) {
		src, exists := img.Attr(p.selectors.ImageAttr)
		if !exists {
			log.Debugf("Carousel image %d has no %s attribute", i, p.selectors.ImageAttr)
		}
		images = append(images, src)
	})

	return images, nil
}

func (p *productParser) requireOne(doc *goquery.Document, field, selector string) (*goquery.Selection, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, missingElement(field, selector)
	}
	return sel, nil
}

// normalizeText collapses runs of whitespace the way a browser renders text.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
