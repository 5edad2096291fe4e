package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scrapers/tools/internal/config"
	"scrapers/tools/internal/domain"

	log "github.com/sirupsen/logrus"
)

const DefaultWaitTimeout = 10 * time.Second

// PageDriver is the browser surface a PageSession needs. *browser.Driver
// satisfies it.
type PageDriver interface {
	Navigate(ctx context.Context, url string) error
	WaitPresent(ctx context.Context, selector string, timeout time.Duration) error
	HTML(ctx context.Context) (string, error)
	Close() error
}

// WaitPolicy bounds how long the session waits for the title element. Any
// outcome other than presence within Timeout is treated as absence.
type WaitPolicy struct {
	Timeout time.Duration
}

func DefaultWaitPolicy() WaitPolicy {
	return WaitPolicy{Timeout: DefaultWaitTimeout}
}

// PageSession extracts one product page with an exclusively owned browser.
// The driver is closed when Extract returns, whatever the outcome, so a
// session serves a single extraction.
type PageSession struct {
	driver    PageDriver
	parser    *productParser
	selectors config.SelectorConfig
	wait      WaitPolicy
	closed    bool
}

func NewPageSession(driver PageDriver, selectors config.SelectorConfig, wait WaitPolicy) *PageSession {
	if wait.Timeout <= 0 {
		wait = DefaultWaitPolicy()
	}

	return &PageSession{
		driver:    driver,
		parser:    newProductParser(selectors),
		selectors: selectors,
		wait:      wait,
	}
}

// Extract navigates to url and reads the product record. Failures are
// *ExtractionError values; missing elements and title timeouts both match
// ErrElementNotFound.
func (s *PageSession) Extract(ctx context.Context, url string) (*domain.Product, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.closed = true

	defer func() {
		if err := s.driver.Close(); err != nil {
			log.Warnf("⚠️ Failed to close browser: %v", err)
		}
	}()

	if err := s.driver.Navigate(ctx, url); err != nil {
		return nil, &ExtractionError{
			Field:  "page",
			Reason: ReasonNavigation,
			Err:    fmt.Errorf("%w: %w", ErrNavigation, err),
		}
	}

	if err := s.driver.WaitPresent(ctx, s.selectors.Title, s.wait.Timeout); err != nil {
		reason := ReasonMissing
		if errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		return nil, &ExtractionError{
			Field:    "name",
			Selector: s.selectors.Title,
			Reason:   reason,
			Err:      fmt.Errorf("%w: %w", ErrElementNotFound, err),
		}
	}

	html, err := s.driver.HTML(ctx)
	if err != nil {
		return nil, &ExtractionError{Field: "document", Reason: ReasonSnapshot, Err: err}
	}

	return s.parser.ParseProduct(html, url)
}

// Scrape is Extract narrowed to presence or absence: failures are logged and
// reported as nil.
func (s *PageSession) Scrape(ctx context.Context, url string) *domain.Product {
	product, err := s.Extract(ctx, url)
	if err != nil {
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) && extractionErr.Reason == ReasonTimeout {
			log.Errorf("❌ Timed out after %v waiting for page %s", s.wait.Timeout, url)
		}
		log.Errorf("❌ Failed to extract product from %s: %v", url, err)
		return nil
	}

	log.Infof("✅ Extracted product %q from %s", product.Name, url)
	return product
}
