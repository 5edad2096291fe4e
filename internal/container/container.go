package container

import (
	"context"
	"fmt"
	"io"
	"os"

	"scrapers/tools/internal/browser"
	"scrapers/tools/internal/client"
	"scrapers/tools/internal/config"
	"scrapers/tools/internal/sink"
	"scrapers/tools/internal/table"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type browserLauncher func(opts browser.Options) (client.PageDriver, error)

// Container holds all initialized components
type Container struct {
	Config    *config.Config
	Countries client.CountryClient
	Printer   *table.Printer
	Sink      *sink.ResultSink

	launchBrowser browserLauncher
}

// New creates a new container writing to stdout and the local filesystem
func New(cfg *config.Config) (*Container, error) {
	return newContainer(cfg, afero.NewOsFs(), os.Stdout, launchRodBrowser)
}

func newContainer(cfg *config.Config, fs afero.Fs, stdout io.Writer, launch browserLauncher) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	printer := table.NewPrinter(stdout)

	return &Container{
		Config:        cfg,
		Countries:     client.NewCountryClient(cfg.Countries, printer),
		Printer:       printer,
		Sink:          sink.NewResultSink(fs, cfg.Product.OutputFile, stdout),
		launchBrowser: launch,
	}, nil
}

func launchRodBrowser(opts browser.Options) (client.PageDriver, error) {
	return browser.Launch(opts)
}

// RunProduct extracts the configured product page and writes the record to
// stdout and the output file. Extraction and write failures are logged and do
// not fail the run; only a browser that cannot start does.
func (c *Container) RunProduct(ctx context.Context) error {
	cfg := c.Config.Product

	log.Infof("🔄 Launching browser (headless=%t)", cfg.Headless)
	driver, err := c.launchBrowser(browser.Options{
		Headless: cfg.Headless,
		Stealth:  cfg.Stealth,
		Proxy:    cfg.Proxy,
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	session := client.NewPageSession(driver, cfg.Selectors, client.WaitPolicy{Timeout: cfg.WaitTimeoutDuration()})

	product := session.Scrape(ctx, cfg.URL)
	if product == nil {
		log.Warnf("No product extracted from %s", cfg.URL)
		return nil
	}

	if err := c.Sink.WriteConsole(product); err != nil {
		log.Errorf("❌ %v", err)
	}
	if err := c.Sink.WriteFile(product); err != nil {
		log.Errorf("❌ %v", err)
	}

	return nil
}

// RunCountries executes every lookup variant once against the countries API
func (c *Container) RunCountries(ctx context.Context) error {
	lookups := []struct {
		name string
		run  func() bool
	}{
		{"all", func() bool { return c.Countries.All(ctx) }},
		{"name deutschland", func() bool { return c.Countries.ByName(ctx, "deutschland") }},
		{"full name Germany", func() bool { return c.Countries.ByFullName(ctx, "Germany") }},
		{"code col", func() bool { return c.Countries.ByCode(ctx, "col") }},
		{"codes 170,pe", func() bool { return c.Countries.ByCodes(ctx, "170", "pe") }},
		{"currency cop", func() bool { return c.Countries.ByCurrency(ctx, "cop") }},
		{"demonym peruvian", func() bool { return c.Countries.ByDemonym(ctx, "peruvian") }},
		{"language spanish", func() bool { return c.Countries.ByLanguage(ctx, "spanish") }},
		{"capital tallinn", func() bool { return c.Countries.ByCapital(ctx, "tallinn") }},
		{"region europe", func() bool { return c.Countries.ByRegion(ctx, "europe") }},
		{"subregion Northern Europe", func() bool { return c.Countries.BySubregion(ctx, "Northern Europe") }},
		{"translation germany", func() bool { return c.Countries.ByTranslation(ctx, "germany") }},
	}

	succeeded := 0
	for _, lookup := range lookups {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Debugf("Running lookup: %s", lookup.name)
		if lookup.run() {
			succeeded++
		} else {
			log.Warnf("Lookup %s returned no result", lookup.name)
		}
	}

	log.Infof("✅ Completed %d/%d country lookups", succeeded, len(lookups))
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if err := c.Countries.Close(); err != nil {
		return fmt.Errorf("failed to close countries client: %w", err)
	}

	log.Info("Container shut down successfully")
	return nil
}
