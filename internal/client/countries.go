package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"scrapers/tools/internal/config"
	"scrapers/tools/internal/domain"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// CountryPrinter renders a non-empty lookup result.
type CountryPrinter interface {
	Print(countries []domain.Country) error
}

// CountryClient queries the REST Countries API. Every By* method renders the
// result through the configured printer and reports whether anything was
// found and rendered; Lookup exposes the underlying typed result.
type CountryClient interface {
	Lookup(ctx context.Context, query Query) ([]domain.Country, error)

	All(ctx context.Context) bool
	ByName(ctx context.Context, name string) bool
	ByFullName(ctx context.Context, fullName string) bool
	ByCode(ctx context.Context, code string) bool
	ByCodes(ctx context.Context, codes ...string) bool
	ByCurrency(ctx context.Context, currency string) bool
	ByDemonym(ctx context.Context, demonym string) bool
	ByLanguage(ctx context.Context, lang string) bool
	ByCapital(ctx context.Context, capital string) bool
	ByRegion(ctx context.Context, region string) bool
	BySubregion(ctx context.Context, subregion string) bool
	ByTranslation(ctx context.Context, translation string) bool

	Close() error
}

type countryClient struct {
	baseURL    string
	fields     []string
	httpClient *resty.Client
	printer    CountryPrinter
}

func NewCountryClient(cfg config.CountriesConfig, printer CountryPrinter) CountryClient {
	client := resty.New().
		SetTimeout(cfg.TimeoutDuration()).
		SetRetryCount(0).
		SetLogger(log.StandardLogger()).
		SetHeader("Accept", "application/json")

	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using countries API proxy: %s", cfg.Proxy)
	}

	return &countryClient{
		baseURL:    cfg.BaseURL,
		fields:     append([]string(nil), cfg.Fields...),
		httpClient: client,
		printer:    printer,
	}
}

// Lookup performs one GET for query. A 200 carrying an array yields its
// elements and one carrying a single object yields a one element slice. An
// empty array is ErrNoData, other statuses are *StatusError, undecodable
// bodies are *DecodeError and failed round trips wrap ErrTransport.
func (c *countryClient) Lookup(ctx context.Context, query Query) ([]domain.Country, error) {
	endpoint, err := url.JoinPath(c.baseURL, query.Segments...)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query.Params(c.fields)).
		Get(endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	body := resp.String()
	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{URL: endpoint, Code: resp.StatusCode(), Body: body}
	}

	countries, err := decodeCountries([]byte(body))
	if err != nil {
		return nil, &DecodeError{URL: endpoint, Err: err}
	}

	if len(countries) == 0 {
		return nil, ErrNoData
	}

	log.Debugf("Fetched %d countries from %s", len(countries), endpoint)
	return countries, nil
}

func decodeCountries(body []byte) ([]domain.Country, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	switch trimmed[0] {
	case '[':
		var countries []domain.Country
		if err := json.Unmarshal(trimmed, &countries); err != nil {
			return nil, err
		}
		return countries, nil
	case '{':
		var country domain.Country
		if err := json.Unmarshal(trimmed, &country); err != nil {
			return nil, err
		}
		return []domain.Country{country}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value starting with %q", trimmed[0])
	}
}

func (c *countryClient) render(ctx context.Context, name string, query Query) bool {
	countries, err := c.Lookup(ctx, query)
	if err != nil {
		var statusErr *StatusError
		var decodeErr *DecodeError
		switch {
		case errors.Is(err, ErrNoData):
			log.Warnf("No countries found for %s", name)
		case errors.As(err, &statusErr):
			log.Errorf("❌ Error response url: %s: %d %s", statusErr.URL, statusErr.Code, statusErr.Body)
		case errors.As(err, &decodeErr):
			log.Errorf("❌ JSON decode error (%s): %v", name, decodeErr.Err)
		default:
			log.Errorf("❌ Lookup %s failed: %v", name, err)
		}
		return false
	}

	if err := c.printer.Print(countries); err != nil {
		log.Errorf("❌ Failed to print %s result: %v", name, err)
		return false
	}

	return true
}

func (c *countryClient) All(ctx context.Context) bool {
	return c.render(ctx, "all", queryAll())
}

func (c *countryClient) ByName(ctx context.Context, name string) bool {
	return c.render(ctx, "name", queryName(name))
}

// ByFullName matches the common or official name exactly.
func (c *countryClient) ByFullName(ctx context.Context, fullName string) bool {
	return c.render(ctx, "full name", queryFullName(fullName))
}

// ByCode accepts cca2, ccn3, cca3 or cioc codes.
func (c *countryClient) ByCode(ctx context.Context, code string) bool {
	return c.render(ctx, "code", queryCode(code))
}

func (c *countryClient) ByCodes(ctx context.Context, codes ...string) bool {
	return c.render(ctx, "codes", queryCodes(codes...))
}

func (c *countryClient) ByCurrency(ctx context.Context, currency string) bool {
	return c.render(ctx, "currency", queryCurrency(currency))
}

func (c *countryClient) ByDemonym(ctx context.Context, demonym string) bool {
	return c.render(ctx, "demonym", queryDemonym(demonym))
}

func (c *countryClient) ByLanguage(ctx context.Context, lang string) bool {
	return c.render(ctx, "language", queryLanguage(lang))
}

func (c *countryClient) ByCapital(ctx context.Context, capital string) bool {
	return c.render(ctx, "capital", queryCapital(capital))
}

func (c *countryClient) ByRegion(ctx context.Context, region string) bool {
	return c.render(ctx, "region", queryRegion(region))
}

func (c *countryClient) BySubregion(ctx context.Context, subregion string) bool {
	return c.render(ctx, "subregion", querySubregion(subregion))
}

func (c *countryClient) ByTranslation(ctx context.Context, translation string) bool {
	return c.render(ctx, "translation", queryTranslation(translation))
}

func (c *countryClient) Close() error {
	return c.httpClient.Close()
}
