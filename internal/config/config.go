package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Product   ProductConfig   `mapstructure:"product"`
	Countries CountriesConfig `mapstructure:"countries"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// ProductConfig holds the product page extractor configuration
type ProductConfig struct {
	URL         string         `mapstructure:"url"`
	OutputFile  string         `mapstructure:"output_file"`
	Headless    bool           `mapstructure:"headless"`
	Stealth     bool           `mapstructure:"stealth"`
	Proxy       string         `mapstructure:"proxy"`
	WaitTimeout int            `mapstructure:"wait_timeout"` // seconds
	Selectors   SelectorConfig `mapstructure:"selectors"`
}

// SelectorConfig holds CSS selectors for every extracted field
type SelectorConfig struct {
	Title      string `mapstructure:"title"`
	Carousel   string `mapstructure:"carousel"`
	Images     string `mapstructure:"images"`
	ImageAttr  string `mapstructure:"image_attr"`
	Price      string `mapstructure:"price"`
	Seller     string `mapstructure:"seller"`
	SellerAttr string `mapstructure:"seller_attr"`
	Shipping   string `mapstructure:"shipping"`
}

// CountriesConfig holds REST Countries API configuration
type CountriesConfig struct {
	BaseURL   string   `mapstructure:"base_url"`
	Timeout   int      `mapstructure:"timeout"` // seconds
	UserAgent string   `mapstructure:"user_agent"`
	Proxy     string   `mapstructure:"proxy"`
	Fields    []string `mapstructure:"fields"`
}

func (c ProductConfig) WaitTimeoutDuration() time.Duration {
	return time.Duration(c.WaitTimeout) * time.Second
}

func (c CountriesConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load loads configuration from an optional YAML file with environment variable overrides
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug("config.yaml not found, using defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values that would make either pipeline unusable
func (c *Config) Validate() error {
	if c.Product.WaitTimeout <= 0 {
		return fmt.Errorf("product.wait_timeout must be positive, got %d", c.Product.WaitTimeout)
	}
	if c.Product.OutputFile == "" {
		return errors.New("product.output_file must not be empty")
	}
	if c.Countries.BaseURL == "" {
		return errors.New("countries.base_url must not be empty")
	}
	if len(c.Countries.Fields) == 0 {
		return errors.New("countries.fields must list at least one field")
	}
	return nil
}

// ConfigureLogging applies the log section to the global logrus logger
func ConfigureLogging(cfg LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("product.url", "https://www.ebay.com/itm/404265004322")
	v.SetDefault("product.output_file", "temp.json")
	v.SetDefault("product.headless", true)
	v.SetDefault("product.stealth", false)
	v.SetDefault("product.proxy", "")
	v.SetDefault("product.wait_timeout", 10)
	v.SetDefault("product.selectors.title", ".x-item-title__mainTitle")
	v.SetDefault("product.selectors.carousel", "#PicturePanel .ux-image-carousel-container .zoom")
	v.SetDefault("product.selectors.images", ".ux-image-carousel-item.image-treatment.image img")
	v.SetDefault("product.selectors.image_attr", "data-zoom-src")
	v.SetDefault("product.selectors.price", ".x-price-section .x-bin-price__content .x-price-primary .ux-textspans")
	v.SetDefault("product.selectors.seller", ".x-sellercard-atf__info__about-seller")
	v.SetDefault("product.selectors.seller_attr", "title")
	v.SetDefault("product.selectors.shipping",
		".ux-layout-section--shipping .ux-labels-values--shipping .ux-labels-values__values .ux-textspans--BOLD")

	v.SetDefault("countries.base_url", "https://restcountries.com/v3.1")
	v.SetDefault("countries.timeout", 30)
	v.SetDefault("countries.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("countries.proxy", "")
	v.SetDefault("countries.fields", []string{"name", "capital", "flags"})
}
