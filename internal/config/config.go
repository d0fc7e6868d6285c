package config

import (
	"time"

	"seo-content-go/pkg/logger"
)

type Config struct {
	Scraper   ScraperConfig   `mapstructure:"scraper"`
	Serp      SerpConfig      `mapstructure:"serp"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Ranker    RankerConfig    `mapstructure:"ranker"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logger    logger.Config   `mapstructure:"logger"`
}

type ScraperConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxProducts    int           `mapstructure:"max_products"`
	MinConfidence  int           `mapstructure:"min_confidence"`
	AcceptLanguage string        `mapstructure:"accept_language"`
}

type SerpConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MaxKeywords       int     `mapstructure:"max_keywords"`
	ResultsPerKeyword int     `mapstructure:"results_per_keyword"`
	MaxResults        int     `mapstructure:"max_results"`
	Concurrency       int     `mapstructure:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Region            string  `mapstructure:"region"`
	Endpoint          string  `mapstructure:"endpoint"`
}

type ExtractorConfig struct {
	FallbackKeywords int `mapstructure:"fallback_keywords"`
}

type RankerConfig struct {
	TopN int `mapstructure:"top_n"`
}

type StorageConfig struct {
	// Driver is "file" (markdown plus JSON sidecar) or "sqlite".
	Driver    string        `mapstructure:"driver"`
	OutputDir string        `mapstructure:"output_dir"`
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}

// defaults mirrors config.example.yaml.
var defaults = map[string]interface{}{
	"scraper.timeout":             "15s",
	"scraper.max_products":        50,
	"scraper.min_confidence":      3,
	"scraper.accept_language":     "it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7",
	"serp.enabled":                true,
	"serp.max_keywords":           5,
	"serp.results_per_keyword":    10,
	"serp.max_results":            20,
	"serp.concurrency":            2,
	"serp.requests_per_second":    1.0,
	"serp.region":                 "it-it",
	"serp.endpoint":               "https://html.duckduckgo.com/html/",
	"extractor.fallback_keywords": 10,
	"ranker.top_n":                30,
	"storage.driver":              "file",
	"storage.output_dir":          "output",
	"storage.cache_size":          128,
	"storage.cache_ttl":           "30m",
	"logger.level":                "info",
	"logger.format":               "json",
	"logger.output":               "stderr",
	"logger.time_format":          "rfc3339",
}
