package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"seo-content-go/pkg/scraper"
)

const envPrefix = "SEOCONTENT"

type manager struct {
	mu       sync.RWMutex
	config   *Config
	viper    *viper.Viper
	fromFile bool
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath on top of the defaults. An empty path loads defaults and
// environment overrides only.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if m.fromFile {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	if m.fromFile {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) {
	for key, value := range defaults {
		m.viper.SetDefault(key, value)
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.fromFile = configPath != ""
	if m.fromFile {
		m.viper.SetConfigFile(configPath)
	}
}

func (m *manager) decode() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Default returns the built-in configuration with environment overrides applied.
func Default() (*Config, error) {
	return NewManager().Load("")
}

func validateConfig(config *Config) error {
	if config.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be positive")
	}

	if config.Scraper.MaxProducts <= 0 {
		return fmt.Errorf("scraper.max_products must be positive")
	}

	if config.Scraper.MinConfidence < scraper.MinConfidence {
		return fmt.Errorf("scraper.min_confidence must be at least %d", scraper.MinConfidence)
	}

	if config.Serp.MaxKeywords <= 0 || config.Serp.ResultsPerKeyword <= 0 || config.Serp.MaxResults <= 0 {
		return fmt.Errorf("serp limits must be positive")
	}

	if config.Serp.Concurrency <= 0 {
		return fmt.Errorf("serp.concurrency must be positive")
	}

	if config.Extractor.FallbackKeywords < 0 {
		return fmt.Errorf("extractor.fallback_keywords cannot be negative")
	}

	if config.Ranker.TopN <= 0 {
		return fmt.Errorf("ranker.top_n must be positive")
	}

	if config.Serp.RequestsPerSecond < 0 {
		return fmt.Errorf("serp.requests_per_second cannot be negative")
	}

	switch config.Storage.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown storage.driver %q", config.Storage.Driver)
	}

	if config.Storage.OutputDir == "" {
		return fmt.Errorf("storage.output_dir cannot be empty")
	}

	if config.Storage.CacheSize <= 0 {
		return fmt.Errorf("storage.cache_size must be positive")
	}

	return nil
}
