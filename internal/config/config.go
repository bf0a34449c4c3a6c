package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kwameosei/ghanajobs/internal/rules"
)

// Config is the root configuration for the ghanajobs bot.
type Config struct {
	Telegram TelegramConfig
	Cache    CacheConfig
	Scraper  ScraperConfig
	AI       AIConfig
	Patterns PatternsConfig
	// JobDomains are URL substrings that mark a link as a job posting for
	// passive message scanning.
	JobDomains []string
}

// TelegramConfig holds the bot credentials.
type TelegramConfig struct {
	Token string // expanded from env var by Load
}

// CacheConfig controls the verdict cache.
type CacheConfig struct {
	Backend       string // "sqlite" (default), "redis", or "none"
	Path          string // sqlite database path
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration // verdict lifetime, default 24h
	StoreUnclear  bool          // cache AI-sourced unclear verdicts
	PurgeInterval time.Duration // janitor interval, default 1h
}

// ScraperConfig controls the page fetcher.
type ScraperConfig struct {
	Timeout      time.Duration // per-request timeout
	MinHostDelay time.Duration // spacing between requests to the same host
	MaxRetries   int           // extra attempts on 429/5xx
	RetryDelay   time.Duration // base backoff before the first retry
}

// AIConfig controls the optional Anthropic fallback layer.
type AIConfig struct {
	Enabled   bool
	BaseURL   string // defaults to https://api.anthropic.com
	Model     string
	APIKey    string // expanded from env var by Load
	MaxTokens int
	Timeout   time.Duration // per-request timeout
}

// PatternsConfig overrides the built-in rule pattern lists. Empty lists keep
// the defaults.
type PatternsConfig struct {
	Helpful            []string
	VisaSponsorship    []string
	NotHelpful         []string
	RemoteFirstDomains []string
}

// RulePatterns resolves the configured pattern lists against the defaults.
func (c *Config) RulePatterns() rules.Patterns {
	p := rules.DefaultPatterns()
	if len(c.Patterns.Helpful) > 0 {
		p.Helpful = c.Patterns.Helpful
	}
	if len(c.Patterns.VisaSponsorship) > 0 {
		p.VisaSponsorship = c.Patterns.VisaSponsorship
	}
	if len(c.Patterns.NotHelpful) > 0 {
		p.NotHelpful = c.Patterns.NotHelpful
	}
	if len(c.Patterns.RemoteFirstDomains) > 0 {
		p.RemoteFirstDomains = c.Patterns.RemoteFirstDomains
	}
	return p
}

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-sonnet-4-20250514"
)

// defaultJobDomains mark URLs as job postings during passive scanning.
var defaultJobDomains = []string{
	"linkedin.com/jobs",
	"indeed.com",
	"greenhouse.io",
	"lever.co",
	"jobs.lever.co",
	"workable.com",
	"angel.co/jobs",
	"wellfound.com",
	"remoteok.com",
	"weworkremotely.com",
	"glassdoor.com/job",
	"ziprecruiter.com",
	"careers.google.com",
	"jobs.apple.com",
	"amazon.jobs",
	"apply.workable.com",
	"job-boards.greenhouse.io",
	"boards.greenhouse.io",
	"/jobs/",
	"/careers/",
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as
// strings).
type rawConfig struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	Cache struct {
		Backend       string `yaml:"backend"`
		Path          string `yaml:"path"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		TTL           string `yaml:"ttl"`
		StoreUnclear  bool   `yaml:"store_unclear"`
		PurgeInterval string `yaml:"purge_interval"`
	} `yaml:"cache"`
	Scraper struct {
		Timeout      string `yaml:"timeout"`
		MinHostDelay string `yaml:"min_host_delay"`
		MaxRetries   *int   `yaml:"max_retries"`
		RetryDelay   string `yaml:"retry_delay"`
	} `yaml:"scraper"`
	AI struct {
		Enabled   bool   `yaml:"enabled"`
		BaseURL   string `yaml:"base_url"`
		Model     string `yaml:"model"`
		APIKey    string `yaml:"api_key"`
		MaxTokens int    `yaml:"max_tokens"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"ai"`
	Patterns struct {
		Helpful            []string `yaml:"helpful"`
		VisaSponsorship    []string `yaml:"visa_sponsorship"`
		NotHelpful         []string `yaml:"not_helpful"`
		RemoteFirstDomains []string `yaml:"remote_first_domains"`
	} `yaml:"patterns"`
	JobDomains []string `yaml:"job_domains"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, applies defaults, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables (e.g. api_key: ${ANTHROPIC_API_KEY}).
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{Token: raw.Telegram.Token},
		Cache: CacheConfig{
			Backend:       raw.Cache.Backend,
			Path:          raw.Cache.Path,
			RedisAddr:     raw.Cache.RedisAddr,
			RedisPassword: raw.Cache.RedisPassword,
			RedisDB:       raw.Cache.RedisDB,
			StoreUnclear:  raw.Cache.StoreUnclear,
		},
		AI: AIConfig{
			Enabled:   raw.AI.Enabled,
			BaseURL:   raw.AI.BaseURL,
			Model:     raw.AI.Model,
			APIKey:    raw.AI.APIKey,
			MaxTokens: raw.AI.MaxTokens,
		},
		Patterns: PatternsConfig{
			Helpful:            raw.Patterns.Helpful,
			VisaSponsorship:    raw.Patterns.VisaSponsorship,
			NotHelpful:         raw.Patterns.NotHelpful,
			RemoteFirstDomains: raw.Patterns.RemoteFirstDomains,
		},
		JobDomains: raw.JobDomains,
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "sqlite"
	}
	switch cfg.Cache.Backend {
	case "sqlite", "redis", "none":
	default:
		return nil, fmt.Errorf("unknown cache.backend %q", cfg.Cache.Backend)
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "job_cache.db"
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}

	cfg.Cache.TTL, err = parseDuration("cache.ttl", raw.Cache.TTL, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.Cache.PurgeInterval, err = parseDuration("cache.purge_interval", raw.Cache.PurgeInterval, time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.Scraper.Timeout, err = parseDuration("scraper.timeout", raw.Scraper.Timeout, 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Scraper.MinHostDelay, err = parseDuration("scraper.min_host_delay", raw.Scraper.MinHostDelay, time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Scraper.RetryDelay, err = parseDuration("scraper.retry_delay", raw.Scraper.RetryDelay, 2*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Scraper.MaxRetries = 2
	if raw.Scraper.MaxRetries != nil {
		cfg.Scraper.MaxRetries = *raw.Scraper.MaxRetries
	}

	cfg.AI.Timeout, err = parseDuration("ai.timeout", raw.AI.Timeout, 30*time.Second)
	if err != nil {
		return nil, err
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = defaultAnthropicBaseURL
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultAnthropicModel
	}
	if cfg.AI.MaxTokens <= 0 {
		cfg.AI.MaxTokens = 300
	}

	if len(cfg.JobDomains) == 0 {
		cfg.JobDomains = defaultJobDomains
	}

	return cfg, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return d, nil
}
