package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwameosei/ghanajobs/internal/ai"
	"github.com/kwameosei/ghanajobs/internal/analyzer"
	"github.com/kwameosei/ghanajobs/internal/cache"
	"github.com/kwameosei/ghanajobs/internal/config"
	"github.com/kwameosei/ghanajobs/internal/model"
	"github.com/kwameosei/ghanajobs/internal/rules"
	"github.com/kwameosei/ghanajobs/internal/scraper"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "ghanajobs",
	Short: "Job accessibility checker for Ghana-based job seekers",
	Long:  "GhanaJobs classifies job-posting URLs as accessible, visa-sponsoring, or location-restricted for Ghana-based candidates, via a Telegram bot or one-shot CLI checks.",
	// Default to `bot` so that `ghanajobs` with no args runs the daemon.
	RunE: runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: GHANAJOBS_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > GHANAJOBS_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("GHANAJOBS_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func buildCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.ResultCache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		logger.Info("using redis cache", "addr", cfg.Cache.RedisAddr, "db", cfg.Cache.RedisDB)
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	case "none":
		logger.Info("caching disabled")
		return cache.NewNopCache(), nil
	default:
		logger.Info("using sqlite cache", "path", cfg.Cache.Path)
		return cache.NewSQLiteCache(cfg.Cache.Path)
	}
}

func setupJudge(cfg *config.Config, logger *slog.Logger) model.AIJudge {
	if !cfg.AI.Enabled || cfg.AI.APIKey == "" {
		logger.Info("ai judge disabled, rule-based analysis only")
		return ai.NewNopJudge()
	}
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	provider := ai.NewAnthropicProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, httpClient)
	logger.Info("ai judge enabled", "model", cfg.AI.Model)
	return ai.NewLLMJudge(provider, ai.JobAnalysisTemplate, logger)
}

func buildAnalyzer(cfg *config.Config, resultCache model.ResultCache, logger *slog.Logger) (*analyzer.Analyzer, error) {
	engine, err := rules.NewEngine(cfg.RulePatterns())
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: cfg.Scraper.Timeout}
	fetcher := scraper.NewScraper(httpClient, cfg.Scraper.MinHostDelay, cfg.Scraper.MaxRetries, cfg.Scraper.RetryDelay, logger)
	judge := setupJudge(cfg, logger)

	return analyzer.NewAnalyzer(engine, resultCache, fetcher, judge, cfg.Cache.TTL, cfg.Cache.StoreUnclear, logger), nil
}
