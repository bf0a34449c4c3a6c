package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kwameosei/ghanajobs/internal/bot"
	"github.com/kwameosei/ghanajobs/internal/cache"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot daemon",
	Long:  "Start the Telegram bot; polls for messages until SIGINT/SIGTERM.",
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Telegram.Token == "" {
		logger.Error("telegram.token is required to run the bot")
		os.Exit(1)
	}

	logger.Info("config loaded",
		"cache_backend", cfg.Cache.Backend,
		"cache_ttl", cfg.Cache.TTL.String(),
		"ai_enabled", cfg.AI.Enabled,
		"job_domains", len(cfg.JobDomains),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resultCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer resultCache.Close()

	an, err := buildAnalyzer(cfg, resultCache, logger)
	if err != nil {
		logger.Error("failed to build analyzer", "error", err)
		os.Exit(1)
	}

	b, err := bot.New(cfg.Telegram.Token, an, cfg.JobDomains, logger)
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}

	// Redis expires entries natively; only the sqlite backend needs sweeping.
	if cfg.Cache.Backend == "sqlite" {
		janitor := cache.NewJanitor(resultCache, cfg.Cache.PurgeInterval, logger)
		go janitor.Run(ctx)
	}

	if err := b.Run(ctx); err != nil {
		logger.Error("bot error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
