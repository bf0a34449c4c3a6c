package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the verdict cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache entry counts",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached verdict",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resultCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer resultCache.Close()

	stats, err := resultCache.Stats(ctx)
	if err != nil {
		logger.Error("failed to read stats", "error", err)
		os.Exit(1)
	}

	fmt.Printf("total:   %d\n", stats.Total)
	fmt.Printf("active:  %d\n", stats.Active)
	fmt.Printf("expired: %d\n", stats.Expired)

	if len(stats.Verdicts) > 0 {
		fmt.Println("\nby verdict:")
		verdicts := make([]string, 0, len(stats.Verdicts))
		for v := range stats.Verdicts {
			verdicts = append(verdicts, v)
		}
		sort.Strings(verdicts)
		for _, v := range verdicts {
			fmt.Printf("  %-16s %d\n", v, stats.Verdicts[v])
		}
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resultCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer resultCache.Close()

	count, err := resultCache.ClearAll(ctx)
	if err != nil {
		logger.Error("failed to clear cache", "error", err)
		os.Exit(1)
	}

	fmt.Printf("removed %d cached results\n", count)
	return nil
}
