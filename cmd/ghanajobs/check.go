package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kwameosei/ghanajobs/internal/bot"
	"github.com/kwameosei/ghanajobs/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check <url> [context...]",
	Short: "Analyze one job URL and exit",
	Long:  "One-shot analysis: classifies the given job-posting URL and prints the verdict. Extra arguments are treated as surrounding message context for the rule pass.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var (
	verdictStyles = map[model.Verdict]lipgloss.Style{
		model.Helpful:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),  // green
		model.VisaSponsorship: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),  // bright blue
		model.NotHelpful:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // red
		model.Unclear:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("240")), // dim gray
	}
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func runCheck(cmd *cobra.Command, args []string) error {
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

	an, err := buildAnalyzer(cfg, resultCache, logger)
	if err != nil {
		logger.Error("failed to build analyzer", "error", err)
		os.Exit(1)
	}

	url := args[0]
	callerText := strings.Join(args, " ")

	result, err := an.Analyze(ctx, callerText, url)
	if err != nil {
		logger.Error("analysis failed", "url", url, "error", err)
		os.Exit(1)
	}

	style := verdictStyles[result.Verdict]
	fmt.Printf("%s %s\n", bot.VerdictEmoji(result.Verdict), style.Render(strings.ToUpper(result.Verdict.String())))
	fmt.Println(result.Reason)
	fmt.Println(sourceStyle.Render("source: " + string(result.Source)))
	return nil
}
