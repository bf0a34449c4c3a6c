// Package bot implements the Telegram surface: slash commands for on-demand
// URL checks plus passive scanning of group messages for job-posting links.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kwameosei/ghanajobs/internal/analyzer"
)

const welcomeMessage = "👋 Welcome to *Ghana Jobs Bot*!\n\n" +
	"I help filter job postings for Ghana-based job seekers.\n\n" +
	"*How to use:*\n" +
	"Use `/check <job_url>` to analyze any job posting.\n\n" +
	"*Example:*\n" +
	"`/check https://careers.company.com/job/12345`\n\n" +
	"*Results:*\n" +
	"• ✅ Helpful (worldwide remote or Ghana-based)\n" +
	"• 🌍 Visa sponsorship (offers relocation support)\n" +
	"• ❌ Not helpful (location-restricted)\n" +
	"• ❓ Unclear (can't determine)\n\n" +
	"*Other commands:*\n" +
	"• `/help` - Show detailed help\n" +
	"• `/clearcache` - Clear cached results\n\n" +
	"Just copy a job URL and use `/check` to analyze it!"

const helpMessage = "*Ghana Jobs Bot - Complete Guide*\n\n" +
	"*📋 Main Command:*\n" +
	"`/check <job_url>` - Analyze a job posting\n\n" +
	"*Examples:*\n" +
	"```\n" +
	"/check https://careers.company.com/job/123\n" +
	"/check https://linkedin.com/jobs/view/456\n" +
	"```\n\n" +
	"*📊 Results Explained:*\n" +
	"• ✅ *Helpful* - Job accepts Ghana residents (remote worldwide or Ghana-based)\n" +
	"• 🌍 *Visa Sponsorship* - Job offers relocation/visa support\n" +
	"• ❌ *Not Helpful* - Location-restricted, excludes Ghana\n" +
	"• ❓ *Unclear* - Cannot determine requirements\n\n" +
	"*🛠 Other Commands:*\n" +
	"• `/start` - Show welcome message\n" +
	"• `/help` - Show this guide\n" +
	"• `/clearcache` - Clear all cached analyses\n\n" +
	"*💡 Tips:*\n" +
	"• Results are cached for 24 hours\n" +
	"• Works with most job sites (LinkedIn, Indeed, Greenhouse, etc.)\n" +
	"• AI-powered analysis for smart filtering\n\n" +
	"*Usage in Groups:*\n" +
	"When someone shares a job, just reply:\n" +
	"`/check https://the-job-url.com`"

// Bot polls Telegram for updates and routes them to the analyzer.
type Bot struct {
	api        *tgbotapi.BotAPI
	analyzer   *analyzer.Analyzer
	jobDomains []string
	logger     *slog.Logger
}

// New authenticates against the Telegram API and returns a ready bot.
// jobDomains are the URL substrings that mark a link as a job posting
// during passive scanning.
func New(token string, an *analyzer.Analyzer, jobDomains []string, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{
		api:        api,
		analyzer:   an,
		jobDomains: jobDomains,
		logger:     logger,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each message is handled on
// its own goroutine so a slow scrape never blocks the poll loop.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.reply(msg, welcomeMessage)
		case "help":
			b.reply(msg, helpMessage)
		case "check":
			b.handleCheck(ctx, msg)
		case "clearcache":
			b.handleClearCache(ctx, msg)
		}
		return
	}
	b.handleScan(ctx, msg)
}

// handleCheck analyzes the URL given as the first /check argument. The full
// argument string is passed along as caller context so surrounding words
// ("remote ok?") feed the rule pass too.
func (b *Bot) handleCheck(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		b.reply(msg, "Usage: /check <job_url>\n\nExample: /check https://jobs.example.com/position")
		return
	}
	url := strings.Fields(args)[0]

	b.logger.Info("check command", "url", url, "chat_id", msg.Chat.ID)

	result, err := b.analyzer.Analyze(ctx, args, url)
	if err != nil {
		b.reply(msg, fmt.Sprintf("❓ Error analyzing job: %s", truncate(err.Error(), 100)))
		return
	}
	b.reply(msg, FormatResult(result))
}

func (b *Bot) handleClearCache(ctx context.Context, msg *tgbotapi.Message) {
	count, err := b.analyzer.ClearCache(ctx)
	if err != nil {
		b.logger.Error("clear cache failed", "error", err)
		b.reply(msg, fmt.Sprintf("❌ Error clearing cache: %s", truncate(err.Error(), 100)))
		return
	}
	b.logger.Info("cache cleared via bot", "removed", count, "chat_id", msg.Chat.ID)
	b.reply(msg, fmt.Sprintf(
		"✅ *Cache Cleared*\n\nRemoved %d cached results.\nAll job links will be re-analyzed fresh.", count))
}

// handleScan inspects an ordinary message for job-posting links and, when one
// is found, replies to the message with a compact verdict.
func (b *Bot) handleScan(ctx context.Context, msg *tgbotapi.Message) {
	url, ok := FirstJobURL(msg.Text, b.jobDomains)
	if !ok {
		return
	}

	b.logger.Info("job url detected", "url", url, "chat_id", msg.Chat.ID)

	result, err := b.analyzer.Analyze(ctx, msg.Text, url)
	if err != nil {
		b.logger.Warn("passive analysis failed", "url", url, "error", err)
		b.reply(msg, "❓")
		return
	}
	b.reply(msg, FormatShortResult(result))
}

func (b *Bot) reply(to *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(to.Chat.ID, text)
	msg.ReplyToMessageID = to.MessageID
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send reply failed", "chat_id", to.Chat.ID, "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
