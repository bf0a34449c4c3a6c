package bot

import (
	"fmt"
	"strings"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// VerdictEmoji returns the emoji shorthand for a verdict.
func VerdictEmoji(v model.Verdict) string {
	switch v {
	case model.Helpful:
		return "✅"
	case model.VisaSponsorship:
		return "🌍"
	case model.NotHelpful:
		return "❌"
	default:
		return "❓"
	}
}

// verdictTitle renders "visa_sponsorship" as "Visa Sponsorship".
func verdictTitle(v model.Verdict) string {
	words := strings.Split(v.String(), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// FormatResult renders an analysis result as a Markdown reply message.
func FormatResult(r model.AnalysisResult) string {
	reason := r.Reason
	if r.Source == model.SourceCache {
		reason += " (cached)"
	}
	return fmt.Sprintf("%s *%s*\n\n%s", VerdictEmoji(r.Verdict), verdictTitle(r.Verdict), reason)
}

// FormatShortResult renders the compact reply used for passively scanned
// messages, where a full reason would be noisy in a group chat.
func FormatShortResult(r model.AnalysisResult) string {
	return fmt.Sprintf("%s %s", VerdictEmoji(r.Verdict), verdictTitle(r.Verdict))
}
