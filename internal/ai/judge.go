package ai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// Ensure LLMJudge implements model.AIJudge.
var _ model.AIJudge = (*LLMJudge)(nil)

// LLMJudge implements model.AIJudge using an LLM. It renders the analysis
// prompt, sends it through the provider, and parses the VERDICT/REASON reply.
type LLMJudge struct {
	provider LLMProvider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewLLMJudge creates a judge backed by the given provider.
func NewLLMJudge(provider LLMProvider, tmpl *template.Template, logger *slog.Logger) *LLMJudge {
	return &LLMJudge{
		provider: provider,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// Available reports whether the judge has a provider to call.
func (j *LLMJudge) Available() bool {
	return j.provider != nil
}

// Judge classifies the posting text. A transport or render fault is returned
// as an error; the pipeline treats it as unavailability.
func (j *LLMJudge) Judge(ctx context.Context, content string) (model.Verdict, string, error) {
	if !j.Available() {
		return model.Unclear, "", fmt.Errorf("ai judge has no provider")
	}

	var promptBuf bytes.Buffer
	if err := j.tmpl.Execute(&promptBuf, struct{ Content string }{Content: content}); err != nil {
		return model.Unclear, "", fmt.Errorf("render prompt: %w", err)
	}

	raw, err := j.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return model.Unclear, "", fmt.Errorf("llm complete: %w", err)
	}

	verdict, reason := parseResponse(raw)
	j.logger.Debug("ai verdict", "verdict", verdict.String(), "reason", reason)
	return verdict, reason, nil
}

// parseResponse extracts the verdict and reason from the model's
// "VERDICT: ...\nREASON: ..." reply. Anything unmappable is Unclear;
// a missing reason gets a fixed fallback so reasons are never empty.
func parseResponse(response string) (model.Verdict, string) {
	var verdictLine, reasonLine string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "VERDICT:"); ok {
			verdictLine = strings.ToUpper(strings.TrimSpace(rest))
		} else if rest, ok := strings.CutPrefix(line, "REASON:"); ok {
			reasonLine = strings.TrimSpace(rest)
		}
	}

	var verdict model.Verdict
	switch {
	case strings.Contains(verdictLine, "VISA_SPONSORSHIP") || strings.Contains(verdictLine, "VISA SPONSORSHIP"):
		verdict = model.VisaSponsorship
	case strings.Contains(verdictLine, "NOT_HELPFUL") || strings.Contains(verdictLine, "NOT HELPFUL"):
		verdict = model.NotHelpful
	case strings.Contains(verdictLine, "HELPFUL"):
		verdict = model.Helpful
	default:
		verdict = model.Unclear
	}

	if reasonLine == "" {
		reasonLine = "Analysis completed"
	}
	return verdict, reasonLine
}
