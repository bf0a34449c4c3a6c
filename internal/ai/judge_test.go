package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kwameosei/ghanajobs/internal/model"
)

type stubProvider struct {
	response  string
	err       error
	gotPrompt string
}

func (s *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.response, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantVerdict model.Verdict
		wantReason  string
	}{
		{
			name:        "helpful",
			response:    "VERDICT: HELPFUL\nREASON: Worldwide remote position.",
			wantVerdict: model.Helpful,
			wantReason:  "Worldwide remote position.",
		},
		{
			name:        "not helpful",
			response:    "VERDICT: NOT_HELPFUL\nREASON: US only, no sponsorship.",
			wantVerdict: model.NotHelpful,
			wantReason:  "US only, no sponsorship.",
		},
		{
			name:        "visa sponsorship",
			response:    "VERDICT: VISA_SPONSORSHIP\nREASON: Offers relocation and H-1B.",
			wantVerdict: model.VisaSponsorship,
			wantReason:  "Offers relocation and H-1B.",
		},
		{
			name:        "visa with space",
			response:    "VERDICT: VISA SPONSORSHIP\nREASON: Sponsors visas.",
			wantVerdict: model.VisaSponsorship,
			wantReason:  "Sponsors visas.",
		},
		{
			name:        "unclear",
			response:    "VERDICT: UNCLEAR\nREASON: Not enough detail.",
			wantVerdict: model.Unclear,
			wantReason:  "Not enough detail.",
		},
		{
			name:        "bracketed verdict",
			response:    "VERDICT: [HELPFUL]\nREASON: Ghana-based role.",
			wantVerdict: model.Helpful,
			wantReason:  "Ghana-based role.",
		},
		{
			name:        "not helpful beats helpful substring",
			response:    "VERDICT: NOT HELPFUL\nREASON: Excludes Ghana.",
			wantVerdict: model.NotHelpful,
			wantReason:  "Excludes Ghana.",
		},
		{
			name:        "missing reason gets fallback",
			response:    "VERDICT: HELPFUL",
			wantVerdict: model.Helpful,
			wantReason:  "Analysis completed",
		},
		{
			name:        "garbage is unclear",
			response:    "I cannot comply with this request.",
			wantVerdict: model.Unclear,
			wantReason:  "Analysis completed",
		},
		{
			name:        "surrounding chatter ignored",
			response:    "Here is my analysis:\nVERDICT: HELPFUL\nREASON: Open worldwide.\nLet me know if you need more.",
			wantVerdict: model.Helpful,
			wantReason:  "Open worldwide.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reason := parseResponse(tt.response)
			if verdict != tt.wantVerdict {
				t.Errorf("verdict = %v, want %v", verdict, tt.wantVerdict)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestJudge_RendersContentIntoPrompt(t *testing.T) {
	provider := &stubProvider{response: "VERDICT: HELPFUL\nREASON: Fine."}
	judge := NewLLMJudge(provider, JobAnalysisTemplate, testLogger())

	verdict, reason, err := judge.Judge(context.Background(), "Backend role, work from anywhere")
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if verdict != model.Helpful || reason != "Fine." {
		t.Errorf("got %v %q", verdict, reason)
	}
	if !strings.Contains(provider.gotPrompt, "Backend role, work from anywhere") {
		t.Error("prompt missing posting content")
	}
	if !strings.Contains(provider.gotPrompt, "Ghana") {
		t.Error("prompt missing target location context")
	}
}

func TestJudge_ProviderFault(t *testing.T) {
	provider := &stubProvider{err: errors.New("quota exhausted")}
	judge := NewLLMJudge(provider, JobAnalysisTemplate, testLogger())

	if _, _, err := judge.Judge(context.Background(), "text"); err == nil {
		t.Fatal("expected error on provider fault")
	}
}

func TestJudge_Availability(t *testing.T) {
	if NewLLMJudge(&stubProvider{}, JobAnalysisTemplate, testLogger()).Available() != true {
		t.Error("judge with provider should be available")
	}
	if NewNopJudge().Available() {
		t.Error("nop judge should be unavailable")
	}
}
