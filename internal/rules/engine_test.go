package rules

import (
	"testing"

	"github.com/kwameosei/ghanajobs/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultPatterns())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		url         string
		wantVerdict model.Verdict
	}{
		{
			name:        "visa sponsorship",
			text:        "We offer visa sponsorship for the right candidate",
			wantVerdict: model.VisaSponsorship,
		},
		{
			name:        "sponsorship wins over restriction",
			text:        "US citizens only, H-1B sponsorship available",
			wantVerdict: model.VisaSponsorship,
		},
		{
			name:        "restriction wins over inclusion",
			text:        "Remote (US only)",
			wantVerdict: model.NotHelpful,
		},
		{
			name:        "on-site restriction",
			text:        "This role is on-site only in our Berlin office",
			wantVerdict: model.NotHelpful,
		},
		{
			name:        "worldwide remote",
			text:        "worldwide remote, no restrictions",
			wantVerdict: model.Helpful,
		},
		{
			name:        "ghana mention",
			text:        "Applicants from Ghana are welcome",
			wantVerdict: model.Helpful,
		},
		{
			name:        "remote-first job board url",
			text:        "Senior Go Engineer",
			url:         "https://remoteok.com/remote-jobs/12345",
			wantVerdict: model.Helpful,
		},
		{
			name:        "case insensitive",
			text:        "WORK FROM ANYWHERE",
			wantVerdict: model.Helpful,
		},
		{
			name:        "bare remote is unclear",
			text:        "Remote position for a backend engineer",
			wantVerdict: model.Unclear,
		},
		{
			name:        "no signal",
			text:        "Senior Backend Engineer, competitive salary",
			wantVerdict: model.Unclear,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			verdict, reason := e.Classify(tt.text, tt.url)
			if verdict != tt.wantVerdict {
				t.Errorf("Classify() verdict = %v, want %v (reason %q)", verdict, tt.wantVerdict, reason)
			}
			if reason == "" {
				t.Error("Classify() returned empty reason")
			}
		})
	}
}

func TestClassify_ReasonNamesPatternClass(t *testing.T) {
	e := newTestEngine(t)

	verdict, reason := e.Classify("willing to sponsor your visa", "")
	if verdict != model.VisaSponsorship {
		t.Fatalf("verdict = %v, want VisaSponsorship", verdict)
	}
	if want := "Offers visa sponsorship: 'willing to sponsor'"; reason != want {
		t.Errorf("reason = %q, want %q", reason, want)
	}

	verdict, reason = e.Classify("no remote, office based", "")
	if verdict != model.NotHelpful {
		t.Fatalf("verdict = %v, want NotHelpful", verdict)
	}
	if want := "Location restricted: 'no remote'"; reason != want {
		t.Errorf("reason = %q, want %q", reason, want)
	}
}

func TestNewEngine_BadPattern(t *testing.T) {
	p := DefaultPatterns()
	p.Helpful = append(p.Helpful, `[unclosed`)
	if _, err := NewEngine(p); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}
