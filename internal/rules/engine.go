package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// Engine is a deterministic, case-insensitive pattern classifier. It does no
// I/O. Pattern classes are checked in a fixed order, first match wins:
// visa sponsorship, then restriction, then inclusion. Sponsorship outranks a
// restriction so a "US-only, H-1B sponsored" posting is not discarded as a
// bare rejection; restriction outranks inclusion so "Remote (US only)" is not
// read as universally accessible.
type Engine struct {
	visa               []*regexp.Regexp
	restricted         []*regexp.Regexp
	helpful            []*regexp.Regexp
	remoteFirstDomains []string
}

var bareRemote = regexp.MustCompile(`\bremote\b`)

// NewEngine compiles the pattern lists into an Engine. Patterns are compiled
// case-insensitively; a malformed pattern is a configuration error.
func NewEngine(p Patterns) (*Engine, error) {
	e := &Engine{remoteFirstDomains: p.RemoteFirstDomains}

	var err error
	if e.visa, err = compileAll(p.VisaSponsorship); err != nil {
		return nil, fmt.Errorf("visa_sponsorship patterns: %w", err)
	}
	if e.restricted, err = compileAll(p.NotHelpful); err != nil {
		return nil, fmt.Errorf("not_helpful patterns: %w", err)
	}
	if e.helpful, err = compileAll(p.Helpful); err != nil {
		return nil, fmt.Errorf("helpful patterns: %w", err)
	}
	return e, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Classify returns a verdict and a short reason for the given posting text
// and URL. It returns Unclear when no pattern class matches, or when the text
// mentions "remote" with no qualifier (bare "remote" is often US-remote).
func (e *Engine) Classify(text, url string) (model.Verdict, string) {
	if matched, reason := matchAny(e.visa, text); matched {
		return model.VisaSponsorship, "Offers visa sponsorship: " + reason
	}

	if matched, reason := matchAny(e.restricted, text); matched {
		return model.NotHelpful, "Location restricted: " + reason
	}

	urlLower := strings.ToLower(url)
	for _, domain := range e.remoteFirstDomains {
		if strings.Contains(urlLower, domain) {
			return model.Helpful, "Posted on worldwide remote job board"
		}
	}
	if matched, reason := matchAny(e.helpful, text); matched {
		return model.Helpful, "Accessible: " + reason
	}

	if bareRemote.MatchString(text) {
		return model.Unclear, "Mentions 'remote' but location requirements unclear"
	}
	return model.Unclear, "Cannot determine location requirements from text"
}

// matchAny returns the first matching substring quoted for use in a reason.
func matchAny(patterns []*regexp.Regexp, text string) (bool, string) {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return true, "'" + strings.ToLower(m) + "'"
		}
	}
	return false, ""
}
