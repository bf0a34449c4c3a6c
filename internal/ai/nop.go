package ai

import (
	"context"
	"fmt"

	"github.com/kwameosei/ghanajobs/internal/model"
)

// NopJudge is used when ai.enabled is false or no API key is configured.
// It reports itself unavailable so the pipeline skips straight past it.
type NopJudge struct{}

// NewNopJudge returns a NopJudge.
func NewNopJudge() *NopJudge {
	return &NopJudge{}
}

// Available always returns false.
func (NopJudge) Available() bool { return false }

// Judge is never reached by the pipeline; calling it anyway is a bug.
func (NopJudge) Judge(_ context.Context, _ string) (model.Verdict, string, error) {
	return model.Unclear, "", fmt.Errorf("ai judge disabled")
}
