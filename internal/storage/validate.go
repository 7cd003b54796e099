package storage

import (
	"fmt"

	"github.com/chris-regnier/kindctl/internal/day"
)

// ValidateCompletion checks a completion before it is written.
func ValidateCompletion(c Completion) error {
	if c.PromptID <= 0 {
		return fmt.Errorf("%w: prompt id must be positive", ErrValidation)
	}
	if !day.Valid(c.CompletedDate) {
		return fmt.Errorf("%w: invalid completed date %q", ErrValidation, c.CompletedDate)
	}
	return nil
}

// ValidateSkip checks a skipped prompt before it is written.
func ValidateSkip(sp SkippedPrompt) error {
	if sp.PromptID <= 0 {
		return fmt.Errorf("%w: prompt id must be positive", ErrValidation)
	}
	if !day.Valid(sp.SkippedDate) {
		return fmt.Errorf("%w: invalid skipped date %q", ErrValidation, sp.SkippedDate)
	}
	return nil
}

// ValidateSelection checks a daily selection before it is written.
func ValidateSelection(sel DailySelection) error {
	if sel.PromptID <= 0 {
		return fmt.Errorf("%w: prompt id must be positive", ErrValidation)
	}
	if !day.Valid(sel.Date) {
		return fmt.Errorf("%w: invalid selection date %q", ErrValidation, sel.Date)
	}
	return nil
}
