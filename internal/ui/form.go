package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/chris-regnier/kindctl/internal/daily"
)

// MaxNotesLength bounds notes typed into the completion form.
const MaxNotesLength = 1000

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("aborted")

// CompletionInput is what the completion form collects.
type CompletionInput struct {
	Notes    string
	Favorite bool
}

// NewCompletionForm builds the form shown by `done -i`. Results are written
// into in.
func NewCompletionForm(d daily.Daily, in *CompletionInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Today's act of kindness").
				Description(fmt.Sprintf("%s\n\n(%s)", d.Prompt.Text, d.Prompt.Category)),
			huh.NewText().
				Title("Notes").
				Description("How did it go? Optional.").
				CharLimit(MaxNotesLength).
				Value(&in.Notes),
			huh.NewConfirm().
				Title("Add to favorites?").
				Affirmative("Yes").
				Negative("No").
				Value(&in.Favorite),
		),
	)
}

// NewSkipForm builds the optional reason prompt shown by `skip -i`.
func NewSkipForm(d daily.Daily, reason *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Skipping").
				Description(d.Prompt.Text),
			huh.NewInput().
				Title("Reason").
				Placeholder("not today").
				CharLimit(200).
				Value(reason),
		),
	)
}

// RunForm runs form in the terminal, mapping a user abort to ErrAborted.
func RunForm(form *huh.Form, theme Theme) error {
	if theme.MarkdownStyle == "dark" {
		form = form.WithTheme(huh.ThemeCatppuccin())
	} else {
		form = form.WithTheme(huh.ThemeBase16())
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// CleanNotes trims surrounding whitespace from form or editor input.
func CleanNotes(s string) string {
	return strings.TrimSpace(s)
}
