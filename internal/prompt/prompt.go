// Package prompt defines kindness prompts and the built-in catalog.
package prompt

import (
	"errors"
	"strings"
)

// DefaultCategory is used for prompts that do not declare a category.
const DefaultCategory = "general"

// ErrInvalidPrompt is returned by Validate.
var ErrInvalidPrompt = errors.New("invalid prompt")

// Prompt is one suggested act of kindness. Prompts are immutable once in the
// catalog and are identified by ID.
type Prompt struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Validate checks that a prompt can be stored in the catalog.
func Validate(p Prompt) error {
	if p.ID <= 0 {
		return errors.Join(ErrInvalidPrompt, errors.New("id must be positive"))
	}
	if strings.TrimSpace(p.Text) == "" {
		return errors.Join(ErrInvalidPrompt, errors.New("text must not be empty"))
	}
	return nil
}

// Normalize trims text and fills in the default category.
func Normalize(p Prompt) Prompt {
	p.Text = strings.TrimSpace(p.Text)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return p
}

// Placeholder stands in for a completed prompt that is no longer in the
// catalog, so a completed day still renders.
func Placeholder(id int) Prompt {
	return Prompt{ID: id, Text: "Unknown prompt", Category: DefaultCategory}
}

// Categories returns the distinct categories of ps in first-seen order.
func Categories(ps []Prompt) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range ps {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
