package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/day"
)

// rendererCache holds the last glamour renderer; building one parses a full
// style sheet, so it is reused while width and style stay the same.
var rendererCache struct {
	sync.Mutex
	r     *glamour.TermRenderer
	width int
	style string
}

func renderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "light"
	}

	rendererCache.Lock()
	defer rendererCache.Unlock()
	if rendererCache.r != nil && rendererCache.width == width && rendererCache.style == style {
		return rendererCache.r, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.r, rendererCache.width, rendererCache.style = r, width, style
	return r, nil
}

// RenderMarkdown renders markdown for the terminal using a glamour style
// ("light", "dark", "notty", ...). The input is returned unchanged when
// rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := renderer(width, style)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// DailyMarkdown is the markdown source of a prompt card.
func DailyMarkdown(d daily.Daily) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Today's act of kindness\n\n")
	fmt.Fprintf(&b, "> %s\n\n", d.Prompt.Text)
	fmt.Fprintf(&b, "*%s* · %s · prompt #%d\n", d.Prompt.Category, day.Display(d.Date), d.Prompt.ID)
	if c := d.Completion; c != nil {
		b.WriteString("\n**Completed** ✓")
		if c.IsFavorite {
			b.WriteString(" ♥")
		}
		b.WriteString("\n")
		if c.Notes != "" {
			fmt.Fprintf(&b, "\n%s\n", c.Notes)
		}
	}
	return b.String()
}
