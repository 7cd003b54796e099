package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/kindctl/internal/config"
)

// DefaultPreset is used when no preset is configured or the name is unknown.
const DefaultPreset = "light"

// Theme holds resolved lipgloss colors for terminal rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

var presets = map[string]Theme{
	"light": {
		Primary:       lipgloss.Color("#1C1B1F"),
		Secondary:     lipgloss.Color("#625B71"),
		Accent:        lipgloss.Color("#6750A4"),
		Muted:         lipgloss.Color("#79747E"),
		Danger:        lipgloss.Color("#B3261E"),
		Background:    lipgloss.Color("#FFFBFE"),
		MarkdownStyle: "light",
	},
	"dark": {
		Primary:       lipgloss.Color("#E6E1E5"),
		Secondary:     lipgloss.Color("#CCC2DC"),
		Accent:        lipgloss.Color("#D0BCFF"),
		Muted:         lipgloss.Color("#938F99"),
		Danger:        lipgloss.Color("#F2B8B5"),
		Background:    lipgloss.Color("#1C1B1F"),
		MarkdownStyle: "dark",
	},
	"calm-ocean": {
		Primary:       lipgloss.Color("#004D40"),
		Secondary:     lipgloss.Color("#00695C"),
		Accent:        lipgloss.Color("#00838F"),
		Muted:         lipgloss.Color("#4F7C78"),
		Danger:        lipgloss.Color("#C62828"),
		Background:    lipgloss.Color("#E0F2F1"),
		MarkdownStyle: "light",
	},
	"warm-sunset": {
		Primary:       lipgloss.Color("#3E2723"),
		Secondary:     lipgloss.Color("#5D4037"),
		Accent:        lipgloss.Color("#E65100"),
		Muted:         lipgloss.Color("#8D6E63"),
		Danger:        lipgloss.Color("#BF360C"),
		Background:    lipgloss.Color("#FFF3E0"),
		MarkdownStyle: "light",
	},
	"serene-forest": {
		Primary:       lipgloss.Color("#1B5E20"),
		Secondary:     lipgloss.Color("#2E7D32"),
		Accent:        lipgloss.Color("#558B2F"),
		Muted:         lipgloss.Color("#6B8E6B"),
		Danger:        lipgloss.Color("#C62828"),
		Background:    lipgloss.Color("#E8F5E8"),
		MarkdownStyle: "light",
	},
	"midnight-calm": {
		Primary:       lipgloss.Color("#D1D1E0"),
		Secondary:     lipgloss.Color("#9FA8DA"),
		Accent:        lipgloss.Color("#7986CB"),
		Muted:         lipgloss.Color("#6F7191"),
		Danger:        lipgloss.Color("#EF9A9A"),
		Background:    lipgloss.Color("#1A1A2E"),
		MarkdownStyle: "dark",
	},
}

// categoryColors tints category badges in history and prompt listings.
var categoryColors = map[string]lipgloss.Color{
	"social":       "#2196F3",
	"family":       "#4CAF50",
	"community":    "#9C27B0",
	"digital":      "#00BCD4",
	"environment":  "#8BC34A",
	"courtesy":     "#FF9800",
	"gratitude":    "#E91E63",
	"charity":      "#795548",
	"workplace":    "#607D8B",
	"friendship":   "#FFEB3B",
	"generosity":   "#3F51B5",
	"empathy":      "#009688",
	"forgiveness":  "#673AB7",
	"teaching":     "#FF5722",
	"appreciation": "#FFC107",
}

// Presets returns the names of the built-in presets, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPreset reports whether name is a built-in preset.
func HasPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// ResolveTheme builds a Theme from config, starting with a preset
// and applying any explicit overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[DefaultPreset]
	}

	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
	}
	if cfg.Accent != "" {
		theme.Accent = lipgloss.Color(cfg.Accent)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Danger != "" {
		theme.Danger = lipgloss.Color(cfg.Danger)
	}
	if cfg.Background != "" {
		theme.Background = lipgloss.Color(cfg.Background)
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}

	return theme
}

// CategoryStyle returns the badge style for a prompt category.
func (t Theme) CategoryStyle(category string) lipgloss.Style {
	c, ok := categoryColors[strings.ToLower(category)]
	if !ok {
		c = t.Secondary
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// HelpStyle returns a lipgloss style for help/footer text.
func (t Theme) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted).Background(t.Background)
}

// HeaderStyle returns a lipgloss style for headers.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Background(t.Background)
}

// AccentStyle returns a lipgloss style for accented/focused elements.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background)
}

// DangerStyle returns a lipgloss style for warnings/delete prompts.
func (t Theme) DangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Danger).Background(t.Background)
}

// BorderStyle returns a lipgloss style with a rounded border using secondary color.
func (t Theme) BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background).
		Background(t.Background).
		Foreground(t.Primary)
}

// bgEscapeCode returns the raw ANSI escape sequence that sets the theme's
// background color, for use with \x1b[K.
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b int
		fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return "\x1b[48;5;" + s + "m"
}

// PaintScreen pads every line of content to termWidth and the whole block to
// termHeight with the theme background.
func (t Theme) PaintScreen(content string, termWidth, termHeight int) string {
	bgPad := lipgloss.NewStyle().Background(t.Background)
	clearEOL := t.bgEscapeCode() + "\x1b[K"

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		rightPad := max(termWidth-lipgloss.Width(line), 0)
		if rightPad > 0 {
			line += bgPad.Render(strings.Repeat(" ", rightPad))
		}
		lines[i] = line + clearEOL
	}

	emptyLine := bgPad.Render(strings.Repeat(" ", max(termWidth, 0))) + clearEOL
	for len(lines) < termHeight {
		lines = append(lines, emptyLine)
	}
	if termHeight > 0 && len(lines) > termHeight {
		lines = lines[:termHeight]
	}
	return strings.Join(lines, "\n")
}

// NewList creates a list.Model with delegate and chrome styles derived from the theme.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.ListDelegate(), width, height)
	l.Styles = t.ListStyles()
	return l
}

// ListDelegate returns a list.DefaultDelegate with item styles derived from the theme.
func (t Theme) ListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Background(t.Background).
		Padding(0, 0, 0, 2)
	d.Styles.NormalDesc = d.Styles.NormalTitle.
		Foreground(t.Muted)
	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Foreground(t.Accent).
		Background(t.Background).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(t.Secondary)
	d.Styles.DimmedTitle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Background).
		Padding(0, 0, 0, 2)
	d.Styles.DimmedDesc = d.Styles.DimmedTitle.
		Foreground(t.Muted)
	return d
}

// ListStyles returns list.Styles (chrome around the list) derived from the theme.
func (t Theme) ListStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Background)
	s.TitleBar = lipgloss.NewStyle().
		Background(t.Background)
	s.FilterPrompt = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background)
	s.FilterCursor = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background)
	s.PaginationStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Background)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Background)
	s.NoItems = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Background)
	return s
}
