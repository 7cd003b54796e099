package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/kindctl/internal/config"
)

func TestPagerViewFillsScreen(t *testing.T) {
	m := pagerModel{
		content: "Line 1\nLine 2\nLine 3",
		theme:   ResolveTheme(config.ThemeConfig{Preset: "dark"}),
	}
	if got := m.View(); got != "Loading..." {
		t.Errorf("unsized pager view = %q", got)
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(pagerModel)

	lines := strings.Split(stripANSI(m.View()), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Line 1") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[23], "q quit") {
		t.Errorf("footer = %q", lines[23])
	}
}

func TestPagerQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := pagerModel{}.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestPageNonTerminalWritesDirectly(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(&buf, "hello\n", Theme{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("got %q", buf.String())
	}
}
