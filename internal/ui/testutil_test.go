package ui

import (
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
)

// ansi matches SGR color codes and the OSC 8 hyperlinks glamour emits.
var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;[^\x1b]*\x1b\\`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

// key builds the KeyMsg the browser and confirm models see for a named key.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
