package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/storage"
)

// HistoryService is the subset of history.History the browser needs.
type HistoryService interface {
	List(ctx context.Context, opts history.Options) ([]history.Item, error)
	ToggleFavorite(ctx context.Context, id int64) (storage.Completion, error)
	Delete(ctx context.Context, id int64) error
}

type browserScreen int

const (
	screenList browserScreen = iota
	screenDetail
)

// historyItem implements list.Item for a completed prompt.
type historyItem struct {
	item  history.Item
	today string
}

func (h historyItem) Title() string {
	fav := "  "
	if h.item.Completion.IsFavorite {
		fav = "♥ "
	}
	return fmt.Sprintf("%s%s · %s", fav, day.Relative(h.item.Completion.CompletedDate, h.today), h.item.Prompt.Category)
}

func (h historyItem) Description() string { return Preview(h.item.Prompt.Text, 70) }

func (h historyItem) FilterValue() string {
	return h.item.Prompt.Text + " " + h.item.Prompt.Category + " " + h.item.Completion.Notes
}

type itemsLoadedMsg struct {
	items []history.Item
	err   error
}

type snapshotMsg history.Snapshot

type watchClosedMsg struct{}

type actionDoneMsg struct {
	status string
	err    error
}

// browserModel is the Bubble Tea model for the history browser.
type browserModel struct {
	ctx     context.Context
	svc     HistoryService
	opts    history.Options
	updates <-chan history.Snapshot
	today   string
	theme   Theme

	screen       browserScreen
	list         list.Model
	viewport     viewport.Model
	selected     history.Item
	deleteActive bool
	helpActive   bool
	status       string

	width  int
	height int
	ready  bool
	err    error
}

func newBrowserModel(ctx context.Context, svc HistoryService, opts history.Options, updates <-chan history.Snapshot, today string, theme Theme) browserModel {
	l := theme.NewList(nil, 0, 0)
	l.SetShowHelp(false)
	m := browserModel{
		ctx:     ctx,
		svc:     svc,
		opts:    opts,
		updates: updates,
		today:   today,
		theme:   theme,
		list:    l,
	}
	m.list.Title = m.title()
	return m
}

func (m browserModel) title() string {
	if m.opts.Filter == history.Favorites {
		return "Favorite acts of kindness"
	}
	return "Kindness history"
}

func (m browserModel) Init() tea.Cmd {
	if m.updates != nil {
		return m.waitForSnapshot
	}
	return m.load
}

func (m browserModel) load() tea.Msg {
	items, err := m.svc.List(m.ctx, m.opts)
	return itemsLoadedMsg{items: items, err: err}
}

func (m browserModel) waitForSnapshot() tea.Msg {
	s, ok := <-m.updates
	if !ok {
		return watchClosedMsg{}
	}
	return snapshotMsg(s)
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		return m, m.setItems(msg.items)

	case snapshotMsg:
		if msg.Err != nil {
			m.status = "refresh failed: " + msg.Err.Error()
			return m, m.waitForSnapshot
		}
		// The filter may have changed since the watch started, so a
		// snapshot only signals that the data moved.
		return m, tea.Batch(m.load, m.waitForSnapshot)

	case watchClosedMsg:
		m.updates = nil
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.load

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.helpActive {
			m.helpActive = false
			return m, nil
		}
		if m.deleteActive {
			return m.updateDeleteConfirm(msg)
		}
		switch m.screen {
		case screenList:
			return m.updateList(msg)
		case screenDetail:
			return m.updateDetail(msg)
		}
	}

	var cmd tea.Cmd
	if m.screen == screenList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// setItems replaces the list contents and keeps the detail pane in step with
// the completion it shows.
func (m *browserModel) setItems(items []history.Item) tea.Cmd {
	listItems := make([]list.Item, len(items))
	found := false
	for i, it := range items {
		listItems[i] = historyItem{item: it, today: m.today}
		if it.Completion.ID == m.selected.Completion.ID {
			m.selected = it
			found = true
		}
	}
	if m.screen == screenDetail {
		if found {
			m.viewport.SetContent(m.detail())
		} else {
			m.screen = screenList
		}
	}
	return m.list.SetItems(listItems)
}

func (m browserModel) current() (history.Item, bool) {
	if m.screen == screenDetail {
		return m.selected, true
	}
	it, ok := m.list.SelectedItem().(historyItem)
	if !ok {
		return history.Item{}, false
	}
	return it.item, true
}

func (m browserModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.helpActive = true
		return m, nil
	case "enter":
		it, ok := m.current()
		if !ok {
			return m, nil
		}
		m.selected = it
		m.screen = screenDetail
		m.viewport.SetContent(m.detail())
		m.viewport.GotoTop()
		return m, nil
	case "tab":
		if m.opts.Filter == history.Favorites {
			m.opts.Filter = history.All
		} else {
			m.opts.Filter = history.Favorites
		}
		m.list.Title = m.title()
		m.list.ResetSelected()
		return m, m.load
	case "r":
		return m, m.load
	case "f":
		return m.toggleFavorite()
	case "d":
		if _, ok := m.current(); ok {
			m.deleteActive = true
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenList
		return m, nil
	case "f":
		return m.toggleFavorite()
	case "d":
		m.deleteActive = true
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browserModel) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.deleteActive = false
	if strings.ToLower(msg.String()) != "y" {
		m.status = "delete cancelled"
		return m, nil
	}
	it, ok := m.current()
	if !ok {
		return m, nil
	}
	id := it.Completion.ID
	ctx, svc := m.ctx, m.svc
	return m, func() tea.Msg {
		if err := svc.Delete(ctx, id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("deleted completion %d", id)}
	}
}

func (m browserModel) toggleFavorite() (tea.Model, tea.Cmd) {
	it, ok := m.current()
	if !ok {
		return m, nil
	}
	id := it.Completion.ID
	ctx, svc := m.ctx, m.svc
	return m, func() tea.Msg {
		c, err := svc.ToggleFavorite(ctx, id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if c.IsFavorite {
			return actionDoneMsg{status: "added to favorites"}
		}
		return actionDoneMsg{status: "removed from favorites"}
	}
}

func (m browserModel) detail() string {
	it := m.selected
	var b strings.Builder
	b.WriteString(m.theme.CategoryStyle(it.Prompt.Category).Render(it.Prompt.Category))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(it.Prompt.Text))
	b.WriteString("\n\n")
	if it.Completion.Notes != "" {
		b.WriteString(it.Completion.Notes)
	} else {
		b.WriteString(m.theme.HelpStyle().Render("no notes"))
	}
	return b.String()
}

func (m browserModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.helpActive {
		help := m.theme.BorderStyle().Padding(1, 2).Width(44).Render(`  ↑/↓      navigate
  enter    show details
  esc      back
  /        search
  tab      all / favorites
  f        toggle favorite
  d        delete completion
  r        refresh
  q        quit     ? close help`)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help,
			lipgloss.WithWhitespaceBackground(m.theme.Background))
	}

	var body, hint string
	switch m.screen {
	case screenList:
		body = m.list.View()
		hint = "enter details • tab favorites • f favorite • d delete • ? help • q quit"
	case screenDetail:
		c := m.selected.Completion
		fav := ""
		if c.IsFavorite {
			fav = "  ♥"
		}
		header := m.theme.HeaderStyle().Render(fmt.Sprintf("%s  #%d%s", day.Display(c.CompletedDate), c.ID, fav))
		body = header + "\n\n" + m.viewport.View()
		hint = "esc back • f favorite • d delete • q quit"
	}

	footer := m.theme.HelpStyle().Render(hint)
	switch {
	case m.deleteActive:
		footer = m.theme.DangerStyle().Render("Delete this completion? [y/N] ")
	case m.status != "":
		footer = m.theme.AccentStyle().Render(m.status) + "  " + footer
	}
	return m.theme.PaintScreen(body+"\n"+footer, m.width, m.height)
}

// RunHistoryBrowser launches the interactive history browser. When updates
// is non-nil the list follows it; otherwise it loads from svc once and after
// each change.
func RunHistoryBrowser(ctx context.Context, svc HistoryService, opts history.Options, updates <-chan history.Snapshot, today string, theme Theme) error {
	m := newBrowserModel(ctx, svc, opts, updates, today, theme)
	result, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if bm, ok := result.(browserModel); ok && bm.err != nil {
		return bm.err
	}
	return nil
}
