// Package ui implements the Bubble Tea browser over the mirror history.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

type entryItem struct {
	e store.Entry
}

func (i entryItem) Title() string { return i.e.Link }

func (i entryItem) Description() string {
	if i.e.URI == "" {
		return i.e.PostedAt
	}
	return fmt.Sprintf("%s  %s", i.e.PostedAt, i.e.URI)
}

func (i entryItem) FilterValue() string { return i.e.Link }

// Model is the Bubble Tea model listing mirrored posts, newest first.
type Model struct {
	list list.Model
}

// NewModel constructs the model from ledger entries.
func NewModel(entries []store.Entry) *Model {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{e: e})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "mstdn-rss2bsky-post — mirrored posts"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	return &Model{list: l}
}

// NewProgram constructs the tea.Program for the TUI.
func NewProgram(entries []store.Entry) *tea.Program {
	return tea.NewProgram(NewModel(entries), tea.WithAltScreen())
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) View() string { return m.list.View() }
