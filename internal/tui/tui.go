// Package tui is the interactive list view over a store.Store.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

const titleLimit = 200

// listItem adapts a Todo to bubbles/list.Item
type listItem struct {
	todo model.Todo
}

func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box, text := mutedStyle.Render(boxUnchecked), it.todo.Title
	if it.todo.Completed {
		box, text = successStyle.Render(boxChecked), doneStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

// Model is the Bubble Tea model. Every action is applied to the store at once,
// so the slot is up to date even if the program is killed.
type Model struct {
	store  *store.Store
	filter model.Filter
	keys   keyMap

	list list.Model
	ti   textinput.Model

	adding  bool
	editing bool
	editID  string

	width, height int
}

// New builds the view over s showing every todo.
func New(s *store.Store) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = titleLimit

	m := Model{
		store:  s,
		keys:   keys,
		list:   l,
		ti:     ti,
		width:  84,
		height: 26,
	}
	m.refresh()
	return m
}

// Run starts the program in the alternate screen and blocks until the user quits.
func Run(s *store.Store) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Filter reports the active filter.
func (m Model) Filter() model.Filter { return m.filter }

// refresh reloads the visible items from the store, keeping the cursor in range.
func (m *Model) refresh() {
	todos := m.store.Filtered(m.filter)
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, listItem{todo: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m *Model) setFilter(f model.Filter) {
	m.filter = f
	m.list.Select(0)
	m.refresh()
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.todo, ok
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding || m.editing {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.ti.Width = m.width - 8
}

func (m *Model) openInput(value, placeholder string) tea.Cmd {
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.resize()
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.adding, m.editing, m.editID = false, false, ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Add):
			m.adding = true
			return m, m.openInput("", "What needs to be done?")
		case key.Matches(k, m.keys.Edit):
			if t, ok := m.selected(); ok {
				m.editing, m.editID = true, t.ID
				return m, m.openInput(t.Title, "Edit item title...")
			}
			return m, nil
		case key.Matches(k, m.keys.Toggle):
			if t, ok := m.selected(); ok {
				m.store.Toggle(t.ID)
				m.refresh()
			}
			return m, nil
		case key.Matches(k, m.keys.Delete):
			if t, ok := m.selected(); ok {
				m.store.Remove(t.ID)
				m.refresh()
			}
			return m, nil
		case key.Matches(k, m.keys.Clear):
			m.store.ClearCompleted()
			m.refresh()
			return m, nil
		case key.Matches(k, m.keys.NextFilter):
			m.setFilter(m.filter.Next())
			return m, nil
		case key.Matches(k, m.keys.PrevFilter):
			m.setFilter(m.filter.Prev())
			return m, nil
		case key.Matches(k, m.keys.All):
			m.setFilter(model.FilterAll)
			return m, nil
		case key.Matches(k, m.keys.Active):
			m.setFilter(model.FilterActive)
			return m, nil
		case key.Matches(k, m.keys.Completed):
			m.setFilter(model.FilterCompleted)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles the inline add/edit bar.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.closeInput()
			return m, nil
		case tea.KeyEnter:
			value := m.ti.Value()
			if m.adding {
				if _, created := m.store.Add(value); created {
					m.list.Select(0)
				}
			} else if t, ok := m.store.Get(m.editID); ok && value != t.Title {
				m.store.Edit(t.ID, value)
			}
			m.closeInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) header() string {
	left := fmt.Sprintf("%s   %s",
		titleStyle.Render("Todos"),
		pendingStyle.Render(fmt.Sprintf("%d left", m.store.Remaining())),
	)
	tabs := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		if f == m.filter {
			tabs = append(tabs, activeTabStyle.Render(f.Label()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(f.Label()))
		}
	}
	return left + "   " + strings.Join(tabs, "  ")
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	if len(m.list.Items()) == 0 {
		b.WriteString(mutedStyle.Render("No todos"))
		b.WriteString("\n\n")
		b.WriteString(m.list.Help.View(m.list))
	} else {
		b.WriteString(m.list.View())
	}

	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item (empty title deletes, esc cancels)"
		}
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + m.ti.View()))
	}
	return panelStyle.Render(b.String())
}
