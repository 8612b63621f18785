// Package tui is the interactive terminal front end. It renders the store's
// current list and edit session and turns key presses into store calls; it
// never changes records on its own.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todolist"
	"github.com/idilsaglam/tada/internal/ui"
)

// maxAddLen caps typing in the add prompt only; edits never clip existing text.
const maxAddLen = 200

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// listItem adapts model.Todo to bubbles/list.Item
type listItem struct{ todo model.Todo }

func (i listItem) FilterValue() string { return i.todo.Text }

// itemDelegate renders single-line rows and marks the row under edit.
type itemDelegate struct{ store *todolist.Store }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	text := ui.Truncate(it.todo.Text, max(m.Width()-6, 10))
	line := t.Muted.Render(t.Bullet) + " " + text
	if sess, ok := d.store.Editing(); ok && sess.TargetID == it.todo.ID {
		line = t.Editing.Render("✎ " + text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor)
	}
	fmt.Fprint(w, prefix+line)
}

type keyMap struct {
	add, edit, del, quit, blur key.Binding
}

var keys = keyMap{
	add:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	edit: key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	del:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	blur: key.NewBinding(key.WithKeys("up", "down", "tab", "shift+tab")),
}

type modelTUI struct {
	store *todolist.Store
	list  list.Model
	ti    textinput.Model // shared by add and edit
	mode  mode

	width, height int
}

func newModel(store *todolist.Store) modelTUI {
	l := list.New(nil, itemDelegate{store: store}, 80, 20)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.SetStatusBarItemName("item", "items")
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.add, keys.edit, keys.del} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "

	m := modelTUI{store: store, list: l, ti: ti, width: 80, height: 24}
	m.refresh()
	return m
}

// refresh copies the store's list into the widget, keeping the cursor in range.
func (m *modelTUI) refresh() {
	todos := m.store.Items()
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
	m.list.Title = fmt.Sprintf("Todos  %s %d", ui.Current().Accent.Render("Total"), len(todos))
}

func (m modelTUI) selectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return it.todo.ID, true
}

func (m *modelTUI) closeInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.BlurMsg:
		if m.mode == editing {
			m.store.Blur()
			m.closeInput()
			m.refresh()
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case adding:
			return m.updateAdding(msg)
		case editing:
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if _, ok := m.store.Add(m.ti.Value()); !ok {
			return m, nil
		}
		m.closeInput()
		m.refresh()
		m.list.Select(len(m.list.Items()) - 1)
		return m, nil
	case "esc":
		m.closeInput()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "enter":
		m.store.CommitEdit()
		m.closeInput()
		m.refresh()
		return m, nil
	case msg.String() == "esc":
		m.store.CancelEdit()
		m.closeInput()
		m.refresh()
		return m, nil
	case msg.String() == "ctrl+c":
		m.store.Blur()
		m.closeInput()
		return m, tea.Quit
	case key.Matches(msg, keys.blur):
		m.store.Blur()
		m.closeInput()
		m.refresh()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	// Only real changes reach the buffer, so cursor keys leave the stored
	// draft (and any tabs or newlines in it) untouched.
	before := m.ti.Value()
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if after := m.ti.Value(); after != before {
		m.store.UpdateEditBuffer(after)
	}
	return m, cmd
}

func (m modelTUI) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.add):
		m.mode = adding
		m.ti.CharLimit = maxAddLen
		m.ti.SetValue("")
		m.ti.Placeholder = "New item..."
		return m, m.ti.Focus()
	case key.Matches(msg, keys.edit):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		m.store.StartEdit(id)
		sess, ok := m.store.Editing()
		if !ok {
			return m, nil
		}
		m.mode = editing
		m.ti.CharLimit = 0
		m.ti.SetValue(sess.Buffer)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit item..."
		return m, m.ti.Focus()
	case key.Matches(msg, keys.del):
		if id, ok := m.selectedID(); ok {
			m.store.Delete(id)
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	t := ui.Current()
	listHeight := m.height - 4
	if m.mode != browsing {
		listHeight = m.height - 8
	}
	m.list.SetSize(m.width-4, max(listHeight, 3))

	content := m.list.View()
	if len(m.list.Items()) == 0 {
		content = t.Title.Render("Todos") + "\n\n" + t.Muted.Render("No tasks yet. Press a to add one.")
	}
	if m.mode != browsing {
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add new item"
		if m.mode == editing {
			title = "Edit item  " + t.Muted.Render("enter save · esc cancel")
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString([]string{content})
}

// Run starts the terminal UI on store and blocks until the user quits.
func Run(store *todolist.Store) error {
	p := tea.NewProgram(newModel(store), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
