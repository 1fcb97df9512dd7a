package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/commands"
	"github.com/sandeepkv93/todolist/internal/model"
)

func (m Model) openPalette() (Model, tea.Cmd) {
	m.Mode = ModePalette
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m, m.commandInput.Focus()
}

func (m Model) closePalette() Model {
	m.Mode = ModeList
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand(m.commandInput.Value())
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) executePaletteCommand(raw string) (Model, tea.Cmd) {
	m = m.closePalette()

	parsed, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var out tea.Cmd
	onSelected := func(verb string, fn func(model.Task) tea.Cmd) (commands.Result, error) {
		task, ok := m.SelectedTask()
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: errNoSelection.Error()}
		}
		out = fn(task)
		return commands.Result{Message: fmt.Sprintf("%s: %s", verb, task.DisplayTitle())}, nil
	}

	res, err := commands.Execute(parsed, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			out = m.addCmd(a.Title, "")
			return commands.Result{Message: fmt.Sprintf("adding task: %s", a.Title)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Query = s.Query
			m.searchInput.SetValue(s.Query)
			m, out = m.refresh()
			if s.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("searching for %q", s.Query)}, nil
		},
		Toggle: func() (commands.Result, error) {
			return onSelected("toggling", func(t model.Task) tea.Cmd { return m.toggleCmd(t.ID) })
		},
		Delete: func() (commands.Result, error) {
			return onSelected("deleting", func(t model.Task) tea.Cmd { return m.deleteCmd(t.ID) })
		},
		Share: func() (commands.Result, error) {
			return onSelected("sharing", m.shareCmd)
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, out
}
