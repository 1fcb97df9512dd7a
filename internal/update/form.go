package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m Model) openNewForm() (Model, tea.Cmd) {
	m.Mode = ModeNew
	m.Editing = model.Task{}
	m.titleInput.SetValue("")
	m.descArea.SetValue("")
	return m.focusTitle()
}

func (m Model) openEditForm(task model.Task) (Model, tea.Cmd) {
	m.Mode = ModeEdit
	m.Editing = task
	m.titleInput.SetValue(task.Title)
	m.titleInput.CursorEnd()
	m.descArea.SetValue(task.Description)
	return m.focusTitle()
}

func (m Model) focusTitle() (Model, tea.Cmd) {
	m.descFocused = false
	m.descArea.Blur()
	return m, m.titleInput.Focus()
}

func (m Model) focusDescription() (Model, tea.Cmd) {
	m.descFocused = true
	m.titleInput.Blur()
	return m, m.descArea.Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		return m.submitForm()
	case "tab", "shift+tab":
		if m.descFocused {
			return m.focusTitle()
		}
		return m.focusDescription()
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.descFocused {
		m.descArea, cmd = m.descArea.Update(msg)
	} else {
		if msg.String() == "enter" {
			return m.focusDescription()
		}
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

// submitForm leaves the form, persisting its contents. A new form with
// nothing typed is discarded.
func (m Model) submitForm() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	desc := strings.TrimSpace(m.descArea.Value())
	mode := m.Mode

	m.Mode = ModeList
	m.titleInput.Blur()
	m.descArea.Blur()
	m.descFocused = false

	switch mode {
	case ModeNew:
		if title == "" && desc == "" {
			m.Status = StatusBar{Text: "empty task discarded"}
			return m, nil
		}
		return m, m.addCmd(title, desc)
	case ModeEdit:
		task := m.Editing
		if task.Title == title && task.Description == desc {
			return m, nil
		}
		task.Title = title
		task.Description = desc
		return m, m.saveCmd(task)
	}
	return m, nil
}

func (m Model) renderForm() string {
	heading := "New task"
	date := time.Now().Format(model.DateLayout)
	if m.Mode == ModeEdit {
		heading = "Edit task"
		date = m.Editing.FormatDate()
	}
	return views.RenderForm(views.FormData{
		Heading:          heading,
		Date:             date,
		TitleView:        m.titleInput.View(),
		DescriptionView:  m.descArea.View(),
		FocusDescription: m.descFocused,
	})
}
