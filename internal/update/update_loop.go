package update

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return startLoadMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case startLoadMsg:
		if m.Phase != PhaseIdle {
			return m, nil
		}
		return m.beginLoad()
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.taskList.SetSize(max(typed.Width-8, 20), max(typed.Height-8, 3))
		m.descArea.SetWidth(max(typed.Width-12, 20))
		m.detailView.Width = max(typed.Width-12, 20)
		m.detailView.Height = max(typed.Height-12, 3)
		m.helpModel.Width = typed.Width
		return m, nil
	case spinner.TickMsg:
		if m.Phase != PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loadSpinner, cmd = m.loadSpinner.Update(typed)
		return m, cmd
	case TasksLoadedMsg:
		return m.applyTasks(typed), nil
	case LoadFailedMsg:
		m.Phase = PhaseError
		m.LastError = typed.Err
		m.logger.Error("loading tasks failed", slog.Any("error", typed.Err))
		return m, nil
	case TaskSavedMsg:
		if typed.Created {
			m.Status = StatusBar{Text: fmt.Sprintf("added: %s", typed.Task.DisplayTitle())}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", typed.Task.DisplayTitle())}
		}
		if m.Mode == ModeDetail && m.Editing.ID == typed.Task.ID {
			m = m.showDetail(typed.Task)
		}
		return m.refresh()
	case TaskDeletedMsg:
		m.Status = StatusBar{Text: "task deleted"}
		if m.Mode == ModeDetail && m.Editing.ID == typed.ID {
			m.Mode = ModeList
		}
		return m.refresh()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("task operation failed", slog.Any("error", typed.Err))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Mode {
	case ModeNew, ModeEdit:
		return m.handleFormKey(msg)
	case ModePalette:
		return m.handlePaletteKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.Keys.Help) {
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}
	if m.Mode == ModeDetail {
		return m.handleDetailKey(msg)
	}
	if key.Matches(msg, m.Keys.Quit) {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Phase != PhasePopulated && m.Phase != PhaseEmpty {
		return m, nil
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.taskList.CursorUp()
	case key.Matches(msg, m.Keys.Down):
		m.taskList.CursorDown()
	case key.Matches(msg, m.Keys.New):
		return m.openNewForm()
	case key.Matches(msg, m.Keys.Edit):
		task, ok := m.SelectedTask()
		if ok {
			return m.openEditForm(task)
		}
	case key.Matches(msg, m.Keys.Open):
		task, ok := m.SelectedTask()
		if ok {
			return m.showDetail(task), nil
		}
	case key.Matches(msg, m.Keys.Toggle):
		return m.withSelected(func(t model.Task) tea.Cmd { return m.toggleCmd(t.ID) })
	case key.Matches(msg, m.Keys.Delete):
		return m.withSelected(func(t model.Task) tea.Cmd { return m.deleteCmd(t.ID) })
	case key.Matches(msg, m.Keys.Share):
		return m.withSelected(m.shareCmd)
	case key.Matches(msg, m.Keys.Search):
		m.Mode = ModeSearch
		m.searchInput.SetValue(m.Query)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.Keys.Palette):
		return m.openPalette()
	}
	return m, nil
}

// handleSearchKey filters live: every edit issues a new search, and only the
// newest result is applied.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Mode = ModeList
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.Mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.Query == "" {
			return m, nil
		}
		m.Query = ""
		return m.refresh()
	}

	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	query := strings.TrimSpace(m.searchInput.Value())
	if query == m.Query {
		return m, inputCmd
	}
	m.Query = query
	next, searchCmd := m.refresh()
	return next, tea.Batch(inputCmd, searchCmd)
}

func (m Model) showDetail(task model.Task) Model {
	m.Mode = ModeDetail
	m.Editing = task
	body := task.Description
	if strings.TrimSpace(body) == "" {
		body = "_No description._"
	}
	m.detailView.SetContent(views.RenderMarkdown(body))
	m.detailView.GotoTop()
	return m
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.String() == "esc", msg.String() == "backspace", key.Matches(msg, m.Keys.Quit):
		m.Mode = ModeList
		return m, nil
	case key.Matches(msg, m.Keys.Edit):
		return m.openEditForm(m.Editing)
	case key.Matches(msg, m.Keys.Toggle):
		return m, m.toggleCmd(m.Editing.ID)
	case key.Matches(msg, m.Keys.Share):
		return m, m.shareCmd(m.Editing)
	case key.Matches(msg, m.Keys.Delete):
		return m, m.deleteCmd(m.Editing.ID)
	}
	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	searchBar := ""
	if m.Mode == ModeSearch || m.Query != "" {
		searchBar = views.RenderSearchBar(m.searchInput.View(), m.Mode == ModeSearch)
	}

	side := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Mode == ModePalette, m.commandInput.View()),
		m.renderHelpIfVisible(),
	}, "\n\n"))

	footer := views.RenderTaskCount(len(m.Tasks)) + " | n new | / search | : cmd | ? help | q quit"
	if m.Phase == PhaseIdle || m.Phase == PhaseLoading || m.Phase == PhaseError {
		footer = "? help | q quit"
	}

	return views.RenderApp(views.AppData{
		Header:     "todolist",
		SearchBar:  searchBar,
		Body:       m.renderBody(),
		SidePane:   side,
		StatusLine: status,
		Footer:     footer,
	})
}

func (m Model) renderBody() string {
	switch m.Phase {
	case PhaseIdle, PhaseLoading:
		return views.RenderLoading(m.loadSpinner.View())
	case PhaseError:
		return views.RenderError("press q to quit")
	}

	switch m.Mode {
	case ModeNew, ModeEdit:
		return m.renderForm()
	case ModeDetail:
		return views.RenderDetail(views.DetailData{
			Title:        m.Editing.DisplayTitle(),
			Date:         m.Editing.FormatDate(),
			Completed:    m.Editing.Completed,
			UserID:       m.Editing.UserID,
			ViewportView: m.detailView.View(),
		})
	}

	if m.Phase == PhaseEmpty {
		return views.RenderEmpty()
	}
	if len(m.Tasks) == 0 {
		return views.RenderNoMatches(m.Query)
	}

	selected, _ := m.SelectedTask()
	page := m.visibleRows()
	rows := make([]views.TaskRowData, 0, len(page))
	for _, t := range page {
		rows = append(rows, views.TaskRowData{
			Title:       t.DisplayTitle(),
			Description: t.Description,
			Date:        t.FormatDate(),
			Completed:   t.Completed,
			Selected:    t.ID == selected.ID,
		})
	}
	return views.RenderTaskRows(rows)
}
