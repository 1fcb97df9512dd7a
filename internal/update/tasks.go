package update

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/model"
)

var errNoSelection = errors.New("no task selected")

// beginLoad moves Idle to Loading and starts the first fetch.
func (m Model) beginLoad() (Model, tea.Cmd) {
	m.Phase = PhaseLoading
	m.searchSeq++
	seq := m.searchSeq
	ctx, svc := m.ctx, m.svc
	load := func() tea.Msg {
		tasks, err := svc.Load(ctx)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks, Seq: seq}
	}
	return m, tea.Batch(m.loadSpinner.Tick, load)
}

// refresh re-publishes the list through the current query.
func (m Model) refresh() (Model, tea.Cmd) {
	m.searchSeq++
	seq := m.searchSeq
	ctx, svc, query := m.ctx, m.svc, m.Query
	return m, func() tea.Msg {
		tasks, err := svc.Search(ctx, query)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks, Seq: seq}
	}
}

func (m Model) addCmd(title, description string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		task, err := svc.Add(ctx, title, description)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: task, Created: true}
	}
}

func (m Model) saveCmd(task model.Task) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		saved, err := svc.Save(ctx, task)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: saved}
	}
}

func (m Model) toggleCmd(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		saved, err := svc.Toggle(ctx, id)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: saved}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		if err := svc.Delete(ctx, id); err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskDeletedMsg{ID: id}
	}
}

func (m Model) shareCmd(task model.Task) tea.Cmd {
	write := m.copyText
	text := task.ShareText()
	return func() tea.Msg {
		if err := write(text); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return SetStatusMsg{Text: fmt.Sprintf("copied %q to clipboard", task.DisplayTitle())}
	}
}

func (m Model) applyTasks(msg TasksLoadedMsg) Model {
	if msg.Seq < m.searchSeq {
		m.logger.Debug("dropping stale task list", slog.Uint64("seq", msg.Seq), slog.Uint64("latest", m.searchSeq))
		return m
	}
	prev, hadPrev := m.SelectedTask()

	m.Tasks = msg.Tasks
	items := make([]list.Item, 0, len(msg.Tasks))
	for _, t := range msg.Tasks {
		items = append(items, taskItem{task: t})
	}
	m.taskList.SetItems(items)

	switch {
	case len(msg.Tasks) == 0 && m.Query == "":
		m.Phase = PhaseEmpty
	default:
		m.Phase = PhasePopulated
	}

	if hadPrev {
		for i, t := range msg.Tasks {
			if t.ID == prev.ID {
				m.taskList.Select(i)
				return m
			}
		}
	}
	if idx := m.taskList.Index(); idx >= len(items) && len(items) > 0 {
		m.taskList.Select(len(items) - 1)
	}
	return m
}

// withSelected runs fn on the task under the cursor, or reports that nothing
// is selected.
func (m Model) withSelected(fn func(model.Task) tea.Cmd) (Model, tea.Cmd) {
	task, ok := m.SelectedTask()
	if !ok {
		m.Status = StatusBar{Text: errNoSelection.Error(), IsError: true}
		return m, nil
	}
	return m, fn(task)
}

// visibleRows returns the current page of the list for rendering.
func (m Model) visibleRows() []model.Task {
	start, end := m.taskList.Paginator.GetSliceBounds(len(m.Tasks))
	if start > end {
		return nil
	}
	return m.Tasks[start:end]
}
