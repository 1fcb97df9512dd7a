package update

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/todolist/internal/model"
)

// Phase is the load state of the task screen.
type Phase string

const (
	PhaseIdle      Phase = "Idle"
	PhaseLoading   Phase = "Loading"
	PhasePopulated Phase = "Populated"
	PhaseEmpty     Phase = "Empty"
	PhaseError     Phase = "Error"
)

type Mode string

const (
	ModeList    Mode = "List"
	ModeSearch  Mode = "Search"
	ModeNew     Mode = "New"
	ModeEdit    Mode = "Edit"
	ModeDetail  Mode = "Detail"
	ModePalette Mode = "Palette"
)

// TaskService is what the model needs from service.Service.
type TaskService interface {
	Load(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, query string) ([]model.Task, error)
	Add(ctx context.Context, title, description string) (model.Task, error)
	Save(ctx context.Context, task model.Task) (model.Task, error)
	Toggle(ctx context.Context, id int64) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Edit    key.Binding
	Open    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Search  key.Binding
	Palette key.Binding
	Share   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Share:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "copy to clipboard")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Search, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Edit},
		{k.New, k.Toggle, k.Delete, k.Share},
		{k.Search, k.Palette, k.Help, k.Quit},
	}
}

type Model struct {
	Phase       Phase
	Mode        Mode
	Tasks       []model.Task
	Query       string
	Editing     model.Task
	Status      StatusBar
	HelpVisible bool
	Quitting    bool
	LastError   error
	Keys        KeyMap

	ctx       context.Context
	svc       TaskService
	logger    *slog.Logger
	copyText  func(string) error
	searchSeq uint64

	taskList     list.Model
	searchInput  textinput.Model
	titleInput   textinput.Model
	descArea     textarea.Model
	descFocused  bool
	commandInput textinput.Model
	loadSpinner  spinner.Model
	helpModel    help.Model
	detailView   viewport.Model
}

type Option func(*Model)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClipboard replaces the system clipboard used by the share action.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

func NewModel(ctx context.Context, svc TaskService, opts ...Option) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	delegate := list.NewDefaultDelegate()
	taskList := list.New(nil, delegate, 64, 30)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)

	search := textinput.New()
	search.Placeholder = "type to filter"
	search.Prompt = "/ "

	title := textinput.New()
	title.Placeholder = model.PlaceholderTitle
	title.Prompt = ""
	title.CharLimit = 256

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.SetWidth(60)
	desc.SetHeight(6)

	command := textinput.New()
	command.Placeholder = "add buy milk"
	command.Prompt = ": "

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		Phase:        PhaseIdle,
		Mode:         ModeList,
		Keys:         DefaultKeyMap(),
		ctx:          ctx,
		svc:          svc,
		logger:       slog.Default(),
		copyText:     clipboard.WriteAll,
		taskList:     taskList,
		searchInput:  search,
		titleInput:   title,
		descArea:     desc,
		commandInput: command,
		loadSpinner:  spin,
		helpModel:    help.New(),
		detailView:   viewport.New(60, 12),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.taskList.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.task, true
}

type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Title + " " + i.task.Description }
func (i taskItem) Title() string       { return i.task.DisplayTitle() }
func (i taskItem) Description() string { return i.task.FormatDate() }

type startLoadMsg struct{}

// TasksLoadedMsg carries a fresh task list. Seq identifies the fetch that
// produced it; lists from superseded fetches are dropped.
type TasksLoadedMsg struct {
	Tasks []model.Task
	Seq   uint64
}

// LoadFailedMsg ends the initial load in the error phase.
type LoadFailedMsg struct {
	Err error
}

type TaskSavedMsg struct {
	Task    model.Task
	Created bool
}

type TaskDeletedMsg struct {
	ID int64
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}
