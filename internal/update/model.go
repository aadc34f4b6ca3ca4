package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/todolist/internal/confirm"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/todo"
	"github.com/sandeepkv93/todolist/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Add      key.Binding
	Leave    key.Binding
	Submit   key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Dismiss  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:      key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a/i", "add item")),
		Leave:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "cursor up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "cursor down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space/t", "tick")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Palette:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:  key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		Cancel:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Submit, k.Leave},
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Toggle, k.Delete, k.ClearAll},
		{k.Palette, k.Help, k.Quit},
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Model is the whole UI state. Rows always come from the most recent scan.
type Model struct {
	List        views.ListData
	Cursor      int
	InputActive bool
	ErrorText   string
	Status      StatusBar
	Palette     CommandPaletteState
	HelpVisible bool
	Keys        KeyMap
	Quitting    bool
	LastError   error

	ctx     context.Context
	service *todo.Service
	logger  *log.Logger
	modal   *confirm.Modal
	mouse   bool

	pending   bool
	renderSeq uint64
	width     int
	height    int

	// statusSeq identifies the current status text so an older expiry
	// tick cannot clear a newer message.
	statusSeq uint64
	statusTTL time.Duration

	addInput     textinput.Model
	commandInput textinput.Model
	listViewport viewport.Model
	busySpinner  spinner.Model
	helpModel    help.Model
}

// DefaultStatusTTL is how long a non-error status line stays on screen.
const DefaultStatusTTL = 3 * time.Second

type Options struct {
	Logger    *log.Logger
	Mouse     bool
	StatusTTL time.Duration
}

// itemsLoadedMsg carries one full scan tagged with the render it belongs to.
type itemsLoadedMsg struct {
	seq   uint64
	items []model.Item
}

type mutationDoneMsg struct {
	op         string
	status     string
	err        error
	hideError  bool
	clearInput bool
	// cursor is the row to select after the re-render, or -1.
	cursor int
}

type confirmResolvedMsg struct {
	subject int64
	outcome confirm.Outcome
	err     error
}

// ClearStatusMsg expires the status line. A zero seq clears whatever is
// shown.
type ClearStatusMsg struct {
	seq uint64
}

type AppErrorMsg struct {
	Err error
}

func NewModel(ctx context.Context, service *todo.Service, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ttl := opts.StatusTTL
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	m := Model{
		statusTTL: ttl,
		List:      views.BuildList(nil),
		Keys:      DefaultKeyMap(),
		ctx:       ctx,
		service:   service,
		logger:    logger,
		modal:     &confirm.Modal{},
		mouse:     opts.Mouse,
		renderSeq: 1,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "press a to add an item"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.listViewport = viewport.New(56, 12)

	m.busySpinner = spinner.New()
	m.busySpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

// syncBubbleData pushes the current rows into the list viewport and keeps
// the cursor row visible.
func (m *Model) syncBubbleData() {
	if m.height > 0 {
		m.listViewport.Height = max(3, m.height-chromeHeight)
	}
	m.listViewport.SetContent(views.RenderList(m.List, m.Cursor))

	if m.Cursor < m.listViewport.YOffset {
		m.listViewport.SetYOffset(m.Cursor)
	} else if m.Cursor >= m.listViewport.YOffset+m.listViewport.Height {
		m.listViewport.SetYOffset(m.Cursor - m.listViewport.Height + 1)
	}
}

// chromeHeight is every line of the main screen that is not a list row.
const chromeHeight = 8

func (m Model) Pending() bool {
	return m.pending
}

func (m Model) ModalVisible() bool {
	return m.modal.Visible()
}

func (m Model) InputValue() string {
	return m.addInput.Value()
}

func (m Model) selectedRow() (views.Row, bool) {
	if m.List.Empty || m.Cursor < 0 || m.Cursor >= len(m.List.Rows) {
		return views.Row{}, false
	}
	return m.List.Rows[m.Cursor], true
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.List.Rows) {
		m.Cursor = len(m.List.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
