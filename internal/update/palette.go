package update

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/commands"
	"github.com/sandeepkv93/todolist/internal/todo"
	"github.com/sandeepkv93/todolist/internal/views"
)

var errBusy = errors.New("another change is still being saved")

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// executePaletteCommand runs the typed command. Ids that do not parse are
// ignored without a message.
func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	var next tea.Cmd
	withID := func(a commands.IDArgs, fn func(int64) tea.Cmd) (commands.Result, error) {
		id, ok := todo.ParseID(a.Raw)
		if !ok {
			return commands.Result{}, nil
		}
		if m.pending {
			return commands.Result{}, errBusy
		}
		next = fn(id)
		return commands.Result{}, nil
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.pending {
				return commands.Result{}, errBusy
			}
			next = m.addCmd(a.Note, false)
			return commands.Result{}, nil
		},
		Toggle: func(a commands.IDArgs) (commands.Result, error) {
			return withID(a, m.toggleCmd)
		},
		Up: func(a commands.IDArgs) (commands.Result, error) {
			return withID(a, func(id int64) tea.Cmd { return m.moveCmd(id, views.Up) })
		},
		Down: func(a commands.IDArgs) (commands.Result, error) {
			return withID(a, func(id int64) tea.Cmd { return m.moveCmd(id, views.Down) })
		},
		Delete: func(a commands.IDArgs) (commands.Result, error) {
			return withID(a, m.openDelete)
		},
		Clear: func() (commands.Result, error) {
			if m.pending {
				return commands.Result{}, errBusy
			}
			next = m.clearCmd()
			return commands.Result{}, nil
		},
	})
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	if res.Message != "" {
		return m, tea.Batch(next, m.setStatus(res.Message, false))
	}
	return m, next
}
