package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/confirm"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return loadItemsCmd(m.ctx, m.service, m.renderSeq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
	case tea.KeyMsg:
		m, cmd = m.handleKey(typed)
	case tea.MouseMsg:
		m = m.handleMouse(typed)
	case spinner.TickMsg:
		if m.pending {
			m.busySpinner, cmd = m.busySpinner.Update(typed)
		}
	case itemsLoadedMsg:
		m = m.applyItems(typed)
	case mutationDoneMsg:
		m, cmd = m.finishMutation(typed)
	case confirmResolvedMsg:
		m, cmd = m.resolveConfirm(typed)
	case ClearStatusMsg:
		if typed.seq == 0 || typed.seq == m.statusSeq {
			m.Status = StatusBar{}
		}
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.logger.Error("store read failed", "err", typed.Err)
			m.setStatus(typed.Err.Error(), true)
		}
	}

	m.syncBubbleData()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.modal.Visible() {
		return m.handleModalKey(msg), nil
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.InputActive {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		return m, m.commandInput.Focus()
	case key.Matches(msg, m.Keys.Add):
		m.InputActive = true
		return m, m.addInput.Focus()
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.List.Rows)-1 {
			m.Cursor++
		}
		return m, nil
	}

	if m.pending {
		return m, nil
	}
	row, hasRow := m.selectedRow()

	switch {
	case key.Matches(msg, m.Keys.ClearAll):
		return m, m.clearCmd()
	case !hasRow:
		return m, nil
	case key.Matches(msg, m.Keys.Toggle):
		return m, m.toggleCmd(row.ID)
	case key.Matches(msg, m.Keys.MoveUp):
		return m, m.moveCmd(row.ID, views.Up)
	case key.Matches(msg, m.Keys.MoveDown):
		return m, m.moveCmd(row.ID, views.Down)
	case key.Matches(msg, m.Keys.Delete):
		return m, m.openDelete(row.ID)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Leave):
		m.InputActive = false
		m.addInput.Blur()
		return m, nil
	case key.Matches(msg, m.Keys.Submit):
		raw := m.addInput.Value()
		if _, err := model.NormalizeNote(raw); err != nil {
			m.ErrorText = model.BlankItemMessage
			return m, nil
		}
		if m.pending {
			return m, nil
		}
		return m, m.addCmd(raw, true)
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.modal.Dispatch(confirm.EventConfirm)
	case key.Matches(msg, m.Keys.Cancel):
		m.modal.Dispatch(confirm.EventCancel)
	case key.Matches(msg, m.Keys.Dismiss):
		m.modal.Dispatch(confirm.EventBackground)
	}
	return m
}

// handleMouse selects rows on click. While the modal is open a click inside
// the box is inert and a click anywhere else dismisses it.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if !m.mouse || msg.Action != tea.MouseActionPress {
		return m
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !m.modal.Visible() && m.Cursor > 0 {
			m.Cursor--
		}
		return m
	case tea.MouseButtonWheelDown:
		if !m.modal.Visible() && m.Cursor < len(m.List.Rows)-1 {
			m.Cursor++
		}
		return m
	case tea.MouseButtonLeft:
	default:
		return m
	}

	if m.modal.Visible() {
		bounds := views.ModalBounds(m.width, m.height, m.modalBox())
		ev := confirm.EventBackground
		if bounds.Contains(msg.X, msg.Y) {
			ev = confirm.EventContent
		}
		m.modal.Dispatch(ev)
		return m
	}

	row := msg.Y - m.listTop() + m.listViewport.YOffset
	if row >= 0 && row < len(m.List.Rows) {
		m.Cursor = row
	}
	return m
}

// listTop is the screen line of the first list row: header, input, the
// optional error line and the panel border come first.
func (m Model) listTop() int {
	top := 3
	if m.ErrorText != "" {
		top++
	}
	return top
}

func (m Model) openDelete(id int64) tea.Cmd {
	if m.pending {
		return nil
	}
	p, err := m.modal.Show(id)
	if err != nil {
		m.logger.Debug("delete prompt skipped", "id", id, "err", err)
		return nil
	}
	return waitForConfirmCmd(m.ctx, p)
}

func (m Model) modalBox() string {
	note := ""
	if p := m.modal.Current(); p != nil {
		note = fmt.Sprintf("item #%d", p.Subject)
		if idx := m.List.Index(p.Subject); idx >= 0 {
			note = m.List.Rows[idx].Note
		}
	}
	return views.RenderModal(views.ModalData{Note: note})
}

func (m Model) applyItems(msg itemsLoadedMsg) Model {
	if msg.seq != m.renderSeq {
		m.logger.Debug("stale scan dropped", "seq", msg.seq, "current", m.renderSeq)
		return m
	}
	m.List = views.BuildList(msg.items)
	m.clampCursor()
	m.logger.Debug("entries all displayed", "count", len(m.List.Rows))
	return m
}

func (m Model) finishMutation(msg mutationDoneMsg) (Model, tea.Cmd) {
	m.pending = false
	var expire tea.Cmd
	switch {
	case errors.Is(msg.err, errMoveAborted):
		m.logger.Debug("move aborted", "op", msg.op)
	case msg.err != nil:
		m.LastError = msg.err
		m.setStatus(msg.err.Error(), true)
	default:
		if msg.hideError {
			m.ErrorText = ""
		}
		if msg.clearInput {
			m.addInput.Reset()
		}
		if msg.cursor >= 0 {
			m.Cursor = msg.cursor
		}
		expire = m.setStatus(msg.status, false)
	}
	// Re-render from the store even after a failure so the screen matches it.
	return m, tea.Batch(m.refresh(), expire)
}

func (m Model) resolveConfirm(msg confirmResolvedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("delete prompt abandoned", "id", msg.subject, "err", msg.err)
		return m, nil
	}
	if msg.outcome != confirm.Confirmed {
		return m, m.setStatus("delete cancelled", false)
	}
	return m, m.deleteCmd(msg.subject)
}

func (m Model) View() string {
	if m.modal.Visible() {
		frame, _ := views.PlaceModal(m.width, m.height, m.modalBox())
		return frame
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	if m.pending {
		status = strings.TrimSpace(m.busySpinner.View() + " saving " + status)
	}

	footer := m.helpModel.View(m.Keys)
	if m.Palette.Active {
		footer = views.RenderCommandPalette(true, m.commandInput.View())
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("todolist | %d items", len(m.List.Rows)),
		Input:      m.addInput.View(),
		Error:      m.ErrorText,
		List:       m.listViewport.View(),
		Help:       m.renderHelpIfVisible(),
		StatusLine: status,
		Footer:     footer,
	})
}
