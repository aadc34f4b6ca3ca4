package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/confirm"
	"github.com/sandeepkv93/todolist/internal/todo"
	"github.com/sandeepkv93/todolist/internal/views"
)

// errMoveAborted reports a move whose records vanished before the swap.
var errMoveAborted = errors.New("move aborted")

// refresh starts a new render. Scans from older renders are dropped when
// they arrive.
func (m *Model) refresh() tea.Cmd {
	m.renderSeq++
	return loadItemsCmd(m.ctx, m.service, m.renderSeq)
}

func loadItemsCmd(ctx context.Context, svc *todo.Service, seq uint64) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := svc.List(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return itemsLoadedMsg{seq: seq, items: items}
	}
}

// startMutation marks the model busy and runs fn off the update loop.
func (m *Model) startMutation(done mutationDoneMsg, fn func(context.Context) error) tea.Cmd {
	if m.service == nil {
		return nil
	}
	m.pending = true
	ctx := m.ctx
	run := func() tea.Msg {
		done.err = fn(ctx)
		return done
	}
	return tea.Batch(run, m.busySpinner.Tick)
}

// addCmd stores raw. fromInput clears the add input once the item is saved.
func (m *Model) addCmd(raw string, fromInput bool) tea.Cmd {
	svc := m.service
	done := mutationDoneMsg{op: "add", status: "item added", clearInput: fromInput, cursor: len(m.List.Rows)}
	return m.startMutation(done, func(ctx context.Context) error {
		_, err := svc.Add(ctx, raw)
		return err
	})
}

func (m *Model) toggleCmd(id int64) tea.Cmd {
	svc := m.service
	return m.startMutation(mutationDoneMsg{op: "toggle", status: fmt.Sprintf("toggled #%d", id), hideError: true, cursor: -1}, func(ctx context.Context) error {
		return svc.Toggle(ctx, id)
	})
}

// moveCmd swaps id with its visual neighbour in dir. Without a neighbour
// nothing is sent to the store.
func (m *Model) moveCmd(id int64, dir views.Direction) tea.Cmd {
	neighbor, ok := m.List.Neighbor(id, dir)
	if !ok {
		return nil
	}
	target := m.List.Index(neighbor)
	svc := m.service
	done := mutationDoneMsg{op: "move", status: fmt.Sprintf("moved #%d %s", id, dir), hideError: true, cursor: target}
	return m.startMutation(done, func(ctx context.Context) error {
		moved, err := svc.Move(ctx, id, neighbor)
		if err != nil {
			return err
		}
		if !moved {
			return errMoveAborted
		}
		return nil
	})
}

func (m *Model) deleteCmd(id int64) tea.Cmd {
	svc := m.service
	return m.startMutation(mutationDoneMsg{op: "delete", status: fmt.Sprintf("deleted #%d", id), hideError: true, cursor: -1}, func(ctx context.Context) error {
		return svc.Delete(ctx, id)
	})
}

func (m *Model) clearCmd() tea.Cmd {
	svc := m.service
	return m.startMutation(mutationDoneMsg{op: "clear", status: "list cleared", hideError: true, cursor: 0}, func(ctx context.Context) error {
		return svc.Clear(ctx)
	})
}

// setStatus shows text on the status line. Non-error text expires after
// statusTTL; errors stay until something replaces them.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isError}
	if isError || text == "" {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

// waitForConfirmCmd blocks on the prompt and reports its outcome.
func waitForConfirmCmd(ctx context.Context, p *confirm.Prompt) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		outcome, err := p.Wait(ctx)
		return confirmResolvedMsg{subject: p.Subject, outcome: outcome, err: err}
	}
}
