package confirm

import (
	"context"
	"errors"
	"sync"
)

var ErrBusy = errors.New("confirm: prompt already open")

type Outcome int

const (
	Cancelled Outcome = iota
	Confirmed
)

func (o Outcome) String() string {
	if o == Confirmed {
		return "confirmed"
	}
	return "cancelled"
}

// Event is a user action delivered to an open prompt.
type Event int

const (
	EventConfirm Event = iota
	EventCancel
	EventBackground
	EventContent
)

func (e Event) String() string {
	switch e {
	case EventConfirm:
		return "confirm"
	case EventCancel:
		return "cancel"
	case EventBackground:
		return "background"
	case EventContent:
		return "content"
	default:
		return "unknown"
	}
}

// Prompt is a single pending yes/no question about Subject. It resolves at
// most once.
type Prompt struct {
	Subject int64

	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

func newPrompt(subject int64) *Prompt {
	return &Prompt{Subject: subject, done: make(chan struct{})}
}

// Dispatch applies ev and reports whether it resolved the prompt. Content
// events never resolve.
func (p *Prompt) Dispatch(ev Event) bool {
	var outcome Outcome
	switch ev {
	case EventConfirm:
		outcome = Confirmed
	case EventCancel, EventBackground:
		outcome = Cancelled
	default:
		return false
	}
	resolved := false
	p.once.Do(func() {
		p.outcome = outcome
		close(p.done)
		resolved = true
	})
	return resolved
}

// Wait blocks until the prompt resolves or ctx ends.
func (p *Prompt) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return Cancelled, ctx.Err()
	}
}

// Modal holds the one prompt that may be open at a time.
type Modal struct {
	mu      sync.Mutex
	current *Prompt
}

func (m *Modal) Show(subject int64) (*Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return nil, ErrBusy
	}
	m.current = newPrompt(subject)
	return m.current, nil
}

// Dispatch routes ev to the open prompt. The modal closes once the prompt
// resolves, whatever the outcome.
func (m *Modal) Dispatch(ev Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return false
	}
	if !m.current.Dispatch(ev) {
		return false
	}
	m.current = nil
	return true
}

func (m *Modal) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

func (m *Modal) Current() *Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}
