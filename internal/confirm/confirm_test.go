package confirm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfirmResolvesConfirmed(t *testing.T) {
	var m Modal
	p, err := m.Show(7)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !m.Visible() || m.Current() != p {
		t.Fatal("expected prompt to be visible")
	}
	if !m.Dispatch(EventConfirm) {
		t.Fatal("expected confirm to resolve")
	}
	if m.Visible() {
		t.Fatal("expected modal closed after resolution")
	}
	out, err := p.Wait(context.Background())
	if err != nil || out != Confirmed {
		t.Fatalf("wait = %v,%v want confirmed", out, err)
	}
	if p.Subject != 7 {
		t.Fatalf("unexpected subject: %d", p.Subject)
	}
}

func TestCancelAndBackgroundResolveCancelled(t *testing.T) {
	for _, ev := range []Event{EventCancel, EventBackground} {
		var m Modal
		p, err := m.Show(1)
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !m.Dispatch(ev) {
			t.Fatalf("expected %s to resolve", ev)
		}
		out, _ := p.Wait(context.Background())
		if out != Cancelled {
			t.Fatalf("%s resolved %s, want cancelled", ev, out)
		}
	}
}

func TestContentClickIsInert(t *testing.T) {
	var m Modal
	p, _ := m.Show(1)
	if m.Dispatch(EventContent) {
		t.Fatal("content event must not resolve")
	}
	if !m.Visible() {
		t.Fatal("modal must stay open after content event")
	}
	select {
	case <-p.done:
		t.Fatal("prompt resolved unexpectedly")
	default:
	}
}

func TestOnlyFirstResolutionCounts(t *testing.T) {
	p := newPrompt(3)
	if !p.Dispatch(EventCancel) {
		t.Fatal("expected first event to resolve")
	}
	if p.Dispatch(EventConfirm) {
		t.Fatal("second event must be ignored")
	}
	out, _ := p.Wait(context.Background())
	if out != Cancelled {
		t.Fatalf("outcome = %s, want cancelled", out)
	}
}

func TestShowWhileOpenIsBusy(t *testing.T) {
	var m Modal
	if _, err := m.Show(1); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if _, err := m.Show(2); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	m.Dispatch(EventBackground)
	if _, err := m.Show(2); err != nil {
		t.Fatalf("modal should be reusable after close: %v", err)
	}
}

func TestWaitHonoursContext(t *testing.T) {
	var m Modal
	p, _ := m.Show(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestDispatchWithoutPromptIsIgnored(t *testing.T) {
	var m Modal
	if m.Dispatch(EventConfirm) {
		t.Fatal("dispatch with no prompt must be ignored")
	}
}
