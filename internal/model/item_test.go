package model

import (
	"errors"
	"testing"
)

func TestNormalizeNoteTrims(t *testing.T) {
	got, err := NormalizeNote("  Buy milk \t")
	if err != nil {
		t.Fatalf("expected valid note, got error: %v", err)
	}
	if got != "Buy milk" {
		t.Fatalf("unexpected note: %q", got)
	}
}

func TestNormalizeNoteRejectsBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		if _, err := NormalizeNote(in); !errors.Is(err, ErrBlankItem) {
			t.Fatalf("NormalizeNote(%q) expected ErrBlankItem, got: %v", in, err)
		}
	}
}

func TestItemValidate(t *testing.T) {
	item := Item{ID: 1, Note: "Walk dog"}
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid item, got error: %v", err)
	}

	item.ID = 0
	if err := item.Validate(); err == nil || !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got: %v", err)
	}

	item.ID = 2
	item.Note = " padded "
	if err := item.Validate(); err != nil {
		t.Fatalf("stored padded note must stay writable, got: %v", err)
	}

	item.Note = ""
	if err := item.Validate(); !errors.Is(err, ErrBlankItem) {
		t.Fatalf("expected ErrBlankItem, got: %v", err)
	}
}

func TestWithPayloadKeepsID(t *testing.T) {
	item := Item{ID: 7, Note: "old", Ticked: false}
	next := item.WithPayload(Payload{Note: "new", Ticked: true})
	if next.ID != 7 || next.Note != "new" || !next.Ticked {
		t.Fatalf("unexpected item after payload swap: %#v", next)
	}
	if item.Note != "old" {
		t.Fatalf("receiver mutated: %#v", item)
	}
}
