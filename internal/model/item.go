package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBlankItem = errors.New("model: blank item")
	ErrInvalidID = errors.New("model: invalid item id")
)

// BlankItemMessage is shown in the inline error region when an add is rejected.
const BlankItemMessage = "You cannot enter a blank item."

// Payload is the part of an item that moves when rows are reordered.
type Payload struct {
	Note   string
	Ticked bool
}

type Item struct {
	ID     int64
	Note   string
	Ticked bool
}

func (i Item) Payload() Payload {
	return Payload{Note: i.Note, Ticked: i.Ticked}
}

// WithPayload returns a copy of the item carrying p under the same id.
func (i Item) WithPayload(p Payload) Item {
	i.Note = p.Note
	i.Ticked = p.Ticked
	return i
}

// NormalizeNote trims surrounding whitespace and rejects empty notes.
func NormalizeNote(raw string) (string, error) {
	note := strings.TrimSpace(raw)
	if note == "" {
		return "", ErrBlankItem
	}
	return note, nil
}

// Validate rejects blank notes only. Input is trimmed by NormalizeNote; a
// stored note is written back exactly as it was read.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Note) == "" {
		return ErrBlankItem
	}
	return nil
}

func (i Item) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, i.ID)
	}
	return i.Payload().Validate()
}
