package views

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/sandeepkv93/todolist/internal/model"
)

// EmptyPlaceholder is shown instead of rows when the store holds no items.
const EmptyPlaceholder = "Your list is empty. Add something above."

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Row is one rendered item, bound to the id it was built from.
type Row struct {
	ID     int64
	Note   string
	Ticked bool
}

// ListData is a disposable projection of one full store scan.
type ListData struct {
	Rows  []Row
	Empty bool
}

// BuildList maps a scan, already in ascending id order, to rows. Notes are
// reduced to plain text so stored content can never drive the terminal.
func BuildList(items []model.Item) ListData {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			ID:     item.ID,
			Note:   SanitizeNote(item.Note),
			Ticked: item.Ticked,
		})
	}
	return ListData{Rows: rows, Empty: len(rows) == 0}
}

// Index returns the position of the row bound to id, or -1.
func (d ListData) Index(id int64) int {
	for i, row := range d.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Neighbor resolves the id of the row displayed directly above or below
// the row bound to id. Ids are not assumed to be contiguous.
func (d ListData) Neighbor(id int64, dir Direction) (int64, bool) {
	idx := d.Index(id)
	if idx < 0 {
		return 0, false
	}
	switch dir {
	case Up:
		idx--
	case Down:
		idx++
	}
	if idx < 0 || idx >= len(d.Rows) {
		return 0, false
	}
	return d.Rows[idx].ID, true
}

func SanitizeNote(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// PlainList renders the projection without styling, one row per line.
func PlainList(d ListData) string {
	if d.Empty {
		return EmptyPlaceholder + "\n"
	}
	var b strings.Builder
	for _, row := range d.Rows {
		b.WriteString(fmt.Sprintf("%d %s %s\n", row.ID, checkbox(row.Ticked), row.Note))
	}
	return b.String()
}

func checkbox(ticked bool) string {
	if ticked {
		return "[x]"
	}
	return "[ ]"
}
