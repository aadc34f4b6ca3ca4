package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MaxNoteWidth keeps every rendered row on a single line of the list panel.
const MaxNoteWidth = 40

type HelpPanelData struct {
	Bindings []string
	HelpView string
	About    string
}

type ModalData struct {
	Note string
}

// Rect is a screen region in cells.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// RenderList draws every row of d; cursor is the highlighted row index.
func RenderList(d ListData, cursor int) string {
	if d.Empty {
		return mutedStyle.Render(EmptyPlaceholder)
	}
	var b strings.Builder
	for i, row := range d.Rows {
		prefix := "  "
		if i == cursor {
			prefix = cursorStyle.Render("> ")
		}
		box := mutedStyle.Render(checkbox(false))
		note := ansi.Truncate(row.Note, MaxNoteWidth, "…")
		if row.Ticked {
			box = checkedStyle.Render(checkbox(true))
			note = tickedStyle.Render(note)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s", prefix, box, note, mutedStyle.Render(fmt.Sprintf("#%d", row.ID))))
		if i < len(d.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func RenderModal(data ModalData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Delete this item?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%q", data.Note))
	b.WriteString("\n\n")
	b.WriteString("[y] yes   [n] no   [esc] dismiss")
	return modalStyle.Render(b.String())
}

// PlaceModal centres box on a width x height screen and returns the frame
// together with the region the box occupies.
func PlaceModal(width, height int, box string) (string, Rect) {
	bounds := ModalBounds(width, height, box)
	frame := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	return frame, bounds
}

// ModalBounds mirrors lipgloss.Place centring: odd leftover space goes to
// the right and bottom.
func ModalBounds(width, height int, box string) Rect {
	w := lipgloss.Width(box)
	h := lipgloss.Height(box)
	x := 0
	if width > w {
		x = (width - w) / 2
	}
	y := 0
	if height > h {
		y = (height - h) / 2
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	if data.About != "" {
		b.WriteString("\n\n" + data.About)
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}
