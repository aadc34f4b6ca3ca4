package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todolist/internal/model"
)

func TestRenderListShowsPlaceholderWhenEmpty(t *testing.T) {
	out := RenderList(BuildList(nil), 0)
	if !strings.Contains(out, EmptyPlaceholder) {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestRenderListShowsEveryRow(t *testing.T) {
	out := RenderList(BuildList([]model.Item{
		{ID: 1, Note: "Buy milk", Ticked: true},
		{ID: 2, Note: "Walk dog"},
	}), 1)
	for _, want := range []string{"Buy milk", "Walk dog", "[x]", "[ ]", "#1", "#2", "> "} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in list output: %q", want, out)
		}
	}
	if strings.Contains(out, EmptyPlaceholder) {
		t.Fatalf("placeholder must be hidden when rows exist: %q", out)
	}
}

func TestModalBoundsCentresBox(t *testing.T) {
	box := strings.Repeat("x", 10) + "\n" + strings.Repeat("x", 10)
	r := ModalBounds(31, 9, box)
	if r.Width != 10 || r.Height != 2 {
		t.Fatalf("unexpected box size: %+v", r)
	}
	if r.X != 10 || r.Y != 3 {
		t.Fatalf("unexpected box origin: %+v", r)
	}
	if !r.Contains(10, 3) || !r.Contains(19, 4) {
		t.Fatalf("expected corners inside: %+v", r)
	}
	if r.Contains(20, 3) || r.Contains(9, 3) || r.Contains(10, 5) {
		t.Fatalf("expected outside points rejected: %+v", r)
	}
}

func TestPlaceModalMatchesBounds(t *testing.T) {
	box := RenderModal(ModalData{Note: "Walk dog"})
	frame, r := PlaceModal(80, 24, box)
	if lipgloss.Height(frame) != 24 {
		t.Fatalf("expected full-height frame, got %d", lipgloss.Height(frame))
	}
	lines := strings.Split(frame, "\n")
	top := lines[r.Y]
	if strings.TrimSpace(top) == "" {
		t.Fatalf("expected modal border on line %d", r.Y)
	}
	if r.Y > 0 && strings.TrimSpace(lines[r.Y-1]) != "" {
		t.Fatalf("expected blank line above modal, got %q", lines[r.Y-1])
	}
}

func TestRenderModalQuotesNote(t *testing.T) {
	out := RenderModal(ModalData{Note: "Walk dog"})
	if !strings.Contains(out, `"Walk dog"`) || !strings.Contains(out, "[y] yes") {
		t.Fatalf("unexpected modal: %q", out)
	}
}

func TestRenderAppIncludesErrorRegion(t *testing.T) {
	out := RenderApp(AppData{
		Header: "todolist",
		Input:  "add> ",
		Error:  model.BlankItemMessage,
		List:   EmptyPlaceholder,
	})
	if !strings.Contains(out, model.BlankItemMessage) {
		t.Fatalf("expected error message in output: %q", out)
	}
	out = RenderApp(AppData{Header: "todolist", List: EmptyPlaceholder})
	if strings.Contains(out, "! ") {
		t.Fatalf("expected hidden error region: %q", out)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("   ") != "" {
		t.Fatal("expected empty markdown output")
	}
	if out := RenderMarkdown("# Keys"); !strings.Contains(out, "Keys") {
		t.Fatalf("expected heading text, got %q", out)
	}
}
