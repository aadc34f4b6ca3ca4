package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todolist/internal/views"
)

const aboutMarkdown = `## Palette

- ` + "`/add <note>`" + ` add an item
- ` + "`/toggle <id>`" + ` tick or untick
- ` + "`/up <id>`" + `, ` + "`/down <id>`" + ` move
- ` + "`/delete <id>`" + ` delete after confirmation
- ` + "`/clear`" + ` remove everything

Items are saved as soon as they change.
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, group := range m.Keys.FullHelp() {
		for _, b := range group {
			plain = append(plain, bindingLine(b))
		}
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.FullHelpView(m.Keys.FullHelp()),
		About:    views.RenderMarkdown(aboutMarkdown),
	})
}

func bindingLine(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("- %s: %s", h.Key, h.Desc)
}
