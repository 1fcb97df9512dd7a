package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todolist/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	m.helpModel.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(m.Keys),
	})
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeNew, ModeEdit:
		return []KeyBinding{
			{Key: "tab", Action: "switch between title and description"},
			{Key: "ctrl+s / esc", Action: "save and go back"},
		}
	case ModeSearch:
		return []KeyBinding{
			{Key: "enter", Action: "keep filter and return to list"},
			{Key: "esc", Action: "clear filter"},
		}
	case ModeDetail:
		return []KeyBinding{
			{Key: "e", Action: "edit"},
			{Key: "space/x", Action: "toggle done"},
			{Key: "s", Action: "copy to clipboard"},
			{Key: "esc", Action: "back to list"},
		}
	case ModePalette:
		return []KeyBinding{
			{Key: "enter", Action: "run command"},
			{Key: "esc", Action: "close palette"},
		}
	}
	return bindingsOf(m.Keys.Up, m.Keys.Down, m.Keys.Open, m.Keys.Edit, m.Keys.New,
		m.Keys.Toggle, m.Keys.Delete, m.Keys.Share, m.Keys.Search, m.Keys.Palette)
}

func bindingsOf(bs ...key.Binding) []KeyBinding {
	out := make([]KeyBinding, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		out = append(out, KeyBinding{Key: h.Key, Action: h.Desc})
	}
	return out
}
