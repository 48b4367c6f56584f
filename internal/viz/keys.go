package viz

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Pause   key.Binding
	Restart key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Restart}, {k.Theme, k.Help, k.Quit}}
}

func newHelp(t Theme) help.Model {
	h := help.New()
	h.Width = PanelWidth - 6
	h.ShortSeparator = " "
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(t.Accent)
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(t.Muted)
	h.Styles.ShortSeparator = h.Styles.ShortSeparator.Foreground(t.Border)
	return h
}
