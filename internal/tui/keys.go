package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Toggle     key.Binding
	Confirm    key.Binding
	Next       key.Binding
	Refresh    key.Binding
	Buy        key.Binding
	Sell       key.Binding
	Reset      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "move")),
	Right:      key.NewBinding(key.WithKeys("right", "l")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start/confirm")),
	Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
	Refresh:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shop")),
	Buy:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "buy")),
	Sell:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "sell last")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	ScrollUp:   key.NewBinding(key.WithKeys("up", "k", "pgup")),
	ScrollDown: key.NewBinding(key.WithKeys("down", "j", "pgdown")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Toggle, k.Confirm, k.Next, k.Refresh, k.Buy, k.Sell, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
