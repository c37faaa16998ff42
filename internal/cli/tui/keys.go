package tui

import "github.com/charmbracelet/bubbles/key"

type modalKeymap struct {
	Next          key.Binding
	Prev          key.Binding
	Left          key.Binding
	Right         key.Binding
	Toggle        key.Binding
	ToggleAll     key.Binding
	TogglePreview key.Binding
	Export        key.Binding
	Close         key.Binding
	Quit          key.Binding
}

func (k modalKeymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Toggle, k.Export, k.Close}
}

func (k modalKeymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},        // first column
		{k.Toggle, k.ToggleAll, k.TogglePreview}, // second column
		{k.Export, k.Close, k.Quit},              // third column
	}
}

func modalKeyMap() modalKeymap {
	return modalKeymap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "change"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "change"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle category"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select/deselect all"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "show/hide preview"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s", "enter"),
			key.WithHelp("enter/ctrl+s", "export"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
