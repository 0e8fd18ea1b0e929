package review

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Sort         key.Binding
	Reverse      key.Binding
	Descriptions key.Binding
	Details      key.Binding
	Open         key.Binding
	Back         key.Binding
	Help         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Reverse:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse sort")),
		Descriptions: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "descriptions")),
		Details:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in admin")),
		Back:         key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b/esc", "back")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Reverse, k.Descriptions, k.Details, k.Back, k.Help}
}

func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Sort, k.Reverse, k.Descriptions, k.Details, k.Open, k.Back}
}
