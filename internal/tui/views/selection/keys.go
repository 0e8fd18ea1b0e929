package selection

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Filter       key.Binding
	ClearFilter  key.Binding
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	SelectAll    key.Binding
	Sort         key.Binding
	Reverse      key.Binding
	Descriptions key.Binding
	Details      key.Binding
	Open         key.Binding
	Continue     key.Binding
	Help         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearFilter:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:       key.NewBinding(key.WithKeys("space", " "), key.WithHelp("space", "select")),
		SelectAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Reverse:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse sort")),
		Descriptions: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "descriptions")),
		Details:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in admin")),
		Continue:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Toggle, k.SelectAll, k.Sort, k.Descriptions, k.Continue, k.Help}
}

func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{
		k.Filter, k.ClearFilter, k.Up, k.Down, k.Toggle, k.SelectAll,
		k.Sort, k.Reverse, k.Descriptions, k.Details, k.Open, k.Continue,
	}
}
