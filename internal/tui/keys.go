package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
)

type keyMap struct {
	Refresh   key.Binding
	SortName  key.Binding
	SortEmail key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		SortName:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort by name")),
		SortEmail: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "sort by email")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// pageKeys keeps paging off pgup/pgdown, which the table uses for scrolling.
func pageKeys() paginator.KeyMap {
	return paginator.KeyMap{
		PrevPage: key.NewBinding(key.WithKeys("left", "h")),
		NextPage: key.NewBinding(key.WithKeys("right", "l")),
	}
}
