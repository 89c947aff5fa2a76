package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	next      key.Binding
	prev      key.Binding
	search    key.Binding
	layout    key.Binding
	filter    key.Binding
	confirm   key.Binding
	decline   key.Binding
	cancel    key.Binding
	edit      key.Binding
	book      key.Binding
	message   key.Binding
	export    key.Binding
	artists   key.Binding
	home      key.Binding
	refresh   key.Binding
	logout    key.Binding
	save      key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		search:    key.NewBinding(key.WithKeys("/", "s"), key.WithHelp("/", "search")),
		layout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
		filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		confirm:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "confirm")),
		decline:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "decline")),
		cancel:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel booking")),
		edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
		book:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "book")),
		message:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "message")),
		export:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export roster")),
		artists:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "artists")),
		home:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "dashboard")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		logout:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out")),
		save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.layout, k.filter, k.refresh},
		{k.confirm, k.decline, k.cancel, k.edit},
		{k.book, k.message, k.export, k.logout, k.quit},
	}
}
