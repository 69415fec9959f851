package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding
	Mark   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Paging
	NextPage key.Binding
	PrevPage key.Binding

	// Mail actions
	Compose    key.Binding
	Reply      key.Binding
	Star       key.Binding
	Important  key.Binding
	ToggleRead key.Binding
	Move       key.Binding
	Archive    key.Binding
	Spam       key.Binding
	Trash      key.Binding
	Snooze     key.Binding
	Export     key.Binding

	// Navigation between mailboxes
	Folders    key.Binding
	Categories key.Binding
	Starred    key.Binding
	Scheduled  key.Binding

	// Account switching
	Accounts key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open mail"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark for bulk action"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "previous page"),
		),
		Compose: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compose"),
		),
		Reply: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reply"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle star"),
		),
		Important: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle important"),
		),
		ToggleRead: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "toggle read"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to inbox"),
		),
		Archive: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "archive"),
		),
		Spam: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "mark spam"),
		),
		Trash: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "trash"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "snooze"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export .eml"),
		),
		Folders: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to folder"),
		),
		Categories: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "go to category"),
		),
		Starred: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "starred view"),
		),
		Scheduled: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "scheduled view"),
		),
		Accounts: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accounts"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Mark, k.Back, k.Quit},
		{k.Search, k.Command, k.Help, k.Refresh, k.NextPage, k.PrevPage},
		{k.Compose, k.Reply, k.Star, k.Important, k.ToggleRead, k.Export},
		{k.Move, k.Archive, k.Spam, k.Trash, k.Snooze},
		{k.Folders, k.Categories, k.Starred, k.Scheduled, k.Accounts},
	}
}
