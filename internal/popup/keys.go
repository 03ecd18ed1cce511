package popup

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the popup's navigation bindings. Letters and digits are not
// bindings: in key mode they feed the matcher, in search mode the input.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Execute key.Binding
	Search  key.Binding
	Back    key.Binding
	Tag     key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Execute: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "keys")),
		Tag:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next tag")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
	}
}
