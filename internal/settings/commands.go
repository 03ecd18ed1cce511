package settings

import "context"

// CommandSource describes the keybinding that opens the launcher. The
// description is for display only.
type CommandSource interface {
	StartupCommand(ctx context.Context) (string, error)
}

// StaticCommand is a CommandSource returning a fixed description.
type StaticCommand string

// StartupCommand implements CommandSource.
func (c StaticCommand) StartupCommand(context.Context) (string, error) {
	return string(c), nil
}
