// Package all imports all core shortkey extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/shortkey/extension/core"
	_ "github.com/jpl-au/shortkey/extension/edit"
	_ "github.com/jpl-au/shortkey/extension/group"
	_ "github.com/jpl-au/shortkey/extension/launch"
	_ "github.com/jpl-au/shortkey/extension/prefs"
	_ "github.com/jpl-au/shortkey/extension/search"
	_ "github.com/jpl-au/shortkey/extension/shortcuts"
	_ "github.com/jpl-au/shortkey/extension/tag"
	_ "github.com/jpl-au/shortkey/extension/transfer"
)
