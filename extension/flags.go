// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals keeps the names used in
// Flags().Type() definitions and GetType() calls in step.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagDryRun      = "dry-run"       // Preview without making changes
	FlagHidden      = "hidden"        // Include or set hidden shortcuts
	FlagHideOnPopup = "hide-on-popup" // Leave out of the popup list
	FlagLocal       = "local"         // Use local scope (gitignored)
	FlagLong        = "long"          // Long format output
	FlagRaw         = "raw"           // Raw output without rendering
	FlagTabGroup    = "tab-group"     // Open group members in a tab group
	FlagTree        = "tree"          // Tree view output

	// String flags

	FlagAction  = "action"  // Action name or id
	FlagFormat  = "format"  // Transfer format: json or yaml
	FlagHTTP    = "http"    // HTTP API listen address
	FlagKey     = "key"     // New shortcut key
	FlagScript  = "script"  // Script source for run-script
	FlagTag     = "tag"     // Tag filter/value
	FlagTitle   = "title"   // New title
	FlagURL     = "url"     // Target URL
	FlagAlias   = "alias"   // Alias (repeatable)
	FlagMembers = "members" // Group members (ids or keys)
	FlagUnused  = "unused"  // Age since last use

	// Integer flags

	FlagLimit     = "limit"      // Limit number of results
	FlagSortOrder = "sort-order" // Position within equal keys
)
