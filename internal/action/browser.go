// browser.go defines the executor contract the dispatcher drives.
//
// A Browser is whatever can open and find tabs: a real browser reached over
// the key-capture socket, the desktop's default URL handler, or the
// in-memory Recorder used in tests and dry runs. Implementations that cannot
// perform an operation return ErrUnsupported.

package action

import (
	"context"
	"errors"
)

var (
	// ErrUnknownAction is returned when a candidate carries an action id
	// this program does not know. The record exists but cannot be run.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnsupported is returned by a Browser that cannot perform an operation.
	ErrUnsupported = errors.New("operation not supported by this browser")
	// ErrEmptyGroup is returned when no member of a group has a URL.
	ErrEmptyGroup = errors.New("group has no member with a URL")
	// ErrNoActiveTab is returned when an action needs the active tab and
	// there is none.
	ErrNoActiveTab = errors.New("no active tab")
)

// Tab is a browser tab.
type Tab struct {
	ID       int    `json:"id"`
	WindowID int    `json:"windowId"`
	URL      string `json:"url"`
	Active   bool   `json:"active"`
}

// Scope selects which windows Tabs lists.
type Scope int

const (
	ScopeCurrentWindow Scope = iota
	ScopeAllWindows
)

// Browser executes tab and window operations.
type Browser interface {
	// Tabs lists the tabs of the last focused window or of every window.
	Tabs(ctx context.Context, scope Scope) ([]Tab, error)
	// ActiveTab returns the active tab of the current window.
	ActiveTab(ctx context.Context) (Tab, error)
	// CreateTab opens url in a new tab.
	CreateTab(ctx context.Context, url string, active bool) (Tab, error)
	// NavigateActive loads url in the active tab.
	NavigateActive(ctx context.Context, url string) (Tab, error)
	// ActivateTab selects tab, focusing its window first when focusWindow is set.
	ActivateTab(ctx context.Context, tab Tab, focusWindow bool) error
	// ExecuteScript runs code in the tab.
	ExecuteScript(ctx context.Context, tabID int, code string) error
	// OpenPrivateWindow opens url in a new private window.
	OpenPrivateWindow(ctx context.Context, url string) error
	// GroupTabs gathers tabs into a titled tab group.
	GroupTabs(ctx context.Context, tabIDs []int, title string) error
}
