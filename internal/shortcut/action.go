// action.go defines the closed set of things a shortcut can do.
//
// Each variant carries exactly the payload its action needs, so a record can
// never hold a script for an action that ignores scripts or lack a URL for an
// action that opens one. The persisted form stays flat (action id + url +
// script) for compatibility with existing export files; see wire.go.

package shortcut

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionID is the persisted action discriminator.
type ActionID int

const (
	ActionOpenNewTab           ActionID = 1
	ActionOpenCurrentTab       ActionID = 2
	ActionJumpToTab            ActionID = 3
	ActionRunScript            ActionID = 4
	ActionOpenPrivateWindow    ActionID = 5
	ActionOpenCurrentInPrivate ActionID = 6
	ActionJumpToTabAllWindows  ActionID = 7
	ActionOpenGroup            ActionID = 9
)

var actionNames = map[ActionID]string{
	ActionOpenNewTab:           "open-new-tab",
	ActionOpenCurrentTab:       "open-current-tab",
	ActionJumpToTab:            "jump-to-tab",
	ActionRunScript:            "run-script",
	ActionOpenPrivateWindow:    "open-private-window",
	ActionOpenCurrentInPrivate: "open-current-in-private",
	ActionJumpToTabAllWindows:  "jump-to-tab-all-windows",
	ActionOpenGroup:            "open-group",
}

// ActionIDs lists the known action ids in persisted order.
func ActionIDs() []ActionID {
	return []ActionID{
		ActionOpenNewTab, ActionOpenCurrentTab, ActionJumpToTab, ActionRunScript,
		ActionOpenPrivateWindow, ActionOpenCurrentInPrivate, ActionJumpToTabAllWindows,
		ActionOpenGroup,
	}
}

// Known reports whether id is one of the defined actions.
func (id ActionID) Known() bool {
	_, ok := actionNames[id]
	return ok
}

func (id ActionID) String() string {
	if name, ok := actionNames[id]; ok {
		return name
	}
	return "action(" + strconv.Itoa(int(id)) + ")"
}

// ParseActionID accepts an action name ("jump-to-tab") or its number ("3").
func ParseActionID(s string) (ActionID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for id, name := range actionNames {
		if name == s {
			return id, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && ActionID(n).Known() {
		return ActionID(n), nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Action is the payload of a shortcut. The set of implementations is closed.
type Action interface {
	ID() ActionID
	isAction()
}

// OpenNewTab opens URL in a new tab, then runs Script in it if set.
type OpenNewTab struct {
	URL    string
	Script string
}

// OpenCurrentTab navigates the active tab to URL, then runs Script if set.
type OpenCurrentTab struct {
	URL    string
	Script string
}

// JumpToTab activates a tab in the current window whose URL starts with URL,
// opening a new tab when none exists.
type JumpToTab struct {
	URL    string
	Script string
}

// JumpToTabAllWindows is JumpToTab that also searches other windows.
type JumpToTabAllWindows struct {
	URL    string
	Script string
}

// RunScript runs Script in the active tab.
type RunScript struct {
	Script string
}

// OpenPrivateWindow opens URL in a new private window.
type OpenPrivateWindow struct {
	URL string
}

// OpenCurrentInPrivate reopens the active tab's URL in a private window.
type OpenCurrentInPrivate struct{}

// OpenGroup opens every member of the group carried by the candidate.
type OpenGroup struct{}

// UnknownAction preserves a record whose action id is not recognised so that
// loading never drops user data. Executing it is an error.
type UnknownAction struct {
	Raw    ActionID
	URL    string
	Script string
}

func (OpenNewTab) ID() ActionID           { return ActionOpenNewTab }
func (OpenCurrentTab) ID() ActionID       { return ActionOpenCurrentTab }
func (JumpToTab) ID() ActionID            { return ActionJumpToTab }
func (JumpToTabAllWindows) ID() ActionID  { return ActionJumpToTabAllWindows }
func (RunScript) ID() ActionID            { return ActionRunScript }
func (OpenPrivateWindow) ID() ActionID    { return ActionOpenPrivateWindow }
func (OpenCurrentInPrivate) ID() ActionID { return ActionOpenCurrentInPrivate }
func (OpenGroup) ID() ActionID            { return ActionOpenGroup }
func (a UnknownAction) ID() ActionID      { return a.Raw }

func (OpenNewTab) isAction()           {}
func (OpenCurrentTab) isAction()       {}
func (JumpToTab) isAction()            {}
func (JumpToTabAllWindows) isAction()  {}
func (RunScript) isAction()            {}
func (OpenPrivateWindow) isAction()    {}
func (OpenCurrentInPrivate) isAction() {}
func (OpenGroup) isAction()            {}
func (UnknownAction) isAction()        {}

// NewAction builds the variant for id from the flat persisted payload.
// Fields the variant does not use are dropped.
func NewAction(id ActionID, url, script string) Action {
	switch id {
	case ActionOpenNewTab:
		return OpenNewTab{URL: url, Script: script}
	case ActionOpenCurrentTab:
		return OpenCurrentTab{URL: url, Script: script}
	case ActionJumpToTab:
		return JumpToTab{URL: url, Script: script}
	case ActionJumpToTabAllWindows:
		return JumpToTabAllWindows{URL: url, Script: script}
	case ActionRunScript:
		return RunScript{Script: script}
	case ActionOpenPrivateWindow:
		return OpenPrivateWindow{URL: url}
	case ActionOpenCurrentInPrivate:
		return OpenCurrentInPrivate{}
	case ActionOpenGroup:
		return OpenGroup{}
	default:
		return UnknownAction{Raw: id, URL: url, Script: script}
	}
}

// ActionIDOf returns the id of a, or 0 when a is nil.
func ActionIDOf(a Action) ActionID {
	if a == nil {
		return 0
	}
	return a.ID()
}

// ActionURL returns the URL payload of a, or "" when the variant has none.
func ActionURL(a Action) string {
	switch v := a.(type) {
	case OpenNewTab:
		return v.URL
	case OpenCurrentTab:
		return v.URL
	case JumpToTab:
		return v.URL
	case JumpToTabAllWindows:
		return v.URL
	case OpenPrivateWindow:
		return v.URL
	case UnknownAction:
		return v.URL
	}
	return ""
}

// ActionScript returns the script payload of a, or "" when the variant has none.
func ActionScript(a Action) string {
	switch v := a.(type) {
	case OpenNewTab:
		return v.Script
	case OpenCurrentTab:
		return v.Script
	case JumpToTab:
		return v.Script
	case JumpToTabAllWindows:
		return v.Script
	case RunScript:
		return v.Script
	case UnknownAction:
		return v.Script
	}
	return ""
}

// NeedsURL reports whether id requires a URL payload.
func NeedsURL(id ActionID) bool {
	switch id {
	case ActionOpenNewTab, ActionOpenCurrentTab, ActionJumpToTab,
		ActionJumpToTabAllWindows, ActionOpenPrivateWindow:
		return true
	}
	return false
}

// NeedsScript reports whether id requires a script payload.
func NeedsScript(id ActionID) bool {
	return id == ActionRunScript
}
