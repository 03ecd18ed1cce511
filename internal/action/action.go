// Package action executes resolved shortcuts against a Browser.
//
// The dispatcher is the only place that interprets shortcut.Action
// variants. Every variant is handled explicitly; an UnknownAction (a stored
// record with an action id this build does not know) fails loudly rather
// than doing nothing for a shortcut the user believes is live.
package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/shortkey/internal/shortcut"
)

// DefaultGroupTitle names a tab group whose shortcut group has no title.
const DefaultGroupTitle = "まとめて開く"

// Records resolves group member ids. settings.Store implements it.
type Records interface {
	Record(ref string) (shortcut.Record, bool)
}

// Dispatcher runs candidates.
type Dispatcher struct {
	browser Browser
	records Records
}

// New returns a Dispatcher driving b and resolving group members from r.
func New(b Browser, r Records) *Dispatcher {
	return &Dispatcher{browser: b, records: r}
}

// Dispatch performs the candidate's action.
func (d *Dispatcher) Dispatch(ctx context.Context, c shortcut.Candidate) error {
	switch a := c.Action.(type) {
	case shortcut.OpenNewTab:
		tab, err := d.browser.CreateTab(ctx, a.URL, true)
		if err != nil {
			return fmt.Errorf("open %s: %w", a.URL, err)
		}
		return d.runScript(ctx, tab.ID, a.Script)

	case shortcut.OpenCurrentTab:
		tab, err := d.browser.NavigateActive(ctx, a.URL)
		if err != nil {
			return fmt.Errorf("navigate to %s: %w", a.URL, err)
		}
		return d.runScript(ctx, tab.ID, a.Script)

	case shortcut.JumpToTab:
		return d.jump(ctx, a.URL, a.Script, false)

	case shortcut.JumpToTabAllWindows:
		return d.jump(ctx, a.URL, a.Script, true)

	case shortcut.RunScript:
		tab, err := d.browser.ActiveTab(ctx)
		if err != nil {
			return err
		}
		return d.runScript(ctx, tab.ID, a.Script)

	case shortcut.OpenPrivateWindow:
		return d.browser.OpenPrivateWindow(ctx, a.URL)

	case shortcut.OpenCurrentInPrivate:
		tab, err := d.browser.ActiveTab(ctx)
		if err != nil {
			return err
		}
		return d.browser.OpenPrivateWindow(ctx, tab.URL)

	case shortcut.OpenGroup:
		if c.Group == nil {
			return fmt.Errorf("%w: candidate %q carries no group", ErrEmptyGroup, c.Key)
		}
		return d.openGroup(ctx, *c.Group)

	case shortcut.UnknownAction:
		return fmt.Errorf("%w: id %d on %q", ErrUnknownAction, a.Raw, c.Key)

	default:
		return fmt.Errorf("%w: %T on %q", ErrUnknownAction, c.Action, c.Key)
	}
}

// jump activates the first tab whose URL starts with url, opening a new tab
// when there is none.
func (d *Dispatcher) jump(ctx context.Context, url, script string, allWindows bool) error {
	tab, other, err := d.findTab(ctx, url, allWindows)
	if err != nil {
		return err
	}
	if tab == nil {
		created, err := d.browser.CreateTab(ctx, url, true)
		if err != nil {
			return fmt.Errorf("open %s: %w", url, err)
		}
		return d.runScript(ctx, created.ID, script)
	}
	if err := d.browser.ActivateTab(ctx, *tab, other); err != nil {
		return fmt.Errorf("activate tab %d: %w", tab.ID, err)
	}
	return d.runScript(ctx, tab.ID, script)
}

// findTab looks in the current window first and, when allWindows is set,
// in every window second. other reports a match outside the current window.
func (d *Dispatcher) findTab(ctx context.Context, url string, allWindows bool) (tab *Tab, other bool, err error) {
	tabs, err := d.browser.Tabs(ctx, ScopeCurrentWindow)
	if err != nil {
		return nil, false, fmt.Errorf("list tabs: %w", err)
	}
	if t, ok := firstWithPrefix(tabs, url); ok {
		return &t, false, nil
	}
	if !allWindows {
		return nil, false, nil
	}

	tabs, err = d.browser.Tabs(ctx, ScopeAllWindows)
	if err != nil {
		return nil, false, fmt.Errorf("list tabs: %w", err)
	}
	if t, ok := firstWithPrefix(tabs, url); ok {
		return &t, true, nil
	}
	return nil, false, nil
}

func firstWithPrefix(tabs []Tab, url string) (Tab, bool) {
	for _, t := range tabs {
		if strings.HasPrefix(t.URL, url) {
			return t, true
		}
	}
	return Tab{}, false
}

// GroupURLs returns the URLs of g's members in member order, skipping
// dangling ids and members without a URL.
func (d *Dispatcher) GroupURLs(g shortcut.Group) []string {
	var urls []string
	for _, id := range g.ShortcutKeyIDs {
		r, ok := d.records.Record(id)
		if !ok || r.ID != id {
			continue
		}
		if u := strings.TrimSpace(r.URL()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (d *Dispatcher) openGroup(ctx context.Context, g shortcut.Group) error {
	urls := d.GroupURLs(g)
	if len(urls) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyGroup, g.Key)
	}

	if !g.OpenInTabGroup {
		for _, u := range urls {
			if _, err := d.browser.CreateTab(ctx, u, true); err != nil {
				return fmt.Errorf("open %s: %w", u, err)
			}
		}
		return nil
	}

	var ids []int
	for _, u := range urls {
		tab, err := d.browser.CreateTab(ctx, u, false)
		if err != nil {
			return fmt.Errorf("open %s: %w", u, err)
		}
		ids = append(ids, tab.ID)
	}
	title := g.Title
	if title == "" {
		title = DefaultGroupTitle
	}
	if err := d.browser.GroupTabs(ctx, ids, title); err != nil {
		return fmt.Errorf("group tabs: %w", err)
	}
	return d.browser.ActivateTab(ctx, Tab{ID: ids[0]}, false)
}

func (d *Dispatcher) runScript(ctx context.Context, tabID int, script string) error {
	code := PrepareScript(script)
	if code == "" {
		return nil
	}
	if err := d.browser.ExecuteScript(ctx, tabID, code); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}
