package action

import (
	"context"
	"fmt"
	"sync"
)

// Call is one operation performed on a Recorder.
type Call struct {
	Op     string `json:"op"`
	URL    string `json:"url,omitempty"`
	TabID  int    `json:"tabId,omitempty"`
	Script string `json:"script,omitempty"`
	Title  string `json:"title,omitempty"`
	IDs    []int  `json:"ids,omitempty"`
	Focus  bool   `json:"focus,omitempty"`
}

// Recorder is an in-memory Browser. It keeps a tab list so jump actions
// can find tabs, and records every operation for inspection. It backs
// dry runs and tests.
type Recorder struct {
	mu     sync.Mutex
	window int
	tabs   []Tab
	nextID int
	calls  []Call
}

var _ Browser = (*Recorder)(nil)

// NewRecorder returns a Recorder whose current window is window and which
// already holds tabs.
func NewRecorder(window int, tabs ...Tab) *Recorder {
	r := &Recorder{window: window, tabs: append([]Tab(nil), tabs...), nextID: 1}
	for _, t := range tabs {
		r.nextID = max(r.nextID, t.ID+1)
	}
	return r
}

// Calls returns the operations performed so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

func (r *Recorder) record(c Call) {
	r.calls = append(r.calls, c)
}

// Tabs implements Browser.
func (r *Recorder) Tabs(_ context.Context, scope Scope) ([]Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Tab
	for _, t := range r.tabs {
		if scope == ScopeAllWindows || t.WindowID == r.window {
			out = append(out, t)
		}
	}
	return out, nil
}

// ActiveTab implements Browser.
func (r *Recorder) ActiveTab(context.Context) (Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tabs {
		if t.Active && t.WindowID == r.window {
			return t, nil
		}
	}
	return Tab{}, ErrNoActiveTab
}

// CreateTab implements Browser.
func (r *Recorder) CreateTab(_ context.Context, url string, active bool) (Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := Tab{ID: r.nextID, WindowID: r.window, URL: url}
	r.nextID++
	r.tabs = append(r.tabs, t)
	if active {
		r.activate(t.ID)
	}
	r.record(Call{Op: "create", URL: url, TabID: t.ID})
	return t, nil
}

// NavigateActive implements Browser.
func (r *Recorder) NavigateActive(_ context.Context, url string) (Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tabs {
		if t.Active && t.WindowID == r.window {
			r.tabs[i].URL = url
			r.record(Call{Op: "navigate", URL: url, TabID: t.ID})
			return r.tabs[i], nil
		}
	}
	return Tab{}, ErrNoActiveTab
}

// ActivateTab implements Browser.
func (r *Recorder) ActivateTab(_ context.Context, tab Tab, focusWindow bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if focusWindow {
		r.window = tab.WindowID
	}
	if !r.activate(tab.ID) {
		return fmt.Errorf("no tab %d", tab.ID)
	}
	r.record(Call{Op: "activate", TabID: tab.ID, Focus: focusWindow})
	return nil
}

// ExecuteScript implements Browser.
func (r *Recorder) ExecuteScript(_ context.Context, tabID int, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "script", TabID: tabID, Script: code})
	return nil
}

// OpenPrivateWindow implements Browser.
func (r *Recorder) OpenPrivateWindow(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "private", URL: url})
	return nil
}

// GroupTabs implements Browser.
func (r *Recorder) GroupTabs(_ context.Context, ids []int, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "group", IDs: append([]int(nil), ids...), Title: title})
	return nil
}

// activate marks id active and every other tab in its window inactive.
func (r *Recorder) activate(id int) bool {
	window := -1
	for _, t := range r.tabs {
		if t.ID == id {
			window = t.WindowID
		}
	}
	if window < 0 {
		return false
	}
	for i := range r.tabs {
		if r.tabs[i].WindowID == window {
			r.tabs[i].Active = r.tabs[i].ID == id
		}
	}
	return true
}
