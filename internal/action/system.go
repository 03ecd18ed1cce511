// system.go implements Browser on the desktop's URL handler.
//
// The desktop handler can open URLs but cannot see or steer tabs, so jump
// actions always open a new tab, and scripts, private windows and tab
// groups are unsupported. A configured opener command replaces the default
// handler, e.g. "firefox --new-tab".

package action

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/browser"
)

// System opens URLs with the desktop's default handler or a configured
// opener command.
type System struct {
	opener []string
	nextID int
}

var _ Browser = (*System)(nil)

// NewSystem returns a System browser. An empty opener uses the platform
// default handler; otherwise opener is split on spaces and the URL is
// appended as the last argument.
func NewSystem(opener string) *System {
	return &System{opener: strings.Fields(opener), nextID: 1}
}

func (s *System) open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(s.opener) == 0 {
		return browser.OpenURL(url)
	}
	args := append(append([]string(nil), s.opener[1:]...), url)
	// The opener outlives the command that started it, so it is not tied
	// to ctx and runs in its own process group.
	cmd := exec.Command(s.opener[0], args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.opener[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Tabs implements Browser. The desktop exposes no tabs.
func (s *System) Tabs(context.Context, Scope) ([]Tab, error) { return nil, nil }

// ActiveTab implements Browser.
func (s *System) ActiveTab(context.Context) (Tab, error) {
	return Tab{}, fmt.Errorf("%w: active tab", ErrUnsupported)
}

// CreateTab implements Browser.
func (s *System) CreateTab(ctx context.Context, url string, _ bool) (Tab, error) {
	if err := s.open(ctx, url); err != nil {
		return Tab{}, err
	}
	t := Tab{ID: s.nextID, URL: url}
	s.nextID++
	return t, nil
}

// NavigateActive implements Browser by opening url.
func (s *System) NavigateActive(ctx context.Context, url string) (Tab, error) {
	return s.CreateTab(ctx, url, true)
}

// ActivateTab implements Browser.
func (s *System) ActivateTab(context.Context, Tab, bool) error { return nil }

// ExecuteScript implements Browser.
func (s *System) ExecuteScript(context.Context, int, string) error {
	return fmt.Errorf("%w: scripts", ErrUnsupported)
}

// OpenPrivateWindow implements Browser.
func (s *System) OpenPrivateWindow(context.Context, string) error {
	return fmt.Errorf("%w: private windows", ErrUnsupported)
}

// GroupTabs implements Browser. Tabs are opened ungrouped.
func (s *System) GroupTabs(context.Context, []int, string) error { return nil }
