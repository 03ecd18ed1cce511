// Package popup is the interactive launcher.
//
// It starts in key mode: letters and digits go to a keymatch.Matcher and an
// unambiguous key sequence executes at once. "/" switches to search mode,
// where the typed query ranks records and groups; a non-empty query with
// exactly one visible result executes without Enter. Records marked
// hideOnPopup are left out of the list but can still be reached by key.
package popup

import (
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpl-au/shortkey/internal/handler"
	"github.com/jpl-au/shortkey/internal/keymatch"
	"github.com/jpl-au/shortkey/internal/search"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
)

// Mode is the input mode.
type Mode int

const (
	ModeKey Mode = iota
	ModeSearch
)

// Source is the read side of the settings store.
type Source interface {
	Snapshot() settings.Snapshot
	Find(prefix string) []shortcut.Candidate
	Search(query string) []search.Result
	SearchGroups(query string) []search.GroupResult
}

// Executor runs a message through the launcher protocol. handler.Handler
// satisfies it.
type Executor interface {
	Handle(ctx context.Context, msg handler.Message) (handler.Response, error)
}

// executedMsg reports the outcome of running a candidate.
type executedMsg struct {
	candidate shortcut.Candidate
	err       error
}

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	src     Source
	exec    Executor
	keys    KeyMap
	styles  Styles
	matcher *keymatch.Matcher

	snap     settings.Snapshot
	tags     []settings.Tag
	mode     Mode
	input    textinput.Model
	items    []shortcut.Candidate
	selected int
	tag      string // active category filter, "" for all
	buffer   string

	executed *shortcut.Candidate
	err      error
	width    int
}

// New returns a model over src that executes through exec.
func New(ctx context.Context, src Source, exec Executor) Model {
	in := textinput.New()
	in.Placeholder = "/ to search"
	in.CharLimit = 200
	in.Prompt = "› "

	snap := src.Snapshot()
	m := Model{
		ctx:     ctx,
		src:     src,
		exec:    exec,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		matcher: keymatch.New(src),
		snap:    snap,
		tags:    snap.Tags(),
		input:   in,
		width:   80,
	}
	m.refresh()
	return m
}

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Items returns the listed candidates.
func (m Model) Items() []shortcut.Candidate { return m.items }

// Selected returns the index of the highlighted candidate, or -1.
func (m Model) Selected() int { return m.selected }

// Buffer returns the pending key sequence.
func (m Model) Buffer() string { return m.buffer }

// Tag returns the active category filter.
func (m Model) Tag() string { return m.tag }

// Executed returns the candidate that ran, if any.
func (m Model) Executed() *shortcut.Candidate { return m.executed }

// Err returns the execution error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case executedMsg:
		m.executed = &msg.candidate
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Next):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Prev):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Execute):
		if m.selected >= 0 && m.selected < len(m.items) {
			return m, m.execute(m.items[m.selected])
		}
		return m, nil
	case key.Matches(msg, m.keys.Tag):
		m.cycleTag()
		return m, nil
	}

	if m.mode == ModeSearch {
		return m.updateSearch(msg)
	}

	if key.Matches(msg, m.keys.Search) {
		m.enterSearch()
		return m, textinput.Blink
	}
	return m.updateKey(msg)
}

// updateKey feeds one keystroke to the matcher.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return m, nil
	}
	step := m.matcher.Type(msg.Runes[0])
	m.buffer = step.Buffer
	switch step.Outcome {
	case keymatch.Resolved:
		return m, m.execute(*step.Match)
	case keymatch.NoMatch:
		m.buffer = ""
	}
	return m, nil
}

// updateSearch passes the key to the input and re-runs the query.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Backspace on an empty query returns to key mode.
	if key.Matches(msg, m.keys.Back) && m.input.Value() == "" {
		m.leaveSearch()
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	q := m.input.Value()
	if q == before {
		return m, cmd
	}
	m.tag = ""
	m.refresh()
	if q != "" && len(m.items) == 1 {
		return m, m.execute(m.items[0])
	}
	return m, cmd
}

func (m *Model) enterSearch() {
	m.mode = ModeSearch
	m.matcher.Reset()
	m.buffer = ""
	m.input.Placeholder = "search"
	m.input.Focus()
}

func (m *Model) leaveSearch() {
	m.mode = ModeKey
	m.tag = ""
	m.input.Reset()
	m.input.Blur()
	m.refresh()
}

// cycleTag steps the category filter through "all" and each tag. Choosing
// a tag searches for it, as typing it would, without auto-executing.
func (m *Model) cycleTag() {
	if len(m.tags) == 0 {
		return
	}
	next := ""
	if m.tag == "" {
		next = m.tags[0].Name
	} else {
		for i, t := range m.tags {
			if t.Name == m.tag && i+1 < len(m.tags) {
				next = m.tags[i+1].Name
			}
		}
	}
	m.tag = next
	if m.mode != ModeSearch {
		m.enterSearch()
	}
	m.input.SetValue(next)
	m.refresh()
}

// refresh rebuilds the list from the current query: records first, then
// groups, skipping records hidden from the popup.
func (m *Model) refresh() {
	q := m.input.Value()
	m.items = nil
	for _, r := range m.src.Search(q) {
		if r.Record.HideOnPopup {
			continue
		}
		m.items = append(m.items, shortcut.RecordCandidate(r.Record))
	}
	for _, g := range m.src.SearchGroups(q) {
		m.items = append(m.items, shortcut.GroupCandidate(g.Group))
	}
	m.selected = -1
	if len(m.items) > 0 {
		m.selected = 0
	}
}

func (m *Model) move(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// execute returns a command that runs c through the click protocol.
func (m Model) execute(c shortcut.Candidate) tea.Cmd {
	return func() tea.Msg {
		raw, err := json.Marshal(c.ID)
		if err != nil {
			return executedMsg{candidate: c, err: err}
		}
		_, err = m.exec.Handle(m.ctx, handler.Message{Name: handler.MsgClickEvent, Value: raw})
		return executedMsg{candidate: c, err: err}
	}
}

// Options configures Run.
type Options struct {
	Input  io.Reader
	Output io.Writer
}

// Run shows the popup until a shortcut runs or the user closes it. It
// returns the executed candidate, or nil when closed without one.
func Run(ctx context.Context, src Source, exec Executor, opts Options) (*shortcut.Candidate, error) {
	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(New(ctx, src, exec), popts...).Run()
	if err != nil {
		return nil, err
	}
	m := final.(Model)
	return m.Executed(), m.Err()
}
