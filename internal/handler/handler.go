// Package handler implements the launcher's message protocol.
//
// A surface (the popup, a WebSocket client, an HTTP caller) sends named
// messages and gets back a result telling it whether to keep the session
// open ("continue") or close it ("finish"). Each Handler owns one key
// matcher, so each session gets its own keystroke buffer.
//
// Usage counting is fired without waiting, as the caller has usually closed
// by the time the write completes; Wait drains those writes on shutdown.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jpl-au/shortkey/internal/action"
	"github.com/jpl-au/shortkey/internal/keymatch"
	"github.com/jpl-au/shortkey/internal/search"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
)

// Message names.
const (
	MsgStartup           = "startup"
	MsgKeyEvent          = "key_event"
	MsgClickEvent        = "click_event"
	MsgIncrementUseCount = "increment_use_count"
	MsgSearch            = "search"
)

// Results.
const (
	ResultContinue = "continue"
	ResultFinish   = "finish"
)

var (
	// ErrUnknownMessage is returned for a message name outside the protocol.
	ErrUnknownMessage = errors.New("unknown message")
	// ErrBadValue is returned when a message value cannot be decoded.
	ErrBadValue = errors.New("invalid message value")
)

// Message is one request from a surface.
type Message struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// KeyEvent is the value of a key_event message.
type KeyEvent struct {
	Code string `json:"code"`
	Key  string `json:"key"`
	Ctrl bool   `json:"ctrlKey,omitempty"`
	Alt  bool   `json:"altKey,omitempty"`
	Meta bool   `json:"metaKey,omitempty"`
}

// Response answers a Message.
type Response struct {
	Result        string               `json:"result"`
	Settings      *settings.Snapshot   `json:"settings,omitempty"`
	ShortcutKeys  []shortcut.Candidate `json:"shortcutKeys,omitempty"`
	SearchResults []search.Result      `json:"searchResults,omitempty"`
	Buffer        string               `json:"buffer,omitempty"`
	Executed      *shortcut.Candidate  `json:"executed,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// Handler serves one session.
type Handler struct {
	store    *settings.Store
	dispatch *action.Dispatcher
	matcher  *keymatch.Matcher
	log      *slog.Logger

	mu sync.Mutex // keystrokes are processed one at a time, in order
	wg sync.WaitGroup
}

// New returns a Handler reading from store and executing through d.
func New(store *settings.Store, d *action.Dispatcher, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, dispatch: d, matcher: keymatch.New(store), log: log}
}

// Handle processes one message. Errors from executing an action are
// returned alongside a finish response carrying the message.
func (h *Handler) Handle(ctx context.Context, msg Message) (Response, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch msg.Name {
	case MsgStartup:
		h.matcher.Reset()
		snap := h.store.Snapshot()
		return Response{Result: ResultContinue, Settings: &snap}, nil

	case MsgKeyEvent:
		var ev KeyEvent
		if err := decode(msg.Value, &ev); err != nil {
			return Response{Result: ResultContinue, Error: err.Error()}, err
		}
		return h.key(ctx, ev)

	case MsgClickEvent:
		var ref string
		if err := decode(msg.Value, &ref); err != nil {
			return Response{Result: ResultFinish, Error: err.Error()}, err
		}
		c, ok := h.candidate(ref)
		if !ok {
			err := fmt.Errorf("%w: no shortcut %q", ErrBadValue, ref)
			return Response{Result: ResultFinish, Error: err.Error()}, err
		}
		return h.execute(ctx, c)

	case MsgIncrementUseCount:
		var id string
		if err := decode(msg.Value, &id); err != nil {
			return Response{Result: ResultContinue, Error: err.Error()}, err
		}
		h.countUse(ctx, id)
		return Response{Result: ResultContinue}, nil

	case MsgSearch:
		var query string
		if err := decode(msg.Value, &query); err != nil {
			return Response{Result: ResultContinue, Error: err.Error()}, err
		}
		return Response{Result: ResultContinue, SearchResults: h.store.Search(query)}, nil
	}

	err := fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Name)
	return Response{Result: ResultContinue, Error: err.Error()}, err
}

// Wait blocks until every fired usage write has finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func (h *Handler) key(ctx context.Context, ev KeyEvent) (Response, error) {
	step := h.matcher.Press(keymatch.KeyEvent{Code: ev.Code, Key: ev.Key, Ctrl: ev.Ctrl, Alt: ev.Alt, Meta: ev.Meta})
	switch step.Outcome {
	case keymatch.Pending:
		return Response{Result: ResultContinue, ShortcutKeys: step.Candidates, Buffer: step.Buffer}, nil
	case keymatch.Resolved:
		return h.execute(ctx, *step.Match)
	case keymatch.NoMatch:
		return Response{Result: ResultFinish}, nil
	default:
		return Response{Result: ResultContinue, Buffer: step.Buffer}, nil
	}
}

func (h *Handler) execute(ctx context.Context, c shortcut.Candidate) (Response, error) {
	resp := Response{Result: ResultFinish, Executed: &c}
	if err := h.dispatch.Dispatch(ctx, c); err != nil {
		h.log.Error("executing shortcut", "key", c.Key, "error", err)
		resp.Error = err.Error()
		return resp, err
	}
	if !c.IsGroup() {
		h.countUse(ctx, c.ID)
	}
	return resp, nil
}

// candidate resolves a clicked id (or key) to a record or group.
func (h *Handler) candidate(ref string) (shortcut.Candidate, bool) {
	if r, ok := h.store.Record(ref); ok {
		return shortcut.RecordCandidate(r), true
	}
	if g, ok := h.store.Group(ref); ok {
		return shortcut.GroupCandidate(g), true
	}
	return shortcut.Candidate{}, false
}

func (h *Handler) countUse(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	h.wg.Go(func() {
		if err := h.store.IncrementUseCount(ctx, id); err != nil {
			h.log.Warn("recording shortcut use", "id", id, "error", err)
		}
	})
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing value", ErrBadValue)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadValue, err)
	}
	return nil
}
