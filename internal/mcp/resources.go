// resources.go implements MCP resource handlers.
//
// Resources give read-only access without a tool call, which suits loading
// context: the settings snapshot, one shortcut as markdown, or one group.
//
// Design: URIs are shortkey://settings, shortkey://shortcuts/{ref} and
// shortkey://groups/{ref}, where ref is an id or a key.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyRef indicates a resource URI without an id or key.
	ErrEmptyRef = errors.New("empty shortcut reference")
)

// parseRef extracts the reference after prefix.
func parseRef(uri, prefix string) (string, error) {
	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if rest == "" {
		return "", ErrEmptyRef
	}
	return rest, nil
}

func (h *handlers) requireService() (*service.Service, error) {
	svc := h.service()
	if svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	return svc, nil
}

func (h *handlers) readSettings(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, err := h.requireService()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(svc.Store().Snapshot(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
	}, nil
}

func (h *handlers) readShortcut(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, err := h.requireService()
	if err != nil {
		return nil, err
	}
	ref, err := parseRef(req.Params.URI, "shortkey://shortcuts/")
	if err != nil {
		return nil, err
	}
	r, ok := svc.Store().Record(ref)
	if !ok {
		return nil, fmt.Errorf("%w: record %s", service.ErrNotFound, ref)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "text/markdown", Text: format.Markdown(r)},
	}, nil
}

func (h *handlers) readGroup(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, err := h.requireService()
	if err != nil {
		return nil, err
	}
	ref, err := parseRef(req.Params.URI, "shortkey://groups/")
	if err != nil {
		return nil, err
	}
	snap := svc.Store().Snapshot()
	g, ok := snap.Group(ref)
	if !ok {
		return nil, fmt.Errorf("%w: group %s", service.ErrNotFound, ref)
	}
	data, err := json.MarshalIndent(expand(g, snap.ShortcutKeys), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
	}, nil
}
