// context.go defines the Context interface for extension access to shortkey
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions: they reach
// the shared service and configuration without opening their own.
//
// Design: Extensions receive Context during Init(), not at construction, to
// support the two-phase initialisation pattern where extensions register
// before the data directory is opened.

package extension

import (
	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/service"
)

// Context provides extensions controlled access to shortkey internals.
type Context interface {
	// Service returns the shared service owning the settings store.
	Service() *service.Service

	// Config returns user configuration.
	Config() *config.Config
}

type extContext struct {
	svc *service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc *service.Service, cfg *config.Config) Context {
	return &extContext{svc: svc, cfg: cfg}
}

func (c *extContext) Service() *service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }
