package service

import (
	"context"
	"io"

	"github.com/jpl-au/shortkey/internal/transfer"
)

// Export writes every record, hidden ones included, in format f.
func (s *Service) Export(w io.Writer, f transfer.Format) error {
	return transfer.Export(w, s.store.Snapshot().ShortcutKeys, f)
}

// Import appends the records read from r. See transfer.Import.
func (s *Service) Import(ctx context.Context, w io.Writer, r io.Reader, opts transfer.Options) (transfer.Result, error) {
	return transfer.Import(ctx, w, s.store, r, opts)
}
