package transfer

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filo/pkg/fsys"
	"gitlab.com/tozd/go/errors"
)

// UndoPair records where a moved file came from and where it is now. Only
// records produced by a move action are valid here; the boundary layer must
// not offer undo for copy results.
type UndoPair struct {
	Source      string `yaml:"source" json:"source"`           // original location to restore
	Destination string `yaml:"destination" json:"destination"` // where the file currently is
}

// Undo moves the file at destination back to source, using the same
// rename-then-cross-device-fallback primitive as a forward move.
func (e *Executor) Undo(ctx context.Context, source, destination string) error {
	logger := zerolog.Ctx(ctx)

	if !fsys.Exists(e.fs, destination) {
		return errors.Errorf("file no longer exists at destination %s", destination)
	}
	// Never overwrite whatever now occupies the original location.
	if fsys.Exists(e.fs, source) {
		return errors.Errorf("file already exists at original location %s", source)
	}

	if err := e.fs.MkdirAll(filepath.Dir(source)); err != nil {
		return errors.Errorf("creating original directory: %w", err)
	}

	if err := e.move(ctx, destination, source); err != nil {
		return errors.Errorf("%s", fsys.Reason(err))
	}

	logger.Debug().Str("from", destination).Str("to", source).Msg("undo complete")
	return nil
}

// UndoAll processes pairs independently and sequentially. One failure does
// not stop the remaining pairs; the returned slice has one entry per pair,
// nil on success.
func (e *Executor) UndoAll(ctx context.Context, pairs []UndoPair) []error {
	results := make([]error, len(pairs))
	for i, p := range pairs {
		results[i] = e.Undo(ctx, p.Source, p.Destination)
	}
	return results
}
