// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transfer

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filo/pkg/fsys"
	"github.com/walteh/filo/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// ReasonDestinationExists is the skip reason recorded when the destination
// file already exists and overwrite is disabled.
const ReasonDestinationExists = "destination exists"

// 📊 OutcomeKind tags the result of a single transfer
type OutcomeKind int

const (
	Succeeded OutcomeKind = iota
	Skipped
	Errored
)

// 📄 Outcome is the result of one safe move or copy
type Outcome struct {
	Kind        OutcomeKind
	Destination string // set on success
	Reason      string // set on skip or error
}

// 📦 Request describes a single file transfer
type Request struct {
	Source    string // full path of the source file
	DestDir   string // resolved destination folder (already created)
	Filename  string // original filename, appended to DestDir
	Action    rule.Action
	Overwrite bool
}

// 🔧 Executor performs safe moves and copies over an injected filesystem
type Executor struct {
	fs fsys.FS
}

// 🏭 New creates a transfer executor
func New(fs fsys.FS) *Executor {
	return &Executor{fs: fs}
}

// 🏃 Execute runs a single transfer and classifies the result
func (e *Executor) Execute(ctx context.Context, req Request) Outcome {
	logger := zerolog.Ctx(ctx)
	dest := filepath.Join(req.DestDir, req.Filename)

	// Overwrite check happens before any bytes move.
	if !req.Overwrite && fsys.Exists(e.fs, dest) {
		logger.Debug().Str("file", req.Filename).Str("dest", dest).Msg("destination exists, skipping")
		return Outcome{Kind: Skipped, Destination: dest, Reason: ReasonDestinationExists}
	}

	var err error
	switch req.Action {
	case rule.ActionMove:
		err = e.move(ctx, req.Source, dest)
	case rule.ActionCopy:
		err = e.copyAndVerify(req.Source, dest)
	default:
		err = errors.Errorf("unknown action %q", req.Action)
	}

	if err != nil {
		logger.Debug().Str("file", req.Filename).Err(err).Msg("transfer failed")
		return Outcome{Kind: Errored, Destination: dest, Reason: fsys.Reason(err)}
	}

	logger.Debug().Str("file", req.Filename).Str("dest", dest).Str("action", string(req.Action)).Msg("transfer complete")
	return Outcome{Kind: Succeeded, Destination: dest}
}

// 🚚 move renames the file, falling back to copy-then-delete only for
// cross-device failures. Any other rename error is final: retrying a failed
// rename as a copy could leave ambiguous duplicate-file states.
func (e *Executor) move(ctx context.Context, src, dest string) error {
	err := e.fs.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !fsys.IsCrossDevice(err) {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dest", dest).Msg("cross-device rename, falling back to copy")

	if err := e.copyAndVerify(src, dest); err != nil {
		return err
	}
	if err := e.fs.Remove(src); err != nil {
		// The verified copy exists at dest; flag the residual duplicate
		// instead of hiding it.
		return errors.Errorf("removing source after cross-device copy (destination copy exists at %s): %w", dest, err)
	}
	return nil
}

// 📥 copyAndVerify copies the file and verifies the destination size matches
// the source. The source is never touched; a partial destination is removed
// best effort.
func (e *Executor) copyAndVerify(src, dest string) error {
	srcInfo, err := e.fs.Stat(src)
	if err != nil {
		return err
	}

	if err := e.copyFile(src, dest); err != nil {
		e.discard(dest)
		return err
	}

	destInfo, err := e.fs.Stat(dest)
	if err != nil {
		e.discard(dest)
		return err
	}
	if destInfo.Size() != srcInfo.Size() {
		e.discard(dest)
		return errors.Errorf("copy incomplete: expected %d bytes, got %d bytes", srcInfo.Size(), destInfo.Size())
	}
	return nil
}

func (e *Executor) copyFile(src, dest string) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := e.fs.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// discard removes a partial destination file, ignoring failures.
func (e *Executor) discard(dest string) {
	_ = e.fs.Remove(dest)
}
