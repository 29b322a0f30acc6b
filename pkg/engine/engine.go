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

// Package engine orchestrates rule execution: enumerate the source folder,
// filter, resolve the destination, transfer, and aggregate results.
package engine

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filo/pkg/filter"
	"github.com/walteh/filo/pkg/fsys"
	"github.com/walteh/filo/pkg/pathtmpl"
	"github.com/walteh/filo/pkg/rule"
	"github.com/walteh/filo/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Coordinator runs rules over an injected filesystem
type Coordinator struct {
	fs   fsys.FS
	exec *transfer.Executor
}

// 🏭 New creates a coordinator
func New(fs fsys.FS) *Coordinator {
	return &Coordinator{
		fs:   fs,
		exec: transfer.New(fs),
	}
}

// Executor exposes the underlying transfer executor, which also serves undo.
func (c *Coordinator) Executor() *transfer.Executor {
	return c.exec
}

// 🏃 ExecuteRule runs one rule to completion (or cancellation) and returns
// a complete result. Per-file problems never abort the run; only a
// folder-level problem fails the rule outright.
func (c *Coordinator) ExecuteRule(ctx context.Context, r rule.Rule, sink ProgressSink) ExecutionResult {
	logger := zerolog.Ctx(ctx).With().Str("rule", r.Name).Logger()
	res := newResult(r)

	matcher, err := filter.Compile(r.Filters)
	if err != nil {
		logger.Debug().Err(err).Msg("invalid filters")
		return res.fail(errors.Errorf("invalid filters: %w", err).Error())
	}

	// Source folder must exist and be a directory.
	srcInfo, err := c.fs.Stat(r.SourceDir)
	if err != nil {
		return res.fail("Source directory does not exist")
	}
	if !srcInfo.IsDir() {
		return res.fail("Source path is not a directory")
	}

	// Static destinations are created up front; templated ones are
	// resolved and created per file.
	templated := rule.HasTemplateVars(r.DestinationDir)
	if !templated {
		if err := c.fs.MkdirAll(r.DestinationDir); err != nil {
			return res.fail(errors.Errorf("failed to create destination directory: %w", err).Error())
		}
	}

	entries, err := c.fs.ReadDir(r.SourceDir)
	if err != nil {
		return res.fail(errors.Errorf("failed to read source directory: %w", err).Error())
	}

	for _, entry := range entries {
		// Cooperative cancellation between files; an in-flight transfer
		// is never interrupted.
		if ctx.Err() != nil {
			logger.Debug().Msg("execution cancelled, returning partial result")
			break
		}

		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		srcPath := filepath.Join(r.SourceDir, filename)

		info, err := entry.Info()
		if err != nil {
			res.Errors = append(res.Errors, FileRecord{
				Filename:   filename,
				SourcePath: srcPath,
				Reason:     errors.Errorf("failed to read metadata: %w", err).Error(),
			})
			continue
		}

		meta := filter.FileMeta{
			Name:     filename,
			Path:     srcPath,
			Size:     info.Size(),
			Created:  fsys.Birthtime(info),
			Modified: info.ModTime(),
		}

		// Non-matching files are excluded silently: no record, no event.
		ok, captures := matcher.Match(meta)
		if !ok {
			continue
		}

		if sink != nil {
			sink.OnFileStart(r.Name, filename)
		}

		destDir := r.DestinationDir
		if templated {
			destDir, err = pathtmpl.Resolve(r.DestinationDir, captures)
			if err != nil {
				res.Skipped = append(res.Skipped, FileRecord{
					Filename:   filename,
					SourcePath: srcPath,
					Reason:     err.Error(),
				})
				continue
			}
			if err := c.fs.MkdirAll(destDir); err != nil {
				res.Errors = append(res.Errors, FileRecord{
					Filename:   filename,
					SourcePath: srcPath,
					Reason:     fsys.Reason(err),
				})
				continue
			}
		}

		outcome := c.exec.Execute(ctx, transfer.Request{
			Source:    srcPath,
			DestDir:   destDir,
			Filename:  filename,
			Action:    r.Action,
			Overwrite: r.Overwrite,
		})

		record := FileRecord{
			Filename:        filename,
			SourcePath:      srcPath,
			DestinationPath: outcome.Destination,
			Reason:          outcome.Reason,
		}
		switch outcome.Kind {
		case transfer.Succeeded:
			res.Succeeded = append(res.Succeeded, record)
		case transfer.Skipped:
			res.Skipped = append(res.Skipped, record)
		case transfer.Errored:
			res.Errors = append(res.Errors, record)
		}
	}

	res.Status = deriveStatus(res.Succeeded, res.Errors)
	logger.Debug().
		Int("succeeded", len(res.Succeeded)).
		Int("skipped", len(res.Skipped)).
		Int("errors", len(res.Errors)).
		Str("status", string(res.Status)).
		Msg("rule execution finished")
	return res
}

// 🔁 ExecuteAll runs the enabled rules strictly sequentially in order,
// one coordinator pass per rule. Disabled rules are skipped.
func (c *Coordinator) ExecuteAll(ctx context.Context, rules []rule.Rule, sink ProgressSink) []ExecutionResult {
	results := make([]ExecutionResult, 0, len(rules))
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		results = append(results, c.ExecuteRule(ctx, r, sink))
	}
	return results
}

// 📋 ListSourceFiles returns the filenames directly inside folder,
// lexicographically sorted, directories excluded. Used by ancillary tooling
// such as pattern testing.
func (c *Coordinator) ListSourceFiles(folder string) ([]string, error) {
	entries, err := c.fs.ReadDir(folder)
	if err != nil {
		return nil, errors.Errorf("reading source folder: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
