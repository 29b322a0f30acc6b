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

// Package report renders execution results and live progress on the console.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/filo/pkg/engine"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
)

// 🎯 Printer renders results with console output plus structured logging
type Printer struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a printer
func New(console io.Writer, zlog zerolog.Logger) *Printer {
	return &Printer{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatFileRecord formats one result line
func (p *Printer) formatFileRecord(rec engine.FileRecord, symbol rune, symbolColor color.Attribute) string {
	line := fmt.Sprintf("%s%s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, rec.Filename))
	if rec.Reason != "" {
		line += " " + color.New(color.Faint).Sprint(rec.Reason)
	} else if rec.DestinationPath != "" {
		line += " " + color.New(color.Faint).Sprint("→ "+rec.DestinationPath)
	}
	return line
}

// 📝 Result prints a full execution result: header, per-file lines, summary
func (p *Printer) Result(res engine.ExecutionResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Print rule header
	fmt.Fprintf(p.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(res.RuleName),
		color.New(color.Faint).Sprint("•"),
		p.statusText(res.Status))

	if res.FailureReason != "" {
		fmt.Fprintf(p.console, "%s%s\n",
			fmt.Sprintf("%*s", fileIndent, ""),
			color.New(color.FgRed).Sprint(res.FailureReason))
	}

	for _, rec := range res.Succeeded {
		fmt.Fprintln(p.console, p.formatFileRecord(rec, '✓', color.FgGreen))
	}
	for _, rec := range res.Skipped {
		fmt.Fprintln(p.console, p.formatFileRecord(rec, '-', color.FgYellow))
	}
	for _, rec := range res.Errors {
		fmt.Fprintln(p.console, p.formatFileRecord(rec, '✗', color.FgRed))
	}

	fmt.Fprintf(p.console, "%s%s\n",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(color.Faint).Sprintf("%d succeeded, %d skipped, %d errors",
			len(res.Succeeded), len(res.Skipped), len(res.Errors)))

	// Log to zerolog
	p.zlog.Info().
		Str("rule", res.RuleName).
		Str("status", string(res.Status)).
		Int("succeeded", len(res.Succeeded)).
		Int("skipped", len(res.Skipped)).
		Int("errors", len(res.Errors)).
		Msg("rule execution result")
}

func (p *Printer) statusText(s engine.Status) string {
	switch s {
	case engine.StatusCompleted:
		return color.New(color.FgGreen).Sprint("completed")
	case engine.StatusPartialFailure:
		return color.New(color.FgYellow).Sprint("partial failure")
	default:
		return color.New(color.FgRed).Sprint("failed")
	}
}

// 📝 Header prints the tool banner with a message
func (p *Printer) Header(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("filo")
	fmt.Fprintf(p.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	p.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (p *Printer) Success(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	p.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (p *Printer) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	p.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (p *Printer) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	p.zlog.Error().Msg(msg)
}

// 📝 Errorf logs a formatted error message
func (p *Printer) Errorf(format string, args ...interface{}) {
	p.Error(fmt.Sprintf(format, args...))
}
