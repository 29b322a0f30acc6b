// Package pathtmpl expands destination templates like "D:/sorted/{label}"
// using named captures extracted from a filename.
package pathtmpl

import (
	"regexp"
	"strings"

	"github.com/walteh/filo/pkg/filter"
	"gitlab.com/tozd/go/errors"
)

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// ErrUnresolved marks a soft resolution failure: the file is skipped, the
// run continues.
var ErrUnresolved = errors.Base("template unresolved")

// HasVars reports whether template contains a {identifier} placeholder.
func HasVars(template string) bool {
	return placeholderRe.MatchString(template)
}

// sanitizer rewrites filesystem-reserved characters inside captured values,
// so a capture can never escape the destination folder or produce an
// invalid path.
var sanitizer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Sanitize replaces filesystem-reserved characters with underscores.
func Sanitize(value string) string {
	return sanitizer.Replace(value)
}

// Resolve expands every placeholder in template from captures. A template
// without placeholders is returned verbatim. Resolution fails with
// ErrUnresolved when a placeholder has no corresponding capture or the
// captured value is empty.
func Resolve(template string, captures filter.Captures) (string, error) {
	var resolveErr error
	resolved := placeholderRe.ReplaceAllStringFunc(template, func(placeholder string) string {
		name := placeholder[1 : len(placeholder)-1]
		value, ok := captures.Get(name)
		if !ok {
			resolveErr = errors.Errorf("%w: no capture for {%s}", ErrUnresolved, name)
			return placeholder
		}
		if value == "" {
			resolveErr = errors.Errorf("%w: capture {%s} is empty", ErrUnresolved, name)
			return placeholder
		}
		return Sanitize(value)
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return resolved, nil
}
