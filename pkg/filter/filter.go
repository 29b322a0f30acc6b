// Package filter decides whether a file matches a rule's criteria and
// extracts named captures from regex filename patterns.
package filter

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/filo/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// FileMeta is the per-file metadata a Matcher evaluates.
type FileMeta struct {
	Name     string // filename, no directory component
	Path     string // full source path
	Size     int64
	Created  time.Time
	Modified time.Time
}

// Capture is one named-group match.
type Capture struct {
	Name  string
	Value string
}

// Captures holds named-group matches in pattern order.
type Captures []Capture

// Get returns the value captured under name.
func (c Captures) Get(name string) (string, bool) {
	for _, cap := range c {
		if cap.Name == name {
			return cap.Value, true
		}
	}
	return "", false
}

// Matcher is a compiled set of Filters. Compile once per rule execution;
// Match is then cheap per file.
type Matcher struct {
	extensions []string
	glob       string
	re         *regexp.Regexp
	created    *timeRange
	modified   *timeRange
}

type timeRange struct {
	start *time.Time
	end   *time.Time
}

// Compile precompiles the filters. It refuses an entirely empty set:
// a rule with no criteria would match everything, and the boundary layer is
// expected to reject that long before execution.
func Compile(f rule.Filters) (*Matcher, error) {
	if !f.HasAtLeastOne() {
		return nil, errors.Errorf("at least one filter is required")
	}

	m := &Matcher{}

	for _, ext := range f.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m.extensions = append(m.extensions, ext)
	}

	if ff := f.Filename; ff != nil {
		switch ff.MatchKind {
		case rule.MatchGlob:
			if !doublestar.ValidatePattern(ff.Pattern) {
				return nil, errors.Errorf("invalid glob pattern %q", ff.Pattern)
			}
			m.glob = ff.Pattern
		case rule.MatchRegex:
			re, err := regexp.Compile(ff.Pattern)
			if err != nil {
				return nil, errors.Errorf("compiling regex %q: %w", ff.Pattern, err)
			}
			m.re = re
		default:
			return nil, errors.Errorf("unknown match_type %q", ff.MatchKind)
		}
	}

	var err error
	if f.CreatedAt != nil {
		if m.created, err = compileRange(*f.CreatedAt); err != nil {
			return nil, errors.Errorf("created_at: %w", err)
		}
	}
	if f.ModifiedAt != nil {
		if m.modified, err = compileRange(*f.ModifiedAt); err != nil {
			return nil, errors.Errorf("modified_at: %w", err)
		}
	}

	return m, nil
}

func compileRange(dr rule.DateTimeRange) (*timeRange, error) {
	tr := &timeRange{}
	if dr.Start != nil {
		t, err := time.Parse(time.RFC3339, *dr.Start)
		if err != nil {
			return nil, errors.Errorf("invalid datetime format %q", *dr.Start)
		}
		tr.start = &t
	}
	if dr.End != nil {
		t, err := time.Parse(time.RFC3339, *dr.End)
		if err != nil {
			return nil, errors.Errorf("invalid datetime format %q", *dr.End)
		}
		tr.end = &t
	}
	return tr, nil
}

// Match evaluates every present category against the file; any failing
// category disqualifies it. Captures are returned only for a matching regex
// filename filter.
func (m *Matcher) Match(meta FileMeta) (bool, Captures) {
	if len(m.extensions) > 0 && !m.matchExtension(meta.Name) {
		return false, nil
	}

	var captures Captures
	switch {
	case m.glob != "":
		// Glob matching is case-sensitive: "screenshot_*" does not
		// match "Screenshot_1.png".
		ok, err := doublestar.Match(m.glob, meta.Name)
		if err != nil || !ok {
			return false, nil
		}
	case m.re != nil:
		sub := m.re.FindStringSubmatch(meta.Name)
		if sub == nil {
			return false, nil
		}
		for i, name := range m.re.SubexpNames() {
			if name != "" && i < len(sub) {
				captures = append(captures, Capture{Name: name, Value: sub[i]})
			}
		}
	}

	if m.created != nil && !m.created.contains(meta.Created) {
		return false, nil
	}
	if m.modified != nil && !m.modified.contains(meta.Modified) {
		return false, nil
	}

	return true, captures
}

func (m *Matcher) matchExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, want := range m.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Bounds are inclusive on both sides.
func (tr *timeRange) contains(t time.Time) bool {
	if tr.start != nil && t.Before(*tr.start) {
		return false
	}
	if tr.end != nil && t.After(*tr.end) {
		return false
	}
	return true
}
