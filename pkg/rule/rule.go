// Package rule defines the rule model: what to match and where matched
// files should go.
package rule

import (
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// Action determines what happens to a matched file.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
)

// MatchKind selects how a filename pattern is interpreted.
type MatchKind string

const (
	MatchGlob  MatchKind = "glob"
	MatchRegex MatchKind = "regex"
)

// FilenameFilter matches the whole filename against a pattern.
type FilenameFilter struct {
	Pattern   string    `yaml:"pattern" json:"pattern"`
	MatchKind MatchKind `yaml:"match_type" json:"match_type"`
}

// DateTimeRange is an inclusive RFC 3339 time window. Either bound may be
// absent, leaving that side open.
type DateTimeRange struct {
	Start *string `yaml:"start" json:"start"`
	End   *string `yaml:"end" json:"end"`
}

// Filters holds the matching criteria of a rule. Present categories combine
// with AND; an absent category imposes no constraint.
type Filters struct {
	Extensions []string        `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Filename   *FilenameFilter `yaml:"filename,omitempty" json:"filename,omitempty"`
	CreatedAt  *DateTimeRange  `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	ModifiedAt *DateTimeRange  `yaml:"modified_at,omitempty" json:"modified_at,omitempty"`
}

// HasAtLeastOne reports whether any filter category is non-empty.
func (f Filters) HasAtLeastOne() bool {
	return len(f.Extensions) > 0 || f.Filename != nil || f.CreatedAt != nil || f.ModifiedAt != nil
}

// Rule classifies files in a source folder and relocates the matches.
type Rule struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Enabled        bool    `yaml:"enabled" json:"enabled"`
	SourceDir      string  `yaml:"source_dir" json:"source_dir"`
	DestinationDir string  `yaml:"destination_dir" json:"destination_dir"`
	Action         Action  `yaml:"action" json:"action"`
	Overwrite      bool    `yaml:"overwrite" json:"overwrite"`
	Filters        Filters `yaml:"filters" json:"filters"`
}

// HasTemplateVars reports whether s contains a {identifier} placeholder.
func HasTemplateVars(s string) bool {
	open := strings.IndexByte(s, '{')
	if open < 0 {
		return false
	}
	return strings.IndexByte(s[open:], '}') > 0
}

// Validate checks the structural invariants of a rule. It does not touch the
// filesystem; path existence is checked at execution time.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Errorf("name is required")
	}
	if strings.TrimSpace(r.SourceDir) == "" {
		return errors.Errorf("source_dir is required")
	}
	if strings.TrimSpace(r.DestinationDir) == "" {
		return errors.Errorf("destination_dir is required")
	}
	switch r.Action {
	case ActionMove, ActionCopy:
	default:
		return errors.Errorf("unknown action %q", r.Action)
	}
	if !r.Filters.HasAtLeastOne() {
		return errors.Errorf("at least one filter is required")
	}
	if f := r.Filters.Filename; f != nil {
		switch f.MatchKind {
		case MatchGlob, MatchRegex:
		default:
			return errors.Errorf("unknown match_type %q", f.MatchKind)
		}
	}

	// Template destinations need named captures, which only a regex
	// filename filter can supply.
	if HasTemplateVars(r.DestinationDir) {
		f := r.Filters.Filename
		if f == nil || f.MatchKind != MatchRegex {
			return errors.Errorf("destination_dir contains template variables but filename filter is not regex")
		}
	}

	if r.Filters.CreatedAt != nil {
		if err := validateDateTimeRange(*r.Filters.CreatedAt); err != nil {
			return errors.Errorf("created_at: %w", err)
		}
	}
	if r.Filters.ModifiedAt != nil {
		if err := validateDateTimeRange(*r.Filters.ModifiedAt); err != nil {
			return errors.Errorf("modified_at: %w", err)
		}
	}

	return nil
}

func validateDateTimeRange(dr DateTimeRange) error {
	if dr.Start != nil {
		if _, err := time.Parse(time.RFC3339, *dr.Start); err != nil {
			return errors.Errorf("invalid datetime format %q", *dr.Start)
		}
	}
	if dr.End != nil {
		if _, err := time.Parse(time.RFC3339, *dr.End); err != nil {
			return errors.Errorf("invalid datetime format %q", *dr.End)
		}
	}
	return nil
}
