package rule

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// File is the persisted rule document.
type File struct {
	Version int    `yaml:"version" json:"version"`
	Rules   []Rule `yaml:"rulesets" json:"rulesets"`
}

// CurrentVersion is the rule file format version this build writes.
const CurrentVersion = 1

// DefaultPath returns the standard location of the rule file under the user
// config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "filo", "rulesets", "filo-rules.yaml")
}

// Load reads a rule file from disk. The format is determined by the file
// extension (see Parse). A missing file is an error; callers that want an
// empty default should check existence first.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}

	f, err := Parse(data, path)
	if err != nil {
		return nil, errors.Errorf("parsing rule file %s: %w", path, err)
	}
	return f, nil
}

// Save writes the rule file as YAML, creating parent directories as needed.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Errorf("encoding rule file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating rule file directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Errorf("writing rule file: %w", err)
	}
	return nil
}

// FindByID returns the rule with the given id.
func (f *File) FindByID(id string) (Rule, bool) {
	for _, r := range f.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// FindByName returns the first rule with the given display name.
func (f *File) FindByName(name string) (Rule, bool) {
	for _, r := range f.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Enabled returns the enabled rules in file order.
func (f *File) Enabled() []Rule {
	var out []Rule
	for _, r := range f.Rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// Put validates the rule, assigns a fresh uuid when the id is empty, and
// inserts or replaces it by id.
func (f *File) Put(r Rule) error {
	if err := r.Validate(); err != nil {
		return errors.Errorf("validating rule: %w", err)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	for i := range f.Rules {
		if f.Rules[i].ID == r.ID {
			f.Rules[i] = r
			return nil
		}
	}
	f.Rules = append(f.Rules, r)
	return nil
}

// Delete removes the rule with the given id. Unknown ids are a no-op.
func (f *File) Delete(id string) {
	out := f.Rules[:0]
	for _, r := range f.Rules {
		if r.ID != id {
			out = append(out, r)
		}
	}
	f.Rules = out
}

// Reorder rearranges the rules to follow the given id order. Ids not present
// in the file are ignored; rules missing from the list are dropped, matching
// the drag-reorder semantics of the boundary layer.
func (f *File) Reorder(ids []string) {
	reordered := make([]Rule, 0, len(ids))
	for _, id := range ids {
		if r, ok := f.FindByID(id); ok {
			reordered = append(reordered, r)
		}
	}
	f.Rules = reordered
}
