package rule_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filo/pkg/rule"
)

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filo-rules.yaml")

	f := &rule.File{
		Version: rule.CurrentVersion,
		Rules:   []rule.Rule{sampleRule()},
	}
	require.NoError(t, f.Save(path))

	loaded, err := rule.Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "rules.yaml")

	f := &rule.File{Version: 1, Rules: []rule.Rule{sampleRule()}}
	require.NoError(t, f.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestParseYAML(t *testing.T) {
	yaml := `
version: 1
rulesets:
  - id: "550e8400-e29b-41d4-a716-446655440000"
    name: "sort images"
    enabled: true
    source_dir: "/home/user/Downloads"
    destination_dir: "/home/user/Pictures/sorted"
    action: move
    overwrite: false
    filters:
      extensions:
        - ".jpg"
        - ".png"
        - ".gif"
      filename:
        pattern: "screenshot_*"
        match_type: glob
      created_at:
        start: "2025-01-01T00:00:00+09:00"
        end: null
      modified_at: null
`
	f, err := rule.Parse([]byte(yaml), "rules.yaml")
	require.NoError(t, err)
	require.Len(t, f.Rules, 1)

	r := f.Rules[0]
	assert.Equal(t, "sort images", r.Name)
	assert.Equal(t, rule.ActionMove, r.Action)
	assert.False(t, r.Overwrite)
	assert.Equal(t, []string{".jpg", ".png", ".gif"}, r.Filters.Extensions)
	require.NotNil(t, r.Filters.Filename)
	assert.Equal(t, rule.MatchGlob, r.Filters.Filename.MatchKind)
	require.NotNil(t, r.Filters.CreatedAt)
	assert.Nil(t, r.Filters.CreatedAt.End)
	assert.Nil(t, r.Filters.ModifiedAt)
}

func TestParseYAMLUnknownFieldRejected(t *testing.T) {
	yaml := `
version: 1
rulesets:
  - id: "x"
    name: "y"
    bogus_field: true
`
	_, err := rule.Parse([]byte(yaml), "rules.yaml")
	require.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	data := `{
  "version": 1,
  "rulesets": [
    {
      "id": "json-id",
      "name": "logs",
      "enabled": true,
      "source_dir": "/var/tmp",
      "destination_dir": "/var/archive",
      "action": "copy",
      "overwrite": true,
      "filters": {"extensions": [".log"]}
    }
  ]
}`
	f, err := rule.Parse([]byte(data), "rules.json")
	require.NoError(t, err)
	require.Len(t, f.Rules, 1)
	assert.Equal(t, rule.ActionCopy, f.Rules[0].Action)
	assert.True(t, f.Rules[0].Overwrite)
}

func TestParseHCL(t *testing.T) {
	data := `
version = 1

rule "hcl-id" {
  name            = "archive zips"
  enabled         = true
  source_dir      = "/inbox"
  destination_dir = "/sorted/{label}"
  action          = "move"

  filters {
    extensions = [".zip"]

    filename {
      pattern    = "^(?P<label>\\d+)_.+"
      match_type = "regex"
    }

    modified_at {
      start = "2025-01-01T00:00:00Z"
    }
  }
}
`
	f, err := rule.Parse([]byte(data), "rules.hcl")
	require.NoError(t, err)
	require.Len(t, f.Rules, 1)

	r := f.Rules[0]
	assert.Equal(t, "hcl-id", r.ID)
	assert.Equal(t, "archive zips", r.Name)
	assert.Equal(t, rule.ActionMove, r.Action)
	require.NotNil(t, r.Filters.Filename)
	assert.Equal(t, rule.MatchRegex, r.Filters.Filename.MatchKind)
	require.NotNil(t, r.Filters.ModifiedAt)
	require.NotNil(t, r.Filters.ModifiedAt.Start)
	assert.Nil(t, r.Filters.ModifiedAt.End)
}

func TestParseRejectsInvalidRule(t *testing.T) {
	yaml := `
version: 1
rulesets:
  - id: "x"
    name: "no filters"
    enabled: true
    source_dir: "/a"
    destination_dir: "/b"
    action: move
    overwrite: false
    filters: {}
`
	_, err := rule.Parse([]byte(yaml), "rules.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one filter is required")
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := rule.Parse([]byte("version = 1"), "rules.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestPutAssignsID(t *testing.T) {
	f := &rule.File{Version: 1}

	r := sampleRule()
	r.ID = ""
	require.NoError(t, f.Put(r))

	require.Len(t, f.Rules, 1)
	assert.NotEmpty(t, f.Rules[0].ID)
}

func TestPutReplacesByID(t *testing.T) {
	f := &rule.File{Version: 1, Rules: []rule.Rule{sampleRule()}}

	updated := sampleRule()
	updated.Name = "renamed"
	require.NoError(t, f.Put(updated))

	require.Len(t, f.Rules, 1)
	assert.Equal(t, "renamed", f.Rules[0].Name)
}

func TestPutRejectsInvalid(t *testing.T) {
	f := &rule.File{Version: 1}

	r := sampleRule()
	r.Filters = rule.Filters{}
	require.Error(t, f.Put(r))
	assert.Empty(t, f.Rules)
}

func TestDeleteAndReorder(t *testing.T) {
	a, b, c := sampleRule(), sampleRule(), sampleRule()
	a.ID, b.ID, c.ID = "a", "b", "c"
	f := &rule.File{Version: 1, Rules: []rule.Rule{a, b, c}}

	f.Delete("b")
	require.Len(t, f.Rules, 2)

	f.Reorder([]string{"c", "a", "ghost"})
	require.Len(t, f.Rules, 2)
	assert.Equal(t, "c", f.Rules[0].ID)
	assert.Equal(t, "a", f.Rules[1].ID)
}

func TestEnabled(t *testing.T) {
	a, b := sampleRule(), sampleRule()
	a.ID, b.ID = "a", "b"
	b.Enabled = false
	f := &rule.File{Version: 1, Rules: []rule.Rule{a, b}}

	enabled := f.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "a", enabled[0].ID)
}

func TestFindByIDAndName(t *testing.T) {
	f := &rule.File{Version: 1, Rules: []rule.Rule{sampleRule()}}

	_, ok := f.FindByID("550e8400-e29b-41d4-a716-446655440000")
	assert.True(t, ok)
	_, ok = f.FindByID("missing")
	assert.False(t, ok)

	_, ok = f.FindByName("sort screenshots")
	assert.True(t, ok)
	_, ok = f.FindByName("missing")
	assert.False(t, ok)
}
