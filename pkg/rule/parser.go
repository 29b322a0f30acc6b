package rule

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Parse decodes a rule file from raw bytes. The format is determined by the
// file extension:
// - .yaml or .yml for YAML (the canonical format)
// - .json for JSON
// - .hcl for HCL
func Parse(data []byte, filename string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var f *File
	var err error
	switch ext {
	case ".yaml", ".yml":
		f, err = parseYAML(data)
	case ".json":
		f, err = parseJSON(data)
	case ".hcl":
		f, err = parseHCL(data, filename)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	for i, r := range f.Rules {
		if err := r.Validate(); err != nil {
			return nil, errors.Errorf("rule %d (%s): %w", i, r.Name, err)
		}
	}
	return f, nil
}

func parseYAML(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &f, nil
}

func parseJSON(data []byte) (*File, error) {
	var f File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &f, nil
}

// 📝 parseHCL parses the rule file from HCL
func parseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRange struct {
		Start *string `hcl:"start,optional"`
		End   *string `hcl:"end,optional"`
	}
	type hclFilters struct {
		Extensions []string `hcl:"extensions,optional"`
		Filename   *struct {
			Pattern   string `hcl:"pattern"`
			MatchType string `hcl:"match_type"`
		} `hcl:"filename,block"`
		CreatedAt  *hclRange `hcl:"created_at,block"`
		ModifiedAt *hclRange `hcl:"modified_at,block"`
	}
	type hclRule struct {
		ID             string     `hcl:"id,label"`
		Name           string     `hcl:"name"`
		Enabled        bool       `hcl:"enabled"`
		SourceDir      string     `hcl:"source_dir"`
		DestinationDir string     `hcl:"destination_dir"`
		Action         string     `hcl:"action"`
		Overwrite      bool       `hcl:"overwrite,optional"`
		Filters        hclFilters `hcl:"filters,block"`
	}
	type hclDoc struct {
		Version int       `hcl:"version"`
		Rules   []hclRule `hcl:"rule,block"`
	}

	// Decode HCL
	var doc hclDoc
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &doc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	f := &File{Version: doc.Version}
	for _, hr := range doc.Rules {
		r := Rule{
			ID:             hr.ID,
			Name:           hr.Name,
			Enabled:        hr.Enabled,
			SourceDir:      hr.SourceDir,
			DestinationDir: hr.DestinationDir,
			Action:         Action(hr.Action),
			Overwrite:      hr.Overwrite,
			Filters: Filters{
				Extensions: hr.Filters.Extensions,
			},
		}
		if hr.Filters.Filename != nil {
			r.Filters.Filename = &FilenameFilter{
				Pattern:   hr.Filters.Filename.Pattern,
				MatchKind: MatchKind(hr.Filters.Filename.MatchType),
			}
		}
		if hr.Filters.CreatedAt != nil {
			r.Filters.CreatedAt = &DateTimeRange{
				Start: hr.Filters.CreatedAt.Start,
				End:   hr.Filters.CreatedAt.End,
			}
		}
		if hr.Filters.ModifiedAt != nil {
			r.Filters.ModifiedAt = &DateTimeRange{
				Start: hr.Filters.ModifiedAt.Start,
				End:   hr.Filters.ModifiedAt.End,
			}
		}
		f.Rules = append(f.Rules, r)
	}

	return f, nil
}
