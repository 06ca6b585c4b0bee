package targets

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/launchenv/internal/ctxlog"
	"github.com/vk/launchenv/internal/dartdefine"
)

// Loader parses targets files written in HCL.
type Loader struct{}

// NewLoader creates a new targets file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode the top-level blocks of a targets file.
type fileRoot struct {
	Targets []*targetBlock `hcl:"target,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type targetBlock struct {
	Name    string        `hcl:"name,label"`
	Program string        `hcl:"program,optional"`
	EnvFile string        `hcl:"env_file,optional"`
	Defines *definesBlock `hcl:"defines,block"`
}

// definesBlock keeps the raw body so attribute names stay free-form.
type definesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Load parses the targets file at path and translates its blocks into the
// Target model.
func (l *Loader) Load(ctx context.Context, path string) ([]Target, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Targets loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse targets file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode targets file %s: %w", path, diags)
	}

	list := make([]Target, 0, len(root.Targets))
	for _, block := range root.Targets {
		t := Target{Name: block.Name, Program: block.Program, EnvFile: block.EnvFile}
		if block.Defines != nil {
			defines, err := decodeDefines(block.Defines.Body)
			if err != nil {
				return nil, fmt.Errorf("target %q: %w", block.Name, err)
			}
			t.Defines = defines
		}
		list = append(list, t)
	}

	logger.Debug("Targets loaded.", "count", len(list))
	return list, nil
}

// decodeDefines evaluates the attributes of a defines block into pairs,
// ordered by source position. JustAttributes returns a map, so the order
// has to be recovered from each attribute's range.
func decodeDefines(body hcl.Body) ([]dartdefine.Pair, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read defines block: %w", diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	pairs := make([]dartdefine.Pair, 0, len(ordered))
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate define %q: %w", attr.Name, diags)
		}
		strVal, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("define %q is not convertible to string: %w", attr.Name, err)
		}
		pairs = append(pairs, dartdefine.Pair{Key: attr.Name, Value: strVal.AsString()})
	}
	return pairs, nil
}
