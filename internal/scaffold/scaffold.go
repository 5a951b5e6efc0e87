// Package scaffold turns a stack, a generation context and an output
// directory into the file operations that generate a module.
package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eddwinpaz/ez-cli/internal/bootstrap"
	"github.com/eddwinpaz/ez-cli/internal/entity"
	"github.com/eddwinpaz/ez-cli/internal/generator"
	"github.com/eddwinpaz/ez-cli/internal/output"
	"github.com/eddwinpaz/ez-cli/internal/stack"
)

// Data is what templates see.
type Data struct {
	Stack     string
	Module    string
	ClassName string
	Prefix    string
	Suffix    string
	Fields    []entity.Field

	// IDField is the schema field named "id", or an int "id" when the
	// schema has none. HasID reports which.
	IDField entity.Field
	HasID   bool
}

// NewData builds template data for a stack from a generation context.
func NewData(s stack.Stack, ctx entity.Context) Data {
	d := Data{
		Stack:     s.Name,
		Module:    ctx.Module,
		ClassName: ctx.ClassName(),
		Prefix:    ctx.Prefix,
		Suffix:    ctx.Suffix,
		Fields:    ctx.Fields,
		IDField:   entity.Field{Name: "id", Type: "int"},
	}
	for _, f := range ctx.Fields {
		if strings.EqualFold(f.Name, "id") {
			d.IDField = f
			d.HasID = true
			break
		}
	}
	return d
}

// Options configures Plan.
type Options struct {
	Stack     stack.Stack
	Context   entity.Context
	OutputDir string
	Renderer  *generator.Renderer
}

// ModuleDir is the directory generated artifacts are placed under:
// <output>/<module>.
func (o Options) ModuleDir() string {
	return filepath.Join(o.OutputDir, o.Context.Module)
}

// Plan renders every artifact of the stack and returns the operations that
// write them. The bootstrap artifact becomes a bootstrap.RegisterOp, so an
// existing startup file is patched instead of replaced.
func Plan(opts Options) ([]generator.Operation, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("scaffold: renderer is required")
	}

	for _, a := range opts.Stack.Artifacts {
		if err := opts.Renderer.Check(opts.Stack.TemplatePath(a)); err != nil {
			return nil, err
		}
	}

	data := NewData(opts.Stack, opts.Context)
	moduleDir := opts.ModuleDir()

	var patcher *bootstrap.Patcher
	if opts.Stack.Dialect != nil {
		var err error
		if patcher, err = bootstrap.NewPatcher(*opts.Stack.Dialect); err != nil {
			return nil, err
		}
	}

	ops := make([]generator.Operation, 0, len(opts.Stack.Artifacts))
	for _, a := range opts.Stack.Artifacts {
		path, err := outputPath(opts.Renderer, moduleDir, opts.Stack, a, data)
		if err != nil {
			return nil, err
		}

		name := opts.Stack.TemplatePath(a)
		content, err := opts.Renderer.Render(name, data)
		if err != nil {
			return nil, err
		}
		output.Debug("rendered artifact", "template", name, "source", opts.Renderer.Source(name), "path", path)

		if a.Bootstrap {
			if patcher == nil {
				return nil, fmt.Errorf("stack %s has a bootstrap artifact but no dialect", opts.Stack.Name)
			}
			ops = append(ops, &bootstrap.RegisterOp{
				Patcher: patcher,
				Path:    path,
				Names:   opts.Context.Names(),
				Fresh:   content,
				Mode:    0644,
			})
			continue
		}

		ops = append(ops, &generator.WriteFileOp{Path: path, Content: content, Mode: 0644})
	}
	return ops, nil
}

func outputPath(r *generator.Renderer, moduleDir string, s stack.Stack, a stack.Artifact, data Data) (string, error) {
	rel, err := r.RenderString("output:"+s.TemplatePath(a), a.Output, data)
	if err != nil {
		return "", fmt.Errorf("output path for %s: %w", a.Template, err)
	}
	return filepath.Clean(filepath.Join(moduleDir, filepath.FromSlash(string(rel)))), nil
}
