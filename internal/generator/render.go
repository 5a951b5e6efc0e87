package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

// Renderer handles template parsing and rendering with caching.
//
// Templates are looked up by slash-separated name (e.g. "netcore/controller.cs.tmpl")
// in the override directory first, when one is set, then in the base filesystem.
type Renderer struct {
	base     fs.FS
	override string
	funcMap  template.FuncMap
	cache    map[string]*template.Template
	mu       sync.RWMutex
}

// NewRenderer creates a renderer over base. overrideDir may be empty.
func NewRenderer(base fs.FS, overrideDir string) *Renderer {
	return &Renderer{
		base:     base,
		override: overrideDir,
		funcMap:  defaultFuncMap(),
		cache:    make(map[string]*template.Template),
	}
}

// Render renders the named template.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, text string, data any) ([]byte, error) {
	key := "string:" + name
	tmpl, ok := r.cached(key)
	if !ok {
		var err error
		tmpl, err = r.parse(name, text)
		if err != nil {
			return nil, err
		}
		r.store(key, tmpl)
	}
	return r.executeTemplate(tmpl, data)
}

// Source reports where the named template would be loaded from: the
// override file path, or "embedded".
func (r *Renderer) Source(name string) string {
	if p, ok := r.overridePath(name); ok {
		return p
	}
	return "embedded"
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	key := "fs:" + name
	if tmpl, ok := r.cached(key); ok {
		return tmpl, nil
	}

	var (
		data []byte
		err  error
	)
	if p, ok := r.overridePath(name); ok {
		data, err = os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read template override '%s': %w", p, err)
		}
	} else {
		data, err = fs.ReadFile(r.base, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template '%s': %w", name, err)
		}
	}

	tmpl, err := r.parse(name, string(data))
	if err != nil {
		return nil, err
	}
	r.store(key, tmpl)
	return tmpl, nil
}

func (r *Renderer) overridePath(name string) (string, bool) {
	if r.override == "" {
		return "", false
	}
	p := filepath.Join(r.override, filepath.FromSlash(name))
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

func (r *Renderer) parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(r.funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}
	return tmpl, nil
}

func (r *Renderer) cached(key string) (*template.Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.cache[key]
	return tmpl, ok
}

func (r *Renderer) store(key string, tmpl *template.Template) {
	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()
}

func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// ErrTemplateNotFound is returned by Check when neither the override
// directory nor the base filesystem holds a template.
var ErrTemplateNotFound = errors.New("template not found")

// Check returns ErrTemplateNotFound if name cannot be resolved.
func (r *Renderer) Check(name string) error {
	if _, ok := r.overridePath(name); ok {
		return nil
	}
	if _, err := fs.Stat(r.base, name); err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascal": PascalCase, // customer_id → CustomerId
		"camel":  CamelCase,  // customer_id → customerId
		"snake":  SnakeCase,  // OrderLine → order_line
		"kebab":  KebabCase,  // OrderLine → order-line
		"plural": Pluralize,  // Category → Categories
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,

		// Schema type → language type
		"csType":  CSharpType, // datetime → DateTime
		"tsType":  TypeScriptType,
		"csValue": CSharpValue, // sample literals for generated tests
		"tsValue": TypeScriptValue,

		"default": Default,
		"join":    strings.Join,
	}
}
