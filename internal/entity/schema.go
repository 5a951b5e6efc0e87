// Package entity loads entity schema documents and builds the generation
// context passed to templates.
package entity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field describes one entity field. Name and Type are lifted out for
// templates; every key of the original descriptor, including name and type,
// stays available in Attrs.
type Field struct {
	Name  string
	Type  string
	Attrs map[string]any
}

// Attr returns the raw value of key, or nil when absent.
// Usage in template: {{ if .Attr "required" }}...{{ end }}
func (f Field) Attr(key string) any {
	return f.Attrs[key]
}

// Schema is a parsed entity document.
type Schema struct {
	Path   string         // Source path, empty for in-memory documents
	Fields []Field        // Ordered as in the document
	Meta   map[string]any // Top-level keys other than "fields"
}

// Format is the encoding of a schema document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the decoder from the file extension; anything that is
// not .yml or .yaml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the schema at path.
// Every failure wraps ErrInvalidSchema.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	s, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes a schema document from bytes.
func Parse(data []byte, format Format) (*Schema, error) {
	var doc map[string]any

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidSchema, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON: %w", ErrInvalidSchema, err)
		}
	}

	if doc == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidSchema)
	}

	return fromDocument(doc)
}

// fromDocument validates the decoded document and builds a Schema.
func fromDocument(doc map[string]any) (*Schema, error) {
	raw, ok := doc["fields"]
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, &ValidationError{
			Field:      "fields",
			Message:    "fields is required",
			Suggestion: `add a top-level "fields" list`,
		})
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, &ValidationError{
			Field:   "fields",
			Message: fmt.Sprintf("fields must be a list, got %s", describe(raw)),
		})
	}

	var errs ValidationErrors
	fields := make([]Field, 0, len(items))
	for i, item := range items {
		attrs, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("fields[%d]", i),
				Message: fmt.Sprintf("field must be an object, got %s", describe(item)),
			})
			continue
		}

		name, _ := attrs["name"].(string)
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("fields[%d].name", i),
				Message: "name is required",
			})
			continue
		}

		typ, _ := attrs["type"].(string)
		fields = append(fields, Field{Name: name, Type: typ, Attrs: attrs})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, errs)
	}

	meta := make(map[string]any, len(doc))
	for k, v := range doc {
		if k != "fields" {
			meta[k] = v
		}
	}

	return &Schema{Fields: fields, Meta: meta}, nil
}

// FieldNames returns the field names in document order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// MetaKeys returns the top-level metadata keys, sorted.
func (s *Schema) MetaKeys() []string {
	keys := make([]string, 0, len(s.Meta))
	for k := range s.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
