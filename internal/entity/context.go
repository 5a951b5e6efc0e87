package entity

import (
	"fmt"
	"strings"
)

// Context is the resolved set of naming and schema inputs for one run.
// Build it with NewContext; the zero value is not valid.
type Context struct {
	Module string  // "Customer"
	Fields []Field // From the schema, in document order
	Prefix string  // Optional class-name prefix, e.g. "App"
	Suffix string  // Optional class-name suffix, e.g. "V2"
}

// NewContext validates the inputs and returns an immutable context.
// Module, prefix and suffix are trimmed before validation.
func NewContext(module string, schema *Schema, prefix, suffix string) (Context, error) {
	module = strings.TrimSpace(module)
	prefix = strings.TrimSpace(prefix)
	suffix = strings.TrimSpace(suffix)

	var errs ValidationErrors
	if module == "" {
		errs = append(errs, ValidationError{Field: "module", Message: "module name is required"})
	} else if !isIdentifier(module) {
		errs = append(errs, ValidationError{
			Field:      "module",
			Message:    fmt.Sprintf("%q is not a valid class name", module),
			Suggestion: "use letters, digits and underscores, starting with a letter",
		})
	}
	if prefix != "" && !isIdentifier(prefix) {
		errs = append(errs, ValidationError{Field: "prefix", Message: fmt.Sprintf("%q is not a valid class-name prefix", prefix)})
	}
	if suffix != "" && !isIdentifierFragment(suffix) {
		errs = append(errs, ValidationError{Field: "suffix", Message: fmt.Sprintf("%q is not a valid class-name suffix", suffix)})
	}
	if schema == nil {
		errs = append(errs, ValidationError{Field: "fields", Message: "schema is required"})
	}
	if len(errs) > 0 {
		return Context{}, fmt.Errorf("%w: %w", ErrInvalidContext, errs)
	}

	fields := make([]Field, len(schema.Fields))
	copy(fields, schema.Fields)

	return Context{
		Module: module,
		Fields: fields,
		Prefix: prefix,
		Suffix: suffix,
	}, nil
}

// ClassName is the generated class stem: Prefix + Module + Suffix.
func (c Context) ClassName() string {
	return c.Prefix + c.Module + c.Suffix
}

// Names returns the naming inputs without the schema.
func (c Context) Names() Names {
	return Names{Module: c.Module, Prefix: c.Prefix, Suffix: c.Suffix}
}

// Names identifies one registration: the class stem parts of a module.
type Names struct {
	Module string
	Prefix string
	Suffix string
}

// ClassName is Prefix + Module + Suffix.
func (n Names) ClassName() string {
	return n.Prefix + n.Module + n.Suffix
}
