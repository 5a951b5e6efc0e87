package generator

import (
	"strings"
	"unicode"
)

// words splits an identifier into its words.
// Examples: customer_id → [customer id], OrderLine → [Order Line],
// HTTPServer → [HTTP Server], order-line → [order line]
func words(s string) []string {
	var out []string
	runes := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return out
}

// capitalize upper-cases the first letter and lower-cases the rest.
// Acronyms render as words: HTTP → Http.
func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// PascalCase converts an identifier to PascalCase.
// Examples: customer_id → CustomerId, orderLine → OrderLine
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// CamelCase converts an identifier to camelCase.
// Examples: customer_id → customerId, OrderLine → orderLine
func CamelCase(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// SnakeCase converts an identifier to snake_case.
// Examples: OrderLine → order_line, HTTPServer → http_server
func SnakeCase(s string) string {
	return joinLower(words(s), "_")
}

// KebabCase converts an identifier to kebab-case.
// Examples: OrderLine → order-line, customerId → customer-id
func KebabCase(s string) string {
	return joinLower(words(s), "-")
}

func joinLower(ws []string, sep string) string {
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, sep)
}

// Pluralize converts a singular noun to its plural using common English rules.
// Only the last word of a compound identifier is pluralized.
func Pluralize(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)

	irregulars := map[string]string{
		"person": "people",
		"child":  "children",
		"man":    "men",
		"woman":  "women",
		"mouse":  "mice",
	}
	if ws := words(word); len(ws) > 0 {
		last := ws[len(ws)-1]
		if plural, ok := irregulars[strings.ToLower(last)]; ok && strings.HasSuffix(word, last) {
			return word[:len(word)-len(last)] + preserveCase(last, plural)
		}
	}

	switch {
	case hasAnySuffix(lower, "s", "x", "z", "ch", "sh"):
		return word + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(lower, "f") && !hasAnySuffix(lower, "ff", "roof", "chief"):
		return word[:len(word)-1] + "ves"
	}
	return word + "s"
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of original to plural.
func preserveCase(original, plural string) string {
	if original == "" {
		return plural
	}
	if strings.ToUpper(original) == original && len(original) > 1 {
		return strings.ToUpper(plural)
	}
	if unicode.IsUpper(rune(original[0])) {
		return strings.ToUpper(plural[:1]) + plural[1:]
	}
	return plural
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// CSharpType maps a schema field type to a C# type.
// Unknown types are passed through unchanged.
func CSharpType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "string", "text", "email":
		return "string"
	case "int", "integer", "int32":
		return "int"
	case "long", "int64":
		return "long"
	case "float", "double", "number":
		return "double"
	case "decimal", "money":
		return "decimal"
	case "bool", "boolean":
		return "bool"
	case "date", "datetime", "timestamp":
		return "DateTime"
	case "guid", "uuid":
		return "Guid"
	case "":
		return "object"
	}
	return t
}

// TypeScriptType maps a schema field type to a TypeScript type.
// Unknown types are passed through unchanged.
func TypeScriptType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "string", "text", "email", "guid", "uuid":
		return "string"
	case "int", "integer", "int32", "long", "int64", "float", "double", "number", "decimal", "money":
		return "number"
	case "bool", "boolean":
		return "boolean"
	case "date", "datetime", "timestamp":
		return "Date"
	case "":
		return "unknown"
	}
	return t
}

// CSharpValue returns a sample C# literal for a schema field type, for use in
// generated tests.
func CSharpValue(t string) string {
	switch CSharpType(t) {
	case "string":
		return `"sample"`
	case "int", "long":
		return "1"
	case "double":
		return "1.5"
	case "decimal":
		return "1.5m"
	case "bool":
		return "true"
	case "DateTime":
		return "new DateTime(2024, 1, 1)"
	case "Guid":
		return "Guid.NewGuid()"
	}
	return "default!"
}

// TypeScriptValue returns a sample TypeScript literal for a schema field type.
func TypeScriptValue(t string) string {
	switch TypeScriptType(t) {
	case "string":
		return "'sample'"
	case "number":
		return "1"
	case "boolean":
		return "true"
	case "Date":
		return "new Date('2024-01-01')"
	}
	return "undefined as never"
}

// Default returns value unless it is nil or an empty string, in which case it returns def.
// Argument order matches template pipelines: {{ .X | default "y" }}.
func Default(def, value any) any {
	if value == nil {
		return def
	}
	if s, ok := value.(string); ok && s == "" {
		return def
	}
	return value
}
