package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customerJSON = `{
	"name": "Customer",
	"fields": [
		{"name": "Id", "type": "int", "key": true},
		{"name": "Name", "type": "string", "required": true, "maxLength": 100},
		{"name": "CreatedAt", "type": "datetime"}
	]
}`

const customerYAML = `name: Customer
fields:
  - name: Id
    type: int
    key: true
  - name: Email
    type: string
`

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeSchema(t, "entity.json", customerJSON)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path)
	assert.Equal(t, []string{"Id", "Name", "CreatedAt"}, s.FieldNames())
	assert.Equal(t, "string", s.Fields[1].Type)
	assert.Equal(t, true, s.Fields[1].Attr("required"))
	assert.Equal(t, float64(100), s.Fields[1].Attr("maxLength"))
	assert.Nil(t, s.Fields[2].Attr("required"))
	assert.Equal(t, []string{"name"}, s.MetaKeys())
}

func TestLoad_YAML(t *testing.T) {
	path := writeSchema(t, "customer.yml", customerYAML)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Id", "Email"}, s.FieldNames())
	assert.Equal(t, true, s.Fields[0].Attr("key"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantMsg string
	}{
		{"malformed json", `{"fields": [`, FormatJSON, "failed to parse JSON"},
		{"malformed yaml", "fields: [unclosed", FormatYAML, "failed to parse YAML"},
		{"empty document", "null", FormatJSON, "document is empty"},
		{"top-level array", `[1, 2]`, FormatJSON, "failed to parse JSON"},
		{"trailing data", `{"fields":[{"name":"id","type":"int"}]}}}} not json`, FormatJSON, "failed to parse JSON"},
		{"second document", `{"fields":[]} {"fields":[]}`, FormatJSON, "failed to parse JSON"},
		{"missing fields", `{"name": "Customer"}`, FormatJSON, "fields is required"},
		{"fields not a list", `{"fields": {"name": "Id"}}`, FormatJSON, "fields must be a list, got object"},
		{"field not an object", `{"fields": ["Id"]}`, FormatJSON, "fields[0]"},
		{"field without name", `{"fields": [{"type": "int"}]}`, FormatJSON, "fields[0].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSchema)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_CollectsAllFieldErrors(t *testing.T) {
	_, err := Parse([]byte(`{"fields": [{"type": "int"}, 3, {"name": "Ok"}]}`), FormatJSON)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "found 2 validation errors")
}

func TestParse_EmptyFieldsIsValid(t *testing.T) {
	s, err := Parse([]byte(`{"fields": []}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, s.Fields)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("a.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("a.YAML"))
	assert.Equal(t, FormatJSON, FormatForPath("a.json"))
	assert.Equal(t, FormatJSON, FormatForPath("entity"))
}

func TestNewContext(t *testing.T) {
	s, err := Parse([]byte(customerJSON), FormatJSON)
	require.NoError(t, err)

	ctx, err := NewContext(" Customer ", s, "App", "V2")
	require.NoError(t, err)

	assert.Equal(t, "Customer", ctx.Module)
	assert.Equal(t, "AppCustomerV2", ctx.ClassName())
	assert.Len(t, ctx.Fields, 3)
	assert.Equal(t, Names{Module: "Customer", Prefix: "App", Suffix: "V2"}, ctx.Names())
	assert.Equal(t, "AppCustomerV2", ctx.Names().ClassName())
}

func TestNewContext_CopiesFields(t *testing.T) {
	s, err := Parse([]byte(customerJSON), FormatJSON)
	require.NoError(t, err)

	ctx, err := NewContext("Customer", s, "", "")
	require.NoError(t, err)

	s.Fields[0].Name = "Changed"
	assert.Equal(t, "Id", ctx.Fields[0].Name)
}

func TestNewContext_Invalid(t *testing.T) {
	s := &Schema{}

	tests := []struct {
		name   string
		module string
		prefix string
		suffix string
		schema *Schema
		field  string
	}{
		{"empty module", "  ", "", "", s, "module"},
		{"module with space", "Sales Order", "", "", s, "module"},
		{"module leading digit", "1Order", "", "", s, "module"},
		{"bad prefix", "Order", "my-", "", s, "prefix"},
		{"bad suffix", "Order", "", "v.2", s, "suffix"},
		{"nil schema", "Order", "", "", nil, "fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContext(tt.module, tt.schema, tt.prefix, tt.suffix)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidContext)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNewContext_SuffixMayStartWithDigit(t *testing.T) {
	_, err := NewContext("Order", &Schema{}, "", "2")
	assert.NoError(t, err)
}
