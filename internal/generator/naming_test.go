package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseConversion(t *testing.T) {
	tests := []struct {
		in                         string
		pascal, camel, snake, kebab string
	}{
		{"customer", "Customer", "customer", "customer", "customer"},
		{"customer_id", "CustomerId", "customerId", "customer_id", "customer-id"},
		{"customerID", "CustomerId", "customerId", "customer_id", "customer-id"},
		{"OrderLine", "OrderLine", "orderLine", "order_line", "order-line"},
		{"HTTPServer", "HttpServer", "httpServer", "http_server", "http-server"},
		{"first-name", "FirstName", "firstName", "first_name", "first-name"},
		{"AppCustomerV2", "AppCustomerV2", "appCustomerV2", "app_customer_v2", "app-customer-v2"},
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in), "pascal")
			assert.Equal(t, tt.camel, CamelCase(tt.in), "camel")
			assert.Equal(t, tt.snake, SnakeCase(tt.in), "snake")
			assert.Equal(t, tt.kebab, KebabCase(tt.in), "kebab")
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := map[string]string{
		"Customer":    "Customers",
		"Category":    "Categories",
		"Day":         "Days",
		"Address":     "Addresses",
		"Box":         "Boxes",
		"Branch":      "Branches",
		"Person":      "People",
		"SalesPerson": "SalesPeople",
		"Human":       "Humans",
		"Knife":       "Knives",
		"Leaf":        "Leaves",
		"Roof":        "Roofs",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Pluralize(in), in)
	}
}

func TestTypeMapping(t *testing.T) {
	tests := []struct{ in, cs, ts string }{
		{"string", "string", "string"},
		{"int", "int", "number"},
		{"decimal", "decimal", "number"},
		{"Boolean", "bool", "boolean"},
		{"datetime", "DateTime", "Date"},
		{"uuid", "Guid", "string"},
		{"Address", "Address", "Address"},
		{"", "object", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.cs, CSharpType(tt.in), tt.in)
		assert.Equal(t, tt.ts, TypeScriptType(tt.in), tt.in)
	}
}

func TestSampleValues(t *testing.T) {
	assert.Equal(t, `"sample"`, CSharpValue("string"))
	assert.Equal(t, "1.5m", CSharpValue("decimal"))
	assert.Equal(t, "new DateTime(2024, 1, 1)", CSharpValue("datetime"))
	assert.Equal(t, "default!", CSharpValue("Address"))
	assert.Equal(t, "'sample'", TypeScriptValue("uuid"))
	assert.Equal(t, "1", TypeScriptValue("decimal"))
	assert.Equal(t, "undefined as never", TypeScriptValue("Address"))
}
