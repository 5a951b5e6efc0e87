package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestInput(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		want         string
	}{
		{"typed value", "Order\n", "Customer", "Order"},
		{"empty uses default", "\n", "Customer", "Customer"},
		{"whitespace trimmed", "  Order  \n", "Customer", "Order"},
		{"eof uses default", "", "Customer", "Customer"},
		{"no trailing newline", "Order", "Customer", "Order"},
		{"empty without default", "\n", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			assert.Equal(t, tt.want, p.Input("Enter module name", tt.defaultValue))
		})
	}
}

func TestInput_ShowsDefault(t *testing.T) {
	p, out := newTestPrompter("\n")
	p.Input("Enter module name", "Customer")

	assert.Contains(t, out.String(), "Enter module name")
	assert.Contains(t, out.String(), "(Customer)")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"", true, true},
		{"maybe\n", true, false},
	}

	for _, tt := range tests {
		p, _ := newTestPrompter(tt.input)
		assert.Equal(t, tt.want, p.Confirm("Continue?", tt.defaultYes), "input %q", tt.input)
	}
}

func TestSelect_ByNumber(t *testing.T) {
	p, out := newTestPrompter("2\n")

	got, err := p.Select("Select tech stack", []string{"netcore", "nestjs", "nano"}, "netcore")
	require.NoError(t, err)
	assert.Equal(t, "nestjs", got)
	assert.Contains(t, out.String(), "1. netcore")
	assert.Contains(t, out.String(), "3. nano")
	assert.Contains(t, out.String(), "(1-3)")
}

func TestSelect_EmptyUsesDefault(t *testing.T) {
	p, _ := newTestPrompter("\n")

	got, err := p.Select("Select tech stack", []string{"netcore", "nestjs"}, "netcore")
	require.NoError(t, err)
	assert.Equal(t, "netcore", got)
}

func TestSelect_RepromptsOnInvalid(t *testing.T) {
	p, out := newTestPrompter("abc\n9\n0\n3\n")

	got, err := p.Select("Select tech stack", []string{"netcore", "nestjs", "nano"}, "")
	require.NoError(t, err)
	assert.Equal(t, "nano", got)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid selection"))
}

func TestSelect_EOFWithoutDefault(t *testing.T) {
	p, _ := newTestPrompter("")

	_, err := p.Select("Select tech stack", []string{"netcore"}, "")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestSelect_NoChoices(t *testing.T) {
	p, _ := newTestPrompter("1\n")

	_, err := p.Select("Select tech stack", nil, "")
	assert.Error(t, err)
}

func TestSequentialQuestions(t *testing.T) {
	p, _ := newTestPrompter("1\nOrder\n\nApp\n")

	stack, err := p.Select("Select tech stack", []string{"netcore", "nestjs"}, "netcore")
	require.NoError(t, err)
	module := p.Input("Enter module name", "Customer")
	prefix := p.Input("Enter class prefix", "")
	suffix := p.Input("Enter class suffix", "")

	assert.Equal(t, "netcore", stack)
	assert.Equal(t, "Order", module)
	assert.Equal(t, "", prefix)
	assert.Equal(t, "App", suffix)
}
