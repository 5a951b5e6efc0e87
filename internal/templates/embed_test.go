package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	tests := []struct {
		stack string
		want  int
	}{
		{"netcore", 9},
		{"nestjs", 8},
		{"nano", 8},
	}

	for _, tt := range tests {
		t.Run(tt.stack, func(t *testing.T) {
			names, err := List(tt.stack)
			require.NoError(t, err)
			assert.Len(t, names, tt.want)
			assert.IsIncreasing(t, names)
			assert.Contains(t, names, "controller."+map[bool]string{true: "cs", false: "ts"}[tt.stack == "netcore"]+".tmpl")
		})
	}
}

func TestList_UnknownStack(t *testing.T) {
	_, err := List("rails")
	assert.Error(t, err)
}
