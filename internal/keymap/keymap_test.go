package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context  string
		minCount int
	}{
		{"global", 2},
		{"transport", 8},
		{"alert", 1},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			result := ByContext(tt.context)
			assert.GreaterOrEqual(t, len(result), tt.minCount)
			for _, b := range result {
				assert.Equal(t, tt.context, b.Context)
			}
		})
	}
	assert.Empty(t, ByContext("unknown"))
}

func TestAll_NoKeyBoundTwice(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All() {
		require.NotEmpty(t, b.Keys, "binding %s has no keys", b.Action)
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestHelp(t *testing.T) {
	short, full := Help()

	require.Len(t, short, 5)
	assert.Equal(t, "space", short[0].Help().Key)
	assert.Equal(t, "Play/pause", short[0].Help().Desc)
	require.Len(t, full, 2)
	assert.Len(t, full[0], len(ByContext("transport")))
	assert.Len(t, full[1], len(ByContext("global")))
}
