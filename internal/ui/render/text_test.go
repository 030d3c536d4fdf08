package render

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "hello", "hello"},
		{"control chars", "a\x07b\x1bc", "abc"},
		{"keeps tab", "a\tb", "a\tb"},
		{"nbsp", "a\u00a0b", "a b"},
		{"invalid utf8", "a\xffb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"cut", "hello world", 8, "hello w…"},
		{"wide chars", "日本語テキスト", 7, "日本語…"},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab   ", Center("ab", 7))
	assert.Equal(t, "abc", Center("abc", 2))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "ab   cd", Row("ab", "cd", 7))
	assert.Equal(t, "ab cd", Row("ab", "cd", 2))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		maxLines int
		want     []string
	}{
		{
			name:     "single line",
			input:    "short text",
			width:    20,
			maxLines: 3,
			want:     []string{"short text"},
		},
		{
			name:     "word boundaries",
			input:    "the quick brown fox jumps",
			width:    10,
			maxLines: 3,
			want:     []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:     "overflow gets ellipsis",
			input:    "the quick brown fox jumps over the lazy dog",
			width:    10,
			maxLines: 2,
			want:     []string{"the quick", "brown fox…"},
		},
		{
			name:     "long word split",
			input:    "abcdefghij",
			width:    4,
			maxLines: 3,
			want:     []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "collapses whitespace",
			input:    "a\n\n  b",
			width:    10,
			maxLines: 3,
			want:     []string{"a b"},
		},
		{
			name:     "empty",
			input:    "",
			width:    10,
			maxLines: 3,
			want:     nil,
		},
		{
			name:     "no room",
			input:    "text",
			width:    0,
			maxLines: 3,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.input, tt.width, tt.maxLines)
			assert.Equal(t, tt.want, got)
			for _, line := range got {
				assert.LessOrEqual(t, runewidth.StringWidth(line), tt.width)
			}
		})
	}
}
