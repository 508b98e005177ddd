package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{
			name:      "empty input",
			text:      "",
			chunkSize: 10,
			overlap:   2,
			want:      nil,
		},
		{
			name:      "fits in one chunk",
			text:      "short",
			chunkSize: 10,
			overlap:   2,
			want:      []string{"short"},
		},
		{
			name:      "exact chunk size",
			text:      "abcde",
			chunkSize: 5,
			overlap:   1,
			want:      []string{"abcde"},
		},
		{
			name:      "overlapping windows",
			text:      "abcdefghij",
			chunkSize: 4,
			overlap:   2,
			want:      []string{"abcd", "cdef", "efgh", "ghij"},
		},
		{
			name:      "no overlap",
			text:      "abcdefgh",
			chunkSize: 3,
			overlap:   0,
			want:      []string{"abc", "def", "gh"},
		},
		{
			name:      "overlap larger than chunk falls back to full step",
			text:      "abcdefg",
			chunkSize: 3,
			overlap:   5,
			want:      []string{"abc", "def", "g"},
		},
		{
			name:      "multibyte runes are not split",
			text:      "héllo wörld",
			chunkSize: 6,
			overlap:   1,
			want:      []string{"héllo ", " wörld"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize, tt.overlap)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTextOverlapContinuity(t *testing.T) {
	text := strings.Repeat("abcdefghij", 20)
	chunkSize := 30
	overlap := 7

	chunks := SplitText(text, chunkSize, overlap)
	require.Greater(t, len(chunks), 1, "expected multiple chunks")

	// The tail of each full chunk must reappear at the head of the next.
	for i := 0; i < len(chunks)-1; i++ {
		prev := []rune(chunks[i])
		if len(prev) < chunkSize {
			continue
		}
		tail := string(prev[len(prev)-overlap:])
		assert.True(t, strings.HasPrefix(chunks[i+1], tail),
			"chunk %d must continue chunk %d tail %q", i+1, i, tail)
	}
}

func TestSplitTextNoOverlapRoundTrip(t *testing.T) {
	text := strings.Repeat("0123456789", 13)
	chunks := SplitText(text, 17, 0)

	assert.Equal(t, text, strings.Join(chunks, ""),
		"concatenated zero-overlap chunks should reproduce the input")
}
