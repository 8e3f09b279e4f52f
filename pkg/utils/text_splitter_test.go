package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	chunks := SplitText("short", 100, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0])
}

func TestSplitText_OverlapPreserved(t *testing.T) {
	text := strings.Repeat("a", 10) + strings.Repeat("b", 10)
	chunks := SplitText(text, 12, 4)

	require.GreaterOrEqual(t, len(chunks), 2)
	// The tail of each chunk reappears at the head of the next.
	first := chunks[0]
	second := chunks[1]
	assert.Equal(t, first[len(first)-4:], second[:4])
}

func TestSplitText_CoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 95)
	chunks := SplitText(text, 30, 5)

	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	assert.GreaterOrEqual(t, total, len(text))
}

func TestSplitText_DegenerateOverlap(t *testing.T) {
	text := strings.Repeat("y", 50)
	// overlap >= chunkSize falls back to disjoint chunks instead of looping.
	chunks := SplitText(text, 10, 10)
	assert.Len(t, chunks, 5)
}
