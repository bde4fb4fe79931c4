package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("A short resume paragraph.", 1000, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "A short resume paragraph.", chunks[0])
}

func TestChunkText_EmptyText(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 100))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 100))
}

func TestChunkText_SplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	paraA := strings.Repeat("aa ", 40) // ~120 chars
	paraB := strings.Repeat("bb ", 40)
	paraC := strings.Repeat("cc ", 40)
	text := paraA + "\n\n" + paraB + "\n\n" + paraC

	chunks := chunker.ChunkText(text, 200, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}

func TestChunkText_OverlapCarriesTail(t *testing.T) {
	chunker := NewTextChunker()

	paraA := strings.Repeat("alpha ", 30)
	paraB := strings.Repeat("beta ", 30)
	text := strings.TrimSpace(paraA) + "\n\n" + strings.TrimSpace(paraB)

	chunks := chunker.ChunkText(text, 180, 20)

	require.Greater(t, len(chunks), 1)
	tail := lastNRunes(chunks[0], 20)
	assert.True(t, strings.HasPrefix(chunks[1], tail),
		"next chunk starts with the previous chunk's tail")
}

func TestChunkText_OversizedParagraphSplitsOnSentences(t *testing.T) {
	chunker := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("This sentence pads out a very long single paragraph. ")
	}

	chunks := chunker.ChunkText(sb.String(), 300, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunkText_DefensiveParameters(t *testing.T) {
	chunker := NewTextChunker()

	// Zero size falls back to the default; overlap >= size is reduced.
	chunks := chunker.ChunkText("some text", 0, 0)
	require.Len(t, chunks, 1)

	chunks = chunker.ChunkText("some text", 50, 500)
	require.Len(t, chunks, 1)
	assert.Equal(t, "some text", chunks[0])
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First one. Second one! Third one? ")

	assert.Equal(t, []string{"First one", "Second one", "Third one"}, sentences)
}

func TestLastNRunes(t *testing.T) {
	assert.Equal(t, "", lastNRunes("abc", 0))
	assert.Equal(t, "abc", lastNRunes("abc", 10))
	assert.Equal(t, "bc", lastNRunes("abc", 2))
	assert.Equal(t, "héllo", lastNRunes("say héllo", 5))
}
