package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsRowsKeepsRawData(t *testing.T) {
	m := InlineButtonsRows(
		[]InlineBtn{{Text: "France", Data: "LOC_fr_FR"}, {Text: "Japan", Data: "LOC_ja_JP"}},
		nil,
		[]InlineBtn{{Text: "Back", Data: "PAGE_0"}},
	)
	require.Len(t, m.InlineKeyboard, 2)
	assert.Equal(t, "LOC_fr_FR", m.InlineKeyboard[0][0].Data)
	assert.Empty(t, m.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "Japan", m.InlineKeyboard[0][1].Text)
	assert.Equal(t, "PAGE_0", m.InlineKeyboard[1][0].Data)
}

func TestChunk(t *testing.T) {
	btns := []InlineBtn{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"}}

	rows := Chunk(btns, 2)
	require.Len(t, rows, 3)
	assert.Len(t, rows[2], 1)
	assert.Equal(t, "e", rows[2][0].Text)

	assert.Len(t, Chunk(btns, 0), 5)
	assert.Empty(t, Chunk(nil, 2))
}
