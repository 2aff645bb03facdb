package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-referee/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	t.Run("Valid board", func(t *testing.T) {
		// When: a legal 9-cell board is parsed
		board, err := ParseBoard("X-O---X--")

		// Then: no error, and the wire form round-trips
		require.NoError(t, err)
		require.Equal(t, "X-O---X--", board.String())
	})

	t.Run("Too short", func(t *testing.T) {
		// When: a board with fewer than 9 cells is parsed
		_, err := ParseBoard("X-O")

		// Then: an ErrInvalidBoard error should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Too long", func(t *testing.T) {
		// When: a board with more than 9 cells is parsed
		_, err := ParseBoard("X-O---X---")

		// Then: an ErrInvalidBoard error should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Illegal symbol", func(t *testing.T) {
		// When: a board containing a symbol outside {X, O, -} is parsed
		_, err := ParseBoard("X-O---?--")

		// Then: an ErrInvalidBoard error should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Lowercase is illegal", func(t *testing.T) {
		// When: a board with lowercase marks is parsed
		_, err := ParseBoard("x-o------")

		// Then: an ErrInvalidBoard error should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestBoard_Counts(t *testing.T) {
	// Given: a board with two X's, one O and six empty cells
	board, err := ParseBoard("X-O---X--")
	require.NoError(t, err)

	// When: counting the symbols
	xCount, oCount, emptyCount := board.Counts()

	// Then: the counts should match the board content
	assert.Equal(t, 2, xCount)
	assert.Equal(t, 1, oCount)
	assert.Equal(t, 6, emptyCount)
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with empty cells at positions 1, 3 and 8
	board, err := ParseBoard("X-O-XOXO-")
	require.NoError(t, err)

	// When: collecting the empty cell indices
	cells := board.EmptyCells()

	// Then: exactly those positions should be reported
	assert.Equal(t, []int{1, 3, 8}, cells)
}

func TestMark_Other(t *testing.T) {
	assert.Equal(t, MarkO, MarkX.Other())
	assert.Equal(t, MarkX, MarkO.Other())
}

func TestStatus_Wire(t *testing.T) {
	t.Run("String form", func(t *testing.T) {
		assert.Equal(t, "RUNNING", StatusRunning.String())
		assert.Equal(t, "X_WON", StatusXWon.String())
		assert.Equal(t, "O_WON", StatusOWon.String())
		assert.Equal(t, "DRAW", StatusDraw.String())
	})

	t.Run("Parse rejects unknown status", func(t *testing.T) {
		_, err := ParseStatus("PAUSED")
		require.Error(t, err)
	})

	t.Run("IsTerminal", func(t *testing.T) {
		assert.False(t, StatusRunning.IsTerminal())
		assert.True(t, StatusXWon.IsTerminal())
		assert.True(t, StatusOWon.IsTerminal())
		assert.True(t, StatusDraw.IsTerminal())
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a running game with a single X on the board
	board, err := ParseBoard("X--------")
	require.NoError(t, err)

	game := NewGame("42", board)

	// When: the game is serialized
	raw, err := json.Marshal(game)
	require.NoError(t, err)

	// Then: the snapshot uses the flat wire forms for board and status
	assert.JSONEq(t, `{"id":"42","board":"X--------","status":"RUNNING"}`, string(raw))

	// When: the snapshot is deserialized again
	var decoded Game
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Then: the game should round-trip unchanged
	assert.Equal(t, *game, decoded)
}
