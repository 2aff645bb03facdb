package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-referee/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-referee/internal/entity"
)

// WinCombos lists every winning line: rows first, then columns, then the two
// diagonals. Evaluation follows this order.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Rand is the source of randomness for first-move selection and the opponent
// cell choice. Tests substitute a deterministic sequence.
type Rand interface {
	Intn(n int) int
}

// Engine applies the game rules: starting board validation, win and draw
// detection, move legality and the automated opponent response.
type Engine struct {
	rnd Rand
}

// globalRand delegates to the shared math/rand source, which is safe for
// concurrent callers.
type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // not used for security
}

// NewEngine - returns an engine backed by the given randomness source,
// or the shared math/rand source when rnd is nil.
func NewEngine(rnd Rand) *Engine {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Engine{rnd: rnd}
}

// StartGame - validates a candidate starting board and completes it.
//
// An all-empty board gets a random first move by a randomly chosen sign, and
// the human player is assigned the other sign. A board holding a single mark
// is treated as the human's first move and answered immediately with one
// opponent move. Any other configuration is an ErrInvalidStartingBoard.
//
// Returns the completed board and the human player's sign.
func (that *Engine) StartGame(board entity.Board) (entity.Board, entity.Mark, error) {
	xCount, oCount, _ := board.Counts()

	if xCount > 1 || oCount > 1 || (xCount == 1 && oCount == 1) {
		return board, 0, fmt.Errorf("%w: %d X and %d O", apperror.ErrInvalidStartingBoard, xCount, oCount)
	}

	if xCount == 0 && oCount == 0 {
		engineMark := entity.MarkX
		if that.rnd.Intn(2) == 0 {
			engineMark = entity.MarkO
		}

		board[that.rnd.Intn(entity.BoardSize)] = engineMark

		return board, engineMark.Other(), nil
	}

	humanMark := entity.MarkX
	if oCount == 1 {
		humanMark = entity.MarkO
	}

	board, err := that.OpponentMove(board, humanMark.Other())
	if err != nil {
		return board, 0, fmt.Errorf("failed to answer the opening move: %w", err)
	}

	return board, humanMark, nil
}

// CheckWin - evaluates the board for a terminal condition and transitions the
// game status when one is found. Re-evaluating an already decided board is
// harmless: it yields the same winner.
//
// Returns true if the status is terminal after the check.
func (that *Engine) CheckWin(game *entity.Game) bool {
	for _, combo := range WinCombos {
		a, b, c := game.Board[combo[0]], game.Board[combo[1]], game.Board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			game.Status = entity.WinnerStatus(a)
			return true
		}
	}

	for _, mark := range game.Board {
		if mark == entity.EmptyCell {
			return false
		}
	}

	game.Status = entity.StatusDraw

	return true
}

// ApplyMove - applies the human player's proposed board to the game, then
// answers with one opponent move if the game is still running.
//
// The proposed board must differ from the current board by exactly one
// previously empty cell now holding the human's mark; every other cell must
// be unchanged. Any violation is an ErrMoveRejected and leaves the game
// untouched.
func (that *Engine) ApplyMove(game *entity.Game, proposed entity.Board, humanMark entity.Mark) error {
	if !game.IsRunning() {
		return fmt.Errorf("%w: game is already %s", apperror.ErrMoveRejected, game.Status)
	}

	placed := 0
	for i := range game.Board {
		current, next := game.Board[i], proposed[i]

		switch {
		case current == next:
		case current == entity.EmptyCell && next == humanMark:
			placed++
		default:
			return fmt.Errorf("%w: cell %d changed from %q to %q", apperror.ErrMoveRejected, i, current, next)
		}
	}

	if placed != 1 {
		return fmt.Errorf("%w: expected exactly one new %s, got %d", apperror.ErrMoveRejected, humanMark, placed)
	}

	game.Board = proposed

	if that.CheckWin(game) {
		return nil
	}

	board, err := that.OpponentMove(game.Board, humanMark.Other())
	if err != nil {
		// unreachable: a running game always has an empty cell
		return fmt.Errorf("opponent failed to move: %w", err)
	}

	game.Board = board
	that.CheckWin(game)

	return nil
}

// OpponentMove - places the given mark on a uniformly chosen empty cell.
// No lookahead, no heuristic.
func (that *Engine) OpponentMove(board entity.Board, mark entity.Mark) (entity.Board, error) {
	emptyCells := board.EmptyCells()
	if len(emptyCells) == 0 {
		return board, apperror.ErrNoAvailableMoves
	}

	chosenCell := emptyCells[that.rnd.Intn(len(emptyCells))]
	board[chosenCell] = mark

	return board, nil
}
