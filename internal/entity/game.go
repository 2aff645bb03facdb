package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-referee/internal/apperror"
)

const BoardSize = 9

// Mark is the content of a single board cell.
type Mark byte

const (
	MarkX     Mark = 'X'
	MarkO     Mark = 'O'
	EmptyCell Mark = '-'
)

// Other - returns the opposing player mark.
func (that Mark) Other() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// IsPlayer reports whether the mark belongs to a player (X or O).
func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) String() string {
	return string(byte(that))
}

// Board is the 3x3 grid, row-major, index 0 is the top-left cell.
// Its wire form is a flat 9-character string over {X, O, -}.
type Board [BoardSize]Mark

// EmptyBoard - returns a board with all cells unoccupied.
func EmptyBoard() Board {
	var board Board
	for i := range board {
		board[i] = EmptyCell
	}
	return board
}

// ParseBoard - parses the wire form of a board.
// Any length other than 9 or any symbol outside {X, O, -} is an ErrInvalidBoard.
func ParseBoard(s string) (Board, error) {
	var board Board

	if len(s) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(s))
	}

	for i := 0; i < BoardSize; i++ {
		switch mark := Mark(s[i]); mark {
		case MarkX, MarkO, EmptyCell:
			board[i] = mark
		default:
			return Board{}, fmt.Errorf("%w: illegal symbol %q at cell %d", apperror.ErrInvalidBoard, s[i], i)
		}
	}

	return board, nil
}

func (that Board) String() string {
	cells := make([]byte, BoardSize)
	for i, mark := range that {
		cells[i] = byte(mark)
	}
	return string(cells)
}

// Counts - returns the number of X, O and empty cells on the board.
func (that Board) Counts() (xCount, oCount, emptyCount int) {
	for _, mark := range that {
		switch mark {
		case MarkX:
			xCount++
		case MarkO:
			oCount++
		case EmptyCell:
			emptyCount++
		}
	}
	return xCount, oCount, emptyCount
}

// EmptyCells - returns the indices of all unoccupied cells.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, mark := range that {
		if mark == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*that = board
	return nil
}

// Status is the lifecycle state of a game. It converts to and from its wire
// string only at the serialization boundary.
type Status int

const (
	StatusRunning Status = iota
	StatusXWon
	StatusOWon
	StatusDraw
)

var statusNames = map[Status]string{
	StatusRunning: "RUNNING",
	StatusXWon:    "X_WON",
	StatusOWon:    "O_WON",
	StatusDraw:    "DRAW",
}

// ParseStatus - parses the wire form of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusRunning, fmt.Errorf("unknown game status: %q", s)
}

func (that Status) String() string {
	return statusNames[that]
}

// IsTerminal reports whether the status can no longer change.
func (that Status) IsTerminal() bool {
	return that != StatusRunning
}

func (that Status) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*that = status
	return nil
}

// WinnerStatus - returns the terminal status for a winning mark.
func WinnerStatus(mark Mark) Status {
	if mark == MarkX {
		return StatusXWon
	}
	return StatusOWon
}

// Game is a single refereed match. The ID is generated at creation and never
// reused; once Status is terminal no further move is accepted.
type Game struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Status Status `json:"status"`
}

// NewGame - returns a running game with the given id and board.
func NewGame(id string, board Board) *Game {
	return &Game{
		ID:     id,
		Board:  board,
		Status: StatusRunning,
	}
}

func (that *Game) IsRunning() bool {
	return that.Status == StatusRunning
}
