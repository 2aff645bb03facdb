package apperror

import "errors"

var (
	ErrInvalidBoard         = errors.New("invalid board")
	ErrInvalidStartingBoard = errors.New("invalid starting board")
	ErrMoveRejected         = errors.New("move rejected")
	ErrNoAvailableMoves     = errors.New("no available moves")
)
