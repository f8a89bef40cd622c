package model

import "errors"

// The engine itself never returns these; move generation filters off-board
// squares and reports illegality through empty sets and IsLegal. They are
// raised by Game, which guards the unchecked mutators.
var (
	ErrOutOfBounds    = errors.New("square out of bounds")
	ErrIllegalMove    = errors.New("illegal move")
	ErrEmptySelection = errors.New("no piece on square")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game is over")
)
