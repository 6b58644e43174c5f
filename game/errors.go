package game

import "fmt"

// IllegalMoveError is returned when a move targets a cell that is claimed or off the board.
type IllegalMoveError struct {
	Cell   int
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move at cell %d: %s", e.Cell, e.Reason)
}
