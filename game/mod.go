package game

import "errors"

// MaxSize is the largest supported board side: each player's bit-plane is a uint64.
const MaxSize = 8

// NoMove marks a board that was not reached by a move (the starting board or a rebuilt root).
const NoMove = -1

var (
	ErrBoardSize = errors.New("board size out of range")
	ErrBoardFull = errors.New("no legal moves left")
)

// Player identifies a side. The first player moves first and is the maximizing side.
type Player int

const (
	First Player = iota
	Second
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == First {
		return "first"
	}
	return "second"
}

// Mark returns the symbol used when rendering boards.
func (p Player) Mark() string {
	if p == First {
		return "X"
	}
	return "O"
}

// EvaluateFn scores a non-terminal board: positive values favour the first player.
type EvaluateFn func(Board, WinLines) float64

func validSize(size int) error {
	if size < 1 || size > MaxSize {
		return ErrBoardSize
	}
	return nil
}
