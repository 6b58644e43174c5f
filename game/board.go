package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Board is an immutable N×N position: one bit-plane per player plus the side to move.
// Boards are comparable with ==, which compares planes, turn and size.
type Board struct {
	first  uint64
	second uint64
	turn   Player
	size   uint8
}

// Empty returns the starting board for the given size. The size is not validated;
// use NewWinLines (or an engine constructor) to reject unsupported sizes.
func Empty(size int) Board {
	return Board{size: uint8(size)}
}

// NewBoard rebuilds a board from its bit-plane contents.
func NewBoard(size int, first, second uint64, turn Player) (Board, error) {
	if err := validSize(size); err != nil {
		return Board{}, err
	}
	if first&second != 0 {
		return Board{}, fmt.Errorf("cells %#x claimed by both players", first&second)
	}
	if outside := (first | second) &^ cellMask(size); outside != 0 {
		return Board{}, fmt.Errorf("cells %#x lie outside a %dx%d board", outside, size, size)
	}
	if turn != First && turn != Second {
		return Board{}, fmt.Errorf("unknown side to move %d", turn)
	}
	return Board{first: first, second: second, turn: turn, size: uint8(size)}, nil
}

func cellMask(size int) uint64 {
	cells := size * size
	if cells >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<cells - 1
}

func (b Board) Size() int {
	return int(b.size)
}

func (b Board) Cells() int {
	return int(b.size) * int(b.size)
}

// Turn returns the side to move.
func (b Board) Turn() Player {
	return b.turn
}

// Plane returns the bit-plane of the given player.
func (b Board) Plane(p Player) uint64 {
	if p == First {
		return b.first
	}
	return b.second
}

func (b Board) Occupied() uint64 {
	return b.first | b.second
}

// Full reports whether every cell is claimed.
func (b Board) Full() bool {
	return b.Occupied() == cellMask(b.Size())
}

// Owner returns the player holding the cell, if any.
func (b Board) Owner(cell int) (Player, bool) {
	bit := uint64(1) << cell
	switch {
	case b.first&bit != 0:
		return First, true
	case b.second&bit != 0:
		return Second, true
	}
	return First, false
}

// Moves returns the number of pieces on the board.
func (b Board) Moves() int {
	return bits.OnesCount64(b.Occupied())
}

// LegalMoves returns every unclaimed cell in ascending order.
func (b Board) LegalMoves() []int {
	free := cellMask(b.Size()) &^ b.Occupied()
	moves := make([]int, 0, bits.OnesCount64(free))
	for free != 0 {
		moves = append(moves, bits.TrailingZeros64(free))
		free &= free - 1
	}
	return moves
}

// Play claims the cell for the side to move and passes the turn.
func (b Board) Play(cell int) (Board, error) {
	if cell < 0 || cell >= b.Cells() {
		return Board{}, &IllegalMoveError{Cell: cell, Reason: "off the board"}
	}
	bit := uint64(1) << cell
	if b.Occupied()&bit != 0 {
		return Board{}, &IllegalMoveError{Cell: cell, Reason: "already claimed"}
	}
	next := b
	if b.turn == First {
		next.first |= bit
	} else {
		next.second |= bit
	}
	next.turn = b.turn.Opponent()
	return next, nil
}

// Children returns the successor of every legal move, in ascending cell order.
// Search tie-breaking depends on this order.
func (b Board) Children() []Board {
	moves := b.LegalMoves()
	children := make([]Board, len(moves))
	for i, cell := range moves {
		children[i], _ = b.Play(cell)
	}
	return children
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if p, ok := b.Owner(row*b.Size() + col); ok {
				sb.WriteString(p.Mark())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
