package player

import (
	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type RandomMover struct {
	rng *rand.Rand
}

func NewRandomMover(seed uint64) *RandomMover {
	return &RandomMover{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomMover) Kind() Kind {
	return Random
}

// NextMove picks a legal move uniformly at random.
func (r *RandomMover) NextMove(board game.Board) (int, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, game.ErrBoardFull
	}
	return moves[r.rng.Intn(len(moves))], nil
}

func (r *RandomMover) Metric() metrics.SearchMetric {
	return metrics.SearchMetric{}
}
