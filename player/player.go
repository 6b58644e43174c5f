package player

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Kind identifies how a mover picks its moves.
type Kind int

const (
	Human Kind = iota
	Random
	Engine
)

var kindNames = map[Kind]string{
	Human:  "human",
	Random: "random",
	Engine: "engine",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown mover kind %q", s)
}

// Mover picks the next cell for the side to move. The game loop validates the cell.
type Mover interface {
	Kind() Kind
	NextMove(board game.Board) (int, error)
	// Metric describes the search behind the last move; empty for movers that do not search.
	Metric() metrics.SearchMetric
}
