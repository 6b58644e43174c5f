package player

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

// EngineMover plays the moves of a search engine.
type EngineMover struct {
	engine searcher.Engine
}

func NewEngineMover(engine searcher.Engine) *EngineMover {
	return &EngineMover{engine: engine}
}

func (e *EngineMover) Kind() Kind {
	return Engine
}

func (e *EngineMover) NextMove(board game.Board) (int, error) {
	cell, _, err := e.engine.NextMove(board)
	return cell, err
}

func (e *EngineMover) Metric() metrics.SearchMetric {
	return e.engine.Metric()
}
