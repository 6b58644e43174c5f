package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
)

// LocalEngine alternates two movers on one board in process.
type LocalEngine struct {
	lines   game.WinLines
	board   game.Board
	movers  [2]player.Mover
	history []game.Board
}

func NewLocalEngine(size int, first, second player.Mover) (*LocalEngine, error) {
	lines, err := game.NewWinLines(size)
	if err != nil {
		return nil, err
	}
	if first == nil || second == nil {
		return nil, fmt.Errorf("need a mover for each player")
	}

	board := game.Empty(size)
	return &LocalEngine{
		lines:   lines,
		board:   board,
		movers:  [2]player.Mover{first, second},
		history: []game.Board{board},
	}, nil
}

// Run executes the game loop until there's a winner or the board is full.
func (e *LocalEngine) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	startTime := time.Now()
	log.Info().Msgf("%s (%s) vs %s (%s) on %dx%d", game.First, e.movers[0].Kind(), game.Second,
		e.movers[1].Kind(), e.lines.Size(), e.lines.Size())

	var moveMetrics []metrics.MoveMetric
	outcome := e.board.Outcome(e.lines)
	for step := 1; !outcome.Terminal(); step++ {
		side := e.board.Turn()
		mover := e.movers[side]

		cell, err := mover.NextMove(e.board)
		if err != nil {
			return outcome, metrics.GameMetric{}, moveMetrics, fmt.Errorf("%s failed to move: %w", side, err)
		}
		next, err := e.board.Play(cell)
		if err != nil {
			return outcome, metrics.GameMetric{}, moveMetrics, fmt.Errorf("%s played an illegal move: %w", side, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       side.String(),
			Cell:         cell,
			SearchMetric: mover.Metric(),
		})
		log.Debug().Msgf("step %d: %s plays %d\n%s", step, side, cell, next)

		e.board = next
		e.history = append(e.history, next)
		outcome = e.board.Outcome(e.lines)
	}

	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: len(moveMetrics),
		Outcome:    outcome.String(),
	}
	log.Info().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, outcome)
	return outcome, gameMetric, moveMetrics, nil
}

// Board returns the current board.
func (e *LocalEngine) Board() game.Board {
	return e.board
}

// History returns every board of the game so far, starting with the empty board.
func (e *LocalEngine) History() []game.Board {
	history := make([]game.Board, len(e.history))
	copy(history, e.history)
	return history
}
