package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Minimax is a depth-limited alpha-beta searcher over a tree kept between moves.
type Minimax struct {
	lines          game.WinLines
	depth          int
	evaluate       game.EvaluateFn
	countFreshRoot bool
	root           *searchNode
	metrics        metrics.Collector
	last           metrics.SearchMetric
}

func NewMinimax(size int, options ...Option) (*Minimax, error) {
	c := newConfig(options)
	lines, err := newLines(size)
	if err != nil {
		return nil, err
	}
	if c.depth <= 0 {
		return nil, &ConfigurationError{Setting: "search depth", Value: c.depth}
	}
	return &Minimax{
		lines:          lines,
		depth:          c.depth,
		evaluate:       c.evaluate,
		countFreshRoot: c.countFreshRoot,
		root:           newSearchNode(game.Empty(size), game.NoMove, lines),
		metrics:        c.metrics,
	}, nil
}

// NextMove searches from board, promotes the best child to the new root and returns its move.
func (m *Minimax) NextMove(board game.Board) (int, game.Board, error) {
	if _, err := m.Value(board); err != nil {
		return game.NoMove, game.Board{}, err
	}

	best, err := m.root.bestChild()
	if err != nil {
		return game.NoMove, game.Board{}, err
	}
	m.root = best
	return best.move, best.board, nil
}

// Value searches from board and returns its minimax value without moving the root.
func (m *Minimax) Value(board game.Board) (float64, error) {
	if err := checkBoard(board, m.lines); err != nil {
		return 0, err
	}

	m.metrics.Start("minimax")
	stats := metrics.SearchStats{}
	m.findRoot(board, &stats)
	if m.root.leaf {
		return m.root.value, fmt.Errorf("%w: %s", ErrGameOver, board.Outcome(m.lines))
	}

	value := m.search(m.root, math.Inf(-1), math.Inf(1), m.depth, &stats)

	m.metrics.AddStats(stats)
	m.metrics.SetValue(value)
	m.last = m.metrics.Complete()
	log.Debug().
		Int64("visited", stats.Visited).
		Int64("created", stats.Created).
		Float64("value", value).
		Msgf("minimax searched %d plies", m.depth)
	return value, nil
}

// Metric returns the metric of the last search; empty unless built WithMetrics.
func (m *Minimax) Metric() metrics.SearchMetric {
	return m.last
}

// findRoot reroots the tree at board, reusing the subtree of a matching child.
func (m *Minimax) findRoot(board game.Board, stats *metrics.SearchStats) {
	if m.root.board == board {
		m.metrics.SetTreeReset(false)
		return
	}
	if child := m.root.findChild(board); child != nil {
		m.root = child
		m.metrics.SetTreeReset(false)
		return
	}

	log.Debug().Msg("minimax: replacing tree")
	m.root = newSearchNode(board, game.NoMove, m.lines)
	if m.countFreshRoot {
		stats.Created++
	}
	m.metrics.SetTreeReset(true)
}

// search is fail-soft alpha-beta. It records on node the first child, in move order,
// that reaches the node's final value.
func (m *Minimax) search(node *searchNode, alpha, beta float64, depth int, stats *metrics.SearchStats) float64 {
	stats.Visited++

	if node.leaf {
		return node.value
	}

	node.best = nil
	if depth == 0 {
		node.value = m.evaluate(node.board, m.lines)
		return node.value
	}

	stats.Created += int64(node.expand(m.lines))

	if node.isMaxNode() {
		value := math.Inf(-1)
		for _, child := range node.children {
			v := m.search(child, alpha, beta, depth-1, stats)
			if v > value {
				value = v
				node.best = child
			}
			alpha = math.Max(alpha, value)
			if alpha >= beta {
				break
			}
		}
		node.value = value
	} else {
		value := math.Inf(1)
		for _, child := range node.children {
			v := m.search(child, alpha, beta, depth-1, stats)
			if v < value {
				value = v
				node.best = child
			}
			beta = math.Min(beta, value)
			if alpha >= beta {
				break
			}
		}
		node.value = value
	}
	return node.value
}

// bestChild returns the recorded best child. When every child is a loss for the side to
// move no child improves on the initial bound, and the first child in move order is used.
func (n *searchNode) bestChild() (*searchNode, error) {
	if n.best != nil {
		return n.best, nil
	}
	if len(n.children) == 0 {
		return nil, fmt.Errorf("%w: non-terminal node has no children", ErrSearchInvariant)
	}
	log.Debug().Msg("minimax: every move loses, falling back to the first child")
	return n.children[0], nil
}
