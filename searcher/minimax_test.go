package searcher

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictactoe/game"
)

func playCells(t *testing.T, size int, cells ...int) game.Board {
	t.Helper()
	board := game.Empty(size)
	for _, cell := range cells {
		next, err := board.Play(cell)
		require.NoError(t, err, "Move %d should be legal", cell)
		board = next
	}
	return board
}

// naiveMinimax searches every move without pruning.
func naiveMinimax(board game.Board, lines game.WinLines, depth int) float64 {
	if outcome := board.Outcome(lines); outcome.Terminal() {
		return terminalValue(outcome)
	}
	if depth == 0 {
		return game.Evaluate(board, lines)
	}

	maximizing := board.Turn() == game.First
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	for _, child := range board.Children() {
		v := naiveMinimax(child, lines, depth-1)
		if maximizing {
			value = math.Max(value, v)
		} else {
			value = math.Min(value, v)
		}
	}
	return value
}

// randomPosition plays up to moves random moves, stopping before the game is decided.
func randomPosition(rng *rand.Rand, size, moves int, lines game.WinLines) game.Board {
	board := game.Empty(size)
	for i := 0; i < moves; i++ {
		legal := board.LegalMoves()
		next, err := board.Play(legal[rng.Intn(len(legal))])
		if err != nil {
			panic(err)
		}
		if next.Outcome(lines).Terminal() {
			break
		}
		board = next
	}
	return board
}

func TestNewMinimax(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		engine, err := NewMinimax(3)

		require.NoError(t, err)
		require.Equal(t, DefaultDepth, engine.depth, "Depth should default")
		require.Equal(t, game.Empty(3), engine.root.board, "Root should start at the empty board")
	})

	t.Run("rejects non-positive depth", func(t *testing.T) {
		for _, depth := range []int{0, -1} {
			_, err := NewMinimax(3, WithDepth(depth))

			var configErr *ConfigurationError
			require.ErrorAs(t, err, &configErr, "Depth %d should be rejected", depth)
			require.Equal(t, "search depth", configErr.Setting)
		}
	})

	t.Run("rejects invalid board sizes", func(t *testing.T) {
		for _, size := range []int{0, game.MaxSize + 1} {
			_, err := NewMinimax(size)

			var configErr *ConfigurationError
			require.ErrorAs(t, err, &configErr, "Size %d should be rejected", size)
			require.ErrorIs(t, err, game.ErrBoardSize)
		}
	})
}

func TestMinimaxValue(t *testing.T) {
	t.Run("matches unpruned minimax", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for _, tc := range []struct {
			size, depth int
		}{
			{3, 3}, {3, 4}, {4, 3}, {4, 4},
		} {
			lines, err := game.NewWinLines(tc.size)
			require.NoError(t, err)

			for i := 0; i < 8; i++ {
				board := randomPosition(rng, tc.size, rng.Intn(tc.size*tc.size-1), lines)
				engine, err := NewMinimax(tc.size, WithDepth(tc.depth))
				require.NoError(t, err)

				value, err := engine.Value(board)

				require.NoError(t, err)
				require.Equal(t, naiveMinimax(board, lines, tc.depth), value,
					"Alpha-beta value should equal plain minimax on\n%s", board)
			}
		}
	})

	t.Run("empty 3x3 board is a draw with perfect play", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(9))
		require.NoError(t, err)

		value, err := engine.Value(game.Empty(3))

		require.NoError(t, err)
		require.Equal(t, 0.0, value, "Perfect play should draw")
	})

	t.Run("value does not move the root", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(2))
		require.NoError(t, err)
		board := playCells(t, 3, 4)

		_, err = engine.Value(board)
		require.NoError(t, err)

		require.Equal(t, board, engine.root.board, "Root should stay at the searched board")
	})

	t.Run("uses the configured evaluation function", func(t *testing.T) {
		constant := func(game.Board, game.WinLines) float64 { return 7 }
		engine, err := NewMinimax(3, WithDepth(1), WithEvaluationFn(constant))
		require.NoError(t, err)

		value, err := engine.Value(game.Empty(3))

		require.NoError(t, err)
		require.Equal(t, 7.0, value)
	})
}

func TestMinimaxNextMove(t *testing.T) {
	t.Run("ties go to the lowest cell", func(t *testing.T) {
		// Every reply on the empty 3x3 board evaluates to 0 at depth 1
		engine, err := NewMinimax(3, WithDepth(1))
		require.NoError(t, err)

		cell, next, err := engine.NextMove(game.Empty(3))

		require.NoError(t, err)
		require.Equal(t, 0, cell, "First move in order should win the tie")
		require.Equal(t, playCells(t, 3, 0), next)
	})

	t.Run("takes the winning move", func(t *testing.T) {
		// X X . / O O X / O . . with X to move: only 2 wins, and O threatens it too
		board, err := game.NewBoard(3, 1<<0|1<<1|1<<5, 1<<3|1<<4|1<<6, game.First)
		require.NoError(t, err)
		engine, err := NewMinimax(3, WithDepth(3))
		require.NoError(t, err)

		cell, next, err := engine.NextMove(board)

		require.NoError(t, err)
		require.Equal(t, 2, cell, "Should complete the top row")
		lines, err := game.NewWinLines(3)
		require.NoError(t, err)
		require.Equal(t, game.FirstPlayerWins, next.Outcome(lines))
	})

	t.Run("falls back to the first move when every move loses", func(t *testing.T) {
		// O O . / O X X / . X . with X to move: O wins after any of 2, 6 or 8
		board, err := game.NewBoard(3, 1<<4|1<<5|1<<7, 1<<0|1<<1|1<<3, game.First)
		require.NoError(t, err)
		engine, err := NewMinimax(3, WithDepth(2))
		require.NoError(t, err)

		value, err := engine.Value(board)
		require.NoError(t, err)
		require.Equal(t, math.Inf(-1), value, "Every move should lose")

		cell, _, err := engine.NextMove(board)
		require.NoError(t, err)
		require.Equal(t, 2, cell, "Should fall back to the first legal move")
	})

	t.Run("rejects a decided game", func(t *testing.T) {
		engine, err := NewMinimax(3)
		require.NoError(t, err)
		board := playCells(t, 3, 0, 3, 1, 4, 2)

		cell, _, err := engine.NextMove(board)

		require.ErrorIs(t, err, ErrGameOver)
		require.Equal(t, game.NoMove, cell)
	})

	t.Run("rejects a board of another size", func(t *testing.T) {
		engine, err := NewMinimax(3)
		require.NoError(t, err)

		_, _, err = engine.NextMove(game.Empty(4))

		var configErr *ConfigurationError
		require.ErrorAs(t, err, &configErr)
	})

	t.Run("promotes the chosen child", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(2))
		require.NoError(t, err)

		_, next, err := engine.NextMove(game.Empty(3))

		require.NoError(t, err)
		require.Equal(t, next, engine.root.board, "Chosen child should become the root")
	})
}

func TestMinimaxTreeReuse(t *testing.T) {
	t.Run("reused tree gives the same values as fresh trees", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		lines, err := game.NewWinLines(4)
		require.NoError(t, err)

		reused, err := NewMinimax(4, WithDepth(3))
		require.NoError(t, err)

		board := game.Empty(4)
		for !board.Outcome(lines).Terminal() {
			fresh, err := NewMinimax(4, WithDepth(3))
			require.NoError(t, err)

			expected, err := fresh.Value(board)
			require.NoError(t, err)
			got, err := reused.Value(board)
			require.NoError(t, err)
			require.Equal(t, expected, got, "Values should agree on\n%s", board)

			legal := board.LegalMoves()
			board, err = board.Play(legal[rng.Intn(len(legal))])
			require.NoError(t, err)
		}
	})

	t.Run("reroots to a matching child", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(2), WithMetrics())
		require.NoError(t, err)

		_, err = engine.Value(game.Empty(3))
		require.NoError(t, err)
		child := engine.root.children[4]

		_, err = engine.Value(playCells(t, 3, 4))
		require.NoError(t, err)

		require.Same(t, child, engine.root, "Existing child should become the root")
		require.False(t, engine.Metric().IsTreeReset)
	})

	t.Run("replaces the tree for an unrelated board", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(2), WithMetrics())
		require.NoError(t, err)

		_, err = engine.Value(playCells(t, 3, 0, 8, 4))
		require.NoError(t, err)

		require.Equal(t, playCells(t, 3, 0, 8, 4), engine.root.board)
		require.True(t, engine.Metric().IsTreeReset, "Unrelated board should reset the tree")
	})
}

func TestMinimaxMetrics(t *testing.T) {
	t.Run("counts visits and created nodes", func(t *testing.T) {
		// Depth 1 on the empty 3x3 board: the root and nine children, no cutoffs
		engine, err := NewMinimax(3, WithDepth(1), WithMetrics())
		require.NoError(t, err)

		_, err = engine.Value(game.Empty(3))
		require.NoError(t, err)

		metric := engine.Metric()
		require.Equal(t, "minimax", metric.Engine)
		require.Equal(t, int64(10), metric.Visited)
		require.Equal(t, int64(9), metric.Created)
		require.Equal(t, 0.0, metric.Value)
	})

	t.Run("repeated search creates nothing", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(1), WithMetrics())
		require.NoError(t, err)

		_, err = engine.Value(game.Empty(3))
		require.NoError(t, err)
		_, err = engine.Value(game.Empty(3))
		require.NoError(t, err)

		require.Equal(t, int64(0), engine.Metric().Created, "Children should be reused")
		require.Equal(t, int64(10), engine.Metric().Visited)
	})

	t.Run("fresh root counts when asked", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(1), WithMetrics(), WithCountFreshRoot())
		require.NoError(t, err)

		_, err = engine.Value(playCells(t, 3, 0, 1))
		require.NoError(t, err)

		require.Equal(t, int64(1+7), engine.Metric().Created)
	})

	t.Run("metric is empty without a collector", func(t *testing.T) {
		engine, err := NewMinimax(3, WithDepth(1))
		require.NoError(t, err)

		_, err = engine.Value(game.Empty(3))
		require.NoError(t, err)

		require.Equal(t, int64(0), engine.Metric().Visited)
	})
}

func TestSearchNodeExpand(t *testing.T) {
	lines, err := game.NewWinLines(3)
	require.NoError(t, err)

	t.Run("expands once", func(t *testing.T) {
		node := newSearchNode(playCells(t, 3, 4), game.NoMove, lines)

		require.Equal(t, 8, node.expand(lines))
		require.Equal(t, 0, node.expand(lines), "Second expansion should create nothing")
		for i, child := range node.children {
			require.Equal(t, node.board.LegalMoves()[i], child.move, "Children should follow move order")
		}
	})

	t.Run("terminal boards are leaves", func(t *testing.T) {
		won := newSearchNode(playCells(t, 3, 0, 3, 1, 4, 2), game.NoMove, lines)
		require.True(t, won.leaf)
		require.Equal(t, math.Inf(1), won.value)

		lost := newSearchNode(playCells(t, 3, 0, 3, 1, 4, 8, 5), game.NoMove, lines)
		require.True(t, lost.leaf)
		require.Equal(t, math.Inf(-1), lost.value)

		drawn := newSearchNode(playCells(t, 3, 0, 1, 2, 4, 3, 5, 7, 6, 8), game.NoMove, lines)
		require.True(t, drawn.leaf)
		require.Equal(t, 0.0, drawn.value)
	})

	t.Run("bestChild without children is an invariant violation", func(t *testing.T) {
		node := newSearchNode(game.Empty(3), game.NoMove, lines)

		_, err := node.bestChild()

		require.True(t, errors.Is(err, ErrSearchInvariant))
	})
}
