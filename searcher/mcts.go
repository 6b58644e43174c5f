package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// MCTS is a time-bounded UCT searcher over a tree kept between moves.
type MCTS struct {
	lines          game.WinLines
	duration       time.Duration
	episodes       int
	exploration    float64
	countFreshRoot bool
	rng            *rand.Rand
	root           *mctsNode
	metrics        metrics.Collector
	last           metrics.SearchMetric
}

func NewMCTS(size int, options ...Option) (*MCTS, error) {
	c := newConfig(options)
	lines, err := newLines(size)
	if err != nil {
		return nil, err
	}
	if c.duration <= 0 {
		return nil, &ConfigurationError{Setting: "time budget", Value: c.duration}
	}
	if c.episodes < 0 {
		return nil, &ConfigurationError{Setting: "episode limit", Value: c.episodes}
	}
	if c.exploration < 0 {
		return nil, &ConfigurationError{Setting: "exploration constant", Value: c.exploration}
	}
	return &MCTS{
		lines:          lines,
		duration:       c.duration,
		episodes:       c.episodes,
		exploration:    c.exploration,
		countFreshRoot: c.countFreshRoot,
		rng:            rand.New(rand.NewSource(c.seed)),
		root:           newMCTSNode(game.Empty(size), game.NoMove, lines),
		metrics:        c.metrics,
	}, nil
}

// NextMove runs simulations from board until the budget is spent, then promotes the most
// simulated child to the new root and returns its move.
func (m *MCTS) NextMove(board game.Board) (int, game.Board, error) {
	if err := checkBoard(board, m.lines); err != nil {
		return game.NoMove, game.Board{}, err
	}

	m.metrics.Start("mcts")
	stats := metrics.SearchStats{}
	m.findRoot(board, &stats)
	if m.root.terminal() {
		return game.NoMove, game.Board{}, fmt.Errorf("%w: %s", ErrGameOver, m.root.outcome)
	}

	start := time.Now()
	episodes := m.run(&stats)
	elapsed := time.Since(start)

	best := m.root.robustChild()
	if best == nil {
		return game.NoMove, game.Board{}, fmt.Errorf("%w: no child was simulated", ErrSearchInvariant)
	}
	m.root = best

	m.metrics.AddStats(stats)
	m.metrics.SetValue(best.winRate())
	m.last = m.metrics.Complete()
	log.Debug().
		Int("episodes", episodes).
		Int64("visited", stats.Visited).
		Int64("created", stats.Created).
		Dur("duration", elapsed).
		Int("move", best.move).
		Float64("winRate", best.winRate()).
		Msgf("mcts chose move %d (%d/%d simulations)", best.move, best.simulations, episodes)
	return best.move, best.board, nil
}

// Metric returns the metric of the last search; empty unless built WithMetrics.
func (m *MCTS) Metric() metrics.SearchMetric {
	return m.last
}

func (m *MCTS) findRoot(board game.Board, stats *metrics.SearchStats) {
	if m.root.board == board {
		m.metrics.SetTreeReset(false)
		return
	}
	if child := m.root.findChild(board); child != nil {
		m.root = child
		m.metrics.SetTreeReset(false)
		return
	}

	log.Debug().Msg("mcts: replacing tree")
	m.root = newMCTSNode(board, game.NoMove, m.lines)
	if m.countFreshRoot {
		stats.Created++
	}
	m.metrics.SetTreeReset(true)
}

// run simulates until the time budget (or the episode limit) is reached. The clock is only
// checked between complete iterations, and at least one iteration always runs.
func (m *MCTS) run(stats *metrics.SearchStats) int {
	deadline := time.Now().Add(m.duration)
	episodes := 0
	for {
		m.simulate(stats)
		m.metrics.AddEpisode()
		episodes++

		if m.episodes > 0 && episodes >= m.episodes {
			return episodes
		}
		if !time.Now().Before(deadline) {
			return episodes
		}
	}
}

func (m *MCTS) simulate(stats *metrics.SearchStats) {
	path := m.selectThenExpand(stats)
	outcome := m.rollout(path[len(path)-1])
	backup(path, outcome)
	stats.Visited += int64(len(path) - 1)
}

func (m *MCTS) selectThenExpand(stats *metrics.SearchStats) []*mctsNode {
	node := m.root
	path := []*mctsNode{node}
	for {
		expanded, created := node.fullyExpanded(m.lines)
		stats.Created += int64(created)
		if !expanded {
			break
		}
		node = node.maxUCTChild(m.exploration)
		path = append(path, node)
	}
	if !node.terminal() {
		path = append(path, node.popUnvisited())
	}
	return path
}

// rollout plays uniformly random moves from the node's board until the game ends.
// It works on board values only and leaves the tree untouched.
func (m *MCTS) rollout(node *mctsNode) game.Outcome {
	board, outcome := node.board, node.outcome
	for !outcome.Terminal() {
		moves := board.LegalMoves()
		next, err := board.Play(moves[m.rng.Intn(len(moves))])
		if err != nil {
			panic(err)
		}
		board = next
		outcome = board.Outcome(m.lines)
	}
	return outcome
}

// backup credits every node on the path from the point of view of the player who moved
// into it, alternating between the two players at each level.
func backup(path []*mctsNode, outcome game.Outcome) {
	firstReward, secondReward := rewards(outcome)

	current, next := secondReward, firstReward
	if path[0].board.Turn() == game.Second { // The first player moved into the root
		current, next = firstReward, secondReward
	}

	for _, node := range path {
		node.update(current)
		current, next = next, current
	}
}

func rewards(outcome game.Outcome) (first, second float64) {
	switch outcome {
	case game.FirstPlayerWins:
		return Win, Loss
	case game.SecondPlayerWins:
		return Loss, Win
	}
	return Draw, Draw
}
