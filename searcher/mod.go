package searcher

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Engine picks the next move for the side to move on a board. Each engine owns one
// persistent tree and is not safe for concurrent use.
type Engine interface {
	NextMove(board game.Board) (cell int, next game.Board, err error)
	Metric() metrics.SearchMetric
}

const (
	DefaultDepth    = 5
	DefaultDuration = 10 * time.Second
)

// DefaultExploration is the UCT constant C.
var DefaultExploration = math.Sqrt2

var (
	ErrGameOver        = errors.New("game is already decided")
	ErrSearchInvariant = errors.New("search invariant violated")
)

// ConfigurationError rejects an engine setting at construction time.
type ConfigurationError struct {
	Setting string
	Value   any
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %v: %v", e.Setting, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %v", e.Setting, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type Option func(c *config)

type config struct {
	depth          int
	duration       time.Duration
	episodes       int
	exploration    float64
	seed           uint64
	evaluate       game.EvaluateFn
	countFreshRoot bool
	metrics        metrics.Collector
}

func defaultConfig() config {
	return config{
		depth:       DefaultDepth,
		duration:    DefaultDuration,
		exploration: DefaultExploration,
		seed:        uint64(time.Now().UnixNano()),
		evaluate:    game.Evaluate,
		metrics:     metrics.NewDummyCollector(),
	}
}

// WithDepth sets the minimax search depth in plies.
func WithDepth(depth int) Option {
	return func(c *config) {
		c.depth = depth
	}
}

// WithDuration sets the MCTS wall-clock budget per move.
func WithDuration(duration time.Duration) Option {
	return func(c *config) {
		c.duration = duration
	}
}

// WithEpisodes caps the number of MCTS iterations per move; zero leaves only the time budget.
func WithEpisodes(episodes int) Option {
	return func(c *config) {
		c.episodes = episodes
	}
}

// WithExploration sets the UCT exploration constant C.
func WithExploration(exploration float64) Option {
	return func(c *config) {
		c.exploration = exploration
	}
}

// WithSeed fixes the rollout random source.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func WithEvaluationFn(evaluate game.EvaluateFn) Option {
	return func(c *config) {
		if evaluate != nil {
			c.evaluate = evaluate
		}
	}
}

// WithCountFreshRoot counts a root rebuilt by rerooting as a created node.
func WithCountFreshRoot() Option {
	return func(c *config) {
		c.countFreshRoot = true
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

func newConfig(options []Option) config {
	c := defaultConfig()
	for _, option := range options {
		option(&c)
	}
	return c
}

func newLines(size int) (game.WinLines, error) {
	lines, err := game.NewWinLines(size)
	if err != nil {
		return game.WinLines{}, &ConfigurationError{Setting: "board size", Value: size, Err: err}
	}
	return lines, nil
}

func checkBoard(board game.Board, lines game.WinLines) error {
	if board.Size() != lines.Size() {
		return &ConfigurationError{
			Setting: "board size",
			Value:   board.Size(),
			Err:     fmt.Errorf("engine plays %dx%d boards", lines.Size(), lines.Size()),
		}
	}
	return nil
}
