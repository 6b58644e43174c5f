package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/meta"
	"tictactoe/player"
	"tictactoe/searcher"
)

type config struct {
	size     int
	depth    int
	duration time.Duration
	episodes int
	seed     uint64
}

func main() {
	size := flag.Int("size", meta.SIZE, "Board side")
	first := flag.String("x", "human", "First player: human, random, minimax or mcts")
	second := flag.String("o", "minimax", "Second player: human, random, minimax or mcts")
	depth := flag.Int("depth", meta.DEPTH, "Minimax search depth in plies")
	duration := flag.Duration("duration", meta.DURATION, "MCTS time budget per move")
	episodes := flag.Int("episodes", 0, "MCTS episode limit per move, 0 for none")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	experiment := flag.String("experiment", "", "Run an experiment instead of a game: engines, depth or budget")
	games := flag.Int("games", meta.GAMES, "Games per matchup")
	parallel := flag.Int("parallel", meta.PARALLEL, "Experiment games played at once")
	out := flag.String("out", meta.OUTPUT_DIR, "Experiment output directory")
	debug := flag.Bool("debug", false, "Log every search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	if *experiment != "" {
		err = runExperiment(*experiment, *size, *depth, *duration, *games, *parallel, *out)
	} else {
		c := config{size: *size, depth: *depth, duration: *duration, episodes: *episodes, seed: *seed}
		err = runGame(c, *first, *second)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func runGame(c config, first, second string) error {
	firstMover, err := createMover(c, first, 0)
	if err != nil {
		return err
	}
	secondMover, err := createMover(c, second, 1)
	if err != nil {
		return err
	}

	e, err := engine.NewLocalEngine(c.size, firstMover, secondMover)
	if err != nil {
		return err
	}
	outcome, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s after %d moves\n", e.Board(), outcome, gameMetric.TotalMoves)
	return nil
}

// createMover maps a player flag to a mover; minimax and mcts are both engine movers.
func createMover(c config, name string, offset uint64) (player.Mover, error) {
	switch strings.ToLower(name) {
	case "minimax":
		minimax, err := searcher.NewMinimax(c.size, searcher.WithDepth(c.depth))
		if err != nil {
			return nil, err
		}
		return player.NewEngineMover(minimax), nil
	case "mcts":
		mcts, err := searcher.NewMCTS(c.size,
			searcher.WithDuration(c.duration),
			searcher.WithEpisodes(c.episodes),
			searcher.WithSeed(c.seed+offset))
		if err != nil {
			return nil, err
		}
		return player.NewEngineMover(mcts), nil
	}

	kind, err := player.ParseKind(strings.ToLower(name))
	if err != nil {
		return nil, err
	}
	switch kind {
	case player.Human:
		return player.NewHumanMover(os.Stdin, os.Stdout), nil
	case player.Random:
		return player.NewRandomMover(c.seed + offset), nil
	}
	return nil, fmt.Errorf("player %q needs an engine: use minimax or mcts", name)
}

func runExperiment(name string, size, depth int, duration time.Duration, games, parallel int, out string) error {
	var matchups []experiments.Matchup
	switch name {
	case "engines":
		matchups = experiments.EngineMatchups(depth, duration)
	case "depth":
		matchups = experiments.DepthMatchups([]int{1, 2, 3, 4, 5, 6})
	case "budget":
		matchups = experiments.BudgetMatchups([]time.Duration{duration, 2 * duration, 4 * duration, 8 * duration})
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}

	writer, err := metrics.NewWriter(out, name)
	if err != nil {
		return err
	}
	return experiments.Run(name, size, matchups, games, parallel, writer)
}
