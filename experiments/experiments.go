package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
)

// Matchup pairs two agents. Games alternate which of them moves first.
type Matchup struct {
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays games per matchup, at most parallel at a time, and writes every agent config,
// game record and move record through writer. Every game builds its own engines.
func Run(name string, size int, matchups []Matchup, games, parallel int, writer *metrics.Writer) error {
	if games <= 0 {
		return fmt.Errorf("need at least one game per matchup, got %d", games)
	}
	if _, err := game.NewWinLines(size); err != nil {
		return err
	}

	log.Info().Msgf("starting %s experiment...", name)
	results := make([]gameResult, len(matchups)*games)

	g := errgroup.Group{}
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for mi, matchup := range matchups {
		for i := 0; i < games; i++ {
			mi, i := mi, i
			id := mi*games + i + 1
			first, second := matchup.Agent1, matchup.Agent2
			if i%2 == 1 {
				first, second = second, first
			}
			g.Go(func() error {
				log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchups), i+1, games)

				result, err := runGame(id, size, first, second, uint64(i))
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				results[id-1] = result

				log.Info().Msgf("completed matchup %d of %d game %d: %s", mi+1, len(matchups), i+1, result.record.Outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msgf("completed %s experiment", name)

	return write(writer, matchups, results)
}

func write(writer *metrics.Writer, matchups []Matchup, results []gameResult) error {
	if err := writer.WriteAgentConfigs(agentConfigs(matchups)); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, result := range results {
		gameRecords = append(gameRecords, result.record)
		moveRecords = append(moveRecords, result.moves...)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// agentConfigs lists each agent once, in order of first appearance.
func agentConfigs(matchups []Matchup) []metrics.AgentConfig {
	seen := map[int]bool{}
	configs := []metrics.AgentConfig{}
	for _, matchup := range matchups {
		for _, config := range []metrics.AgentConfig{matchup.Agent1, matchup.Agent2} {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
	}
	return configs
}

// runGame plays one game; the offset shifts both agents' seeds so repeated games differ.
func runGame(id, size int, first, second metrics.AgentConfig, offset uint64) (gameResult, error) {
	firstMover, err := createMover(size, first, offset)
	if err != nil {
		return gameResult{}, err
	}
	secondMover, err := createMover(size, second, offset)
	if err != nil {
		return gameResult{}, err
	}

	e, err := engine.NewLocalEngine(size, firstMover, secondMover)
	if err != nil {
		return gameResult{}, err
	}
	_, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return gameResult{}, err
	}

	result := gameResult{
		record: metrics.GameRecord{
			ID:         id,
			Agent1:     first.ID,
			Agent2:     second.ID,
			GameMetric: gameMetric,
		},
		moves: make([]metrics.MoveRecord, 0, len(moveMetrics)),
	}
	for _, mm := range moveMetrics {
		result.moves = append(result.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return result, nil
}

func createMover(size int, config metrics.AgentConfig, offset uint64) (player.Mover, error) {
	seed := config.Seed + offset
	switch config.Kind {
	case "random":
		return player.NewRandomMover(seed), nil
	case "minimax":
		options := []searcher.Option{searcher.WithMetrics()}
		if config.Depth > 0 {
			options = append(options, searcher.WithDepth(config.Depth))
		}
		minimax, err := searcher.NewMinimax(size, options...)
		if err != nil {
			return nil, err
		}
		return player.NewEngineMover(minimax), nil
	case "mcts":
		options := []searcher.Option{searcher.WithMetrics(), searcher.WithSeed(seed)}
		if config.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(config.Episodes))
		}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		if config.Exploration > 0 {
			options = append(options, searcher.WithExploration(config.Exploration))
		}
		mcts, err := searcher.NewMCTS(size, options...)
		if err != nil {
			return nil, err
		}
		return player.NewEngineMover(mcts), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}

// EngineMatchups pits minimax and MCTS against each other and against a random baseline.
func EngineMatchups(depth int, duration time.Duration) []Matchup {
	random := metrics.AgentConfig{ID: 0, Kind: "random", Seed: 1}
	minimax := metrics.AgentConfig{ID: 1, Kind: "minimax", Depth: depth}
	mcts := metrics.AgentConfig{ID: 2, Kind: "mcts", Duration: duration, Exploration: searcher.DefaultExploration, Seed: 2}
	return []Matchup{
		{Agent1: minimax, Agent2: mcts},
		{Agent1: minimax, Agent2: random},
		{Agent1: mcts, Agent2: random},
	}
}

// DepthMatchups pairs minimax at each depth against the shallowest one.
func DepthMatchups(depths []int) []Matchup {
	if len(depths) == 0 {
		return nil
	}
	baseline := metrics.AgentConfig{ID: 0, Kind: "minimax", Depth: depths[0]}
	matchups := []Matchup{}
	for i, depth := range depths[1:] {
		config := metrics.AgentConfig{ID: i + 1, Kind: "minimax", Depth: depth}
		matchups = append(matchups, Matchup{Agent1: baseline, Agent2: config})
	}
	return matchups
}

// BudgetMatchups pairs MCTS at each time budget against the smallest one.
func BudgetMatchups(durations []time.Duration) []Matchup {
	if len(durations) == 0 {
		return nil
	}
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Duration: durations[0], Exploration: searcher.DefaultExploration}
	matchups := []Matchup{}
	for i, duration := range durations[1:] {
		config := metrics.AgentConfig{ID: i + 1, Kind: "mcts", Duration: duration, Exploration: searcher.DefaultExploration, Seed: uint64(i + 1)}
		matchups = append(matchups, Matchup{Agent1: baseline, Agent2: config})
	}
	return matchups
}
