package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "engines")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Kind: "minimax", Depth: 4},
			{ID: 2, Kind: "mcts", Duration: time.Second, Exploration: 1.5, Seed: 3},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "Header plus one row per config")
		require.Equal(t, []string{"1", "minimax", "4", "0s", "0", "0", "0"}, rows[1])
		require.Equal(t, []string{"2", "mcts", "0", "1s", "0", "1.5", "3"}, rows[2])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 1, Agent2: 2,
			GameMetric: GameMetric{StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 9, Outcome: "draw"},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "2", "draw", "9", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{Step: 1, Player: "first", Cell: 4, SearchMetric: SearchMetric{
				Engine: "minimax", Duration: time.Millisecond, Visited: 12, Created: 8, Value: 2, IsTreeReset: true,
			}},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "first", "4", "minimax", "1ms", "12", "8", "0", "2", "true"}, rows[1])
	})
}
