package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type HumanMover struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewHumanMover reads one cell index per line from in and prompts on out.
func NewHumanMover(in io.Reader, out io.Writer) *HumanMover {
	return &HumanMover{scanner: bufio.NewScanner(in), out: out}
}

func (h *HumanMover) Kind() Kind {
	return Human
}

func (h *HumanMover) NextMove(board game.Board) (int, error) {
	fmt.Fprintf(h.out, "%s%s to move, cell 0-%d: ", board, board.Turn().Mark(), board.Cells()-1)

	if !h.scanner.Scan() {
		if err := h.scanner.Err(); err != nil {
			return game.NoMove, fmt.Errorf("failed to read move: %w", err)
		}
		return game.NoMove, io.ErrUnexpectedEOF
	}

	text := strings.TrimSpace(h.scanner.Text())
	cell, err := strconv.Atoi(text)
	if err != nil {
		return game.NoMove, fmt.Errorf("invalid cell %q: %w", text, err)
	}
	if _, err := board.Play(cell); err != nil {
		return game.NoMove, err
	}
	return cell, nil
}

func (h *HumanMover) Metric() metrics.SearchMetric {
	return metrics.SearchMetric{}
}
