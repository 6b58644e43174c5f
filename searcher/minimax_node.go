package searcher

import (
	"math"

	"tictactoe/game"
)

type searchNode struct {
	board    game.Board
	move     int
	value    float64
	leaf     bool // Terminal board: value is final and the node is never expanded
	children []*searchNode
	best     *searchNode
}

func newSearchNode(board game.Board, move int, lines game.WinLines) *searchNode {
	node := &searchNode{board: board, move: move}
	if outcome := board.Outcome(lines); outcome.Terminal() {
		node.value = terminalValue(outcome)
		node.leaf = true
	}
	return node
}

func terminalValue(outcome game.Outcome) float64 {
	switch outcome {
	case game.FirstPlayerWins:
		return math.Inf(1)
	case game.SecondPlayerWins:
		return math.Inf(-1)
	}
	return 0
}

func (n *searchNode) isMaxNode() bool {
	return n.board.Turn() == game.First
}

// expand materializes the children once and returns how many were created.
func (n *searchNode) expand(lines game.WinLines) int {
	if n.children != nil {
		return 0
	}
	moves := n.board.LegalMoves()
	n.children = make([]*searchNode, len(moves))
	for i, cell := range moves {
		child, err := n.board.Play(cell)
		if err != nil {
			panic(err)
		}
		n.children[i] = newSearchNode(child, cell, lines)
	}
	return len(moves)
}

func (n *searchNode) findChild(board game.Board) *searchNode {
	for _, child := range n.children {
		if child.board == board {
			return child
		}
	}
	return nil
}
