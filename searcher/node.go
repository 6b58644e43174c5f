package searcher

import (
	"tictactoe/game"
)

type mctsNode struct {
	board       game.Board
	move        int
	outcome     game.Outcome
	children    []*mctsNode
	unvisited   []*mctsNode
	wins        float64
	simulations int
}

func newMCTSNode(board game.Board, move int, lines game.WinLines) *mctsNode {
	return &mctsNode{
		board:   board,
		move:    move,
		outcome: board.Outcome(lines),
	}
}

func (n *mctsNode) terminal() bool {
	return n.outcome.Terminal()
}

func (n *mctsNode) winRate() float64 {
	if n.simulations == 0 {
		return 0
	}
	return n.wins / float64(n.simulations)
}

// fullyExpanded creates the children on first use and reports whether every one of them
// has been expanded. Terminal nodes are never fully expanded.
func (n *mctsNode) fullyExpanded(lines game.WinLines) (expanded bool, created int) {
	if n.terminal() {
		return false, 0
	}
	if n.children == nil {
		created = n.createChildren(lines)
	}
	return len(n.unvisited) == 0, created
}

func (n *mctsNode) createChildren(lines game.WinLines) int {
	moves := n.board.LegalMoves()
	n.children = make([]*mctsNode, len(moves))
	for i, cell := range moves {
		child, err := n.board.Play(cell)
		if err != nil {
			panic(err)
		}
		n.children[i] = newMCTSNode(child, cell, lines)
	}
	n.unvisited = make([]*mctsNode, len(n.children))
	copy(n.unvisited, n.children)
	return len(n.children)
}

// popUnvisited expands the last not-yet-expanded child.
func (n *mctsNode) popUnvisited() *mctsNode {
	last := len(n.unvisited) - 1
	child := n.unvisited[last]
	n.unvisited = n.unvisited[:last]
	return child
}

// maxUCTChild returns the child with the highest UCT score, the first one on ties.
func (n *mctsNode) maxUCTChild(c float64) *mctsNode {
	policy := newUCT(c, float64(n.simulations))
	var best *mctsNode
	bestScore := 0.0
	for _, child := range n.children {
		score := policy.evaluate(child.wins, float64(child.simulations))
		if best == nil || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// robustChild returns the expanded child with the most simulations, the first one on ties.
func (n *mctsNode) robustChild() *mctsNode {
	var best *mctsNode
	for _, child := range n.children {
		if child.simulations == 0 {
			continue
		}
		if best == nil || child.simulations > best.simulations {
			best = child
		}
	}
	return best
}

func (n *mctsNode) update(reward float64) {
	n.wins += reward
	n.simulations++
}

func (n *mctsNode) findChild(board game.Board) *mctsNode {
	for _, child := range n.children {
		if child.board == board {
			return child
		}
	}
	return nil
}
