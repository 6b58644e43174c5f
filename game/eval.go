package game

import "math/bits"

// Evaluate scores a non-terminal board from the first player's point of view as the sum of
// a tempo term (+1 when the first player is to move, -1 otherwise) and a connectivity term:
// the first player's best open line minus the second player's best open line, where a line
// counts the player's pieces on it and is worth zero once the opponent has a piece on it.
func Evaluate(b Board, lines WinLines) float64 {
	return evaluateTurn(b) + evaluateConnectivity(b, lines)
}

func evaluateTurn(b Board) float64 {
	if b.turn == First {
		return 1
	}
	return -1
}

func evaluateConnectivity(b Board, lines WinLines) float64 {
	return float64(maxConnected(b.first, b.second, lines) - maxConnected(b.second, b.first, lines))
}

func maxConnected(pieces, enemy uint64, lines WinLines) int {
	best := 0
	for _, mask := range lines.masks {
		if enemy&mask != 0 {
			continue
		}
		if count := bits.OnesCount64(pieces & mask); count > best {
			best = count
		}
	}
	return best
}
