package game

import "fmt"

// Outcome is the result of a board. It is always derived from a board, never stored on it.
type Outcome int

const (
	Undecided Outcome = iota
	FirstPlayerWins
	SecondPlayerWins
	Draw
)

var outcomeNames = map[Outcome]string{
	Undecided:        "undecided",
	FirstPlayerWins:  "first-player-wins",
	SecondPlayerWins: "second-player-wins",
	Draw:             "draw",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Terminal reports whether the game is over.
func (o Outcome) Terminal() bool {
	return o != Undecided
}

// Winner returns the winning player of a decided, non-drawn game.
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case FirstPlayerWins:
		return First, true
	case SecondPlayerWins:
		return Second, true
	}
	return First, false
}

func (o Outcome) MarshalText() ([]byte, error) {
	name, ok := outcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(name), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func ParseOutcome(s string) (Outcome, error) {
	for outcome, name := range outcomeNames {
		if name == s {
			return outcome, nil
		}
	}
	return Undecided, fmt.Errorf("unknown outcome %q", s)
}

// Outcome scans every win line for both players, then checks for a full board.
func (b Board) Outcome(lines WinLines) Outcome {
	for _, mask := range lines.masks {
		if b.first&mask == mask {
			return FirstPlayerWins
		}
		if b.second&mask == mask {
			return SecondPlayerWins
		}
	}
	if b.Full() {
		return Draw
	}
	return Undecided
}
