// meta/meta.go
package meta

import "time"

// SIZE defines the default board side.
const SIZE = 3

// DEPTH defines the default minimax depth in plies.
const DEPTH = 5

// DURATION defines the default MCTS time budget per move.
const DURATION = 100 * time.Millisecond

// GAMES defines the number of games per matchup in experiments.
const GAMES = 10

// PARALLEL defines how many experiment games run at once.
const PARALLEL = 8

// OUTPUT_DIR is where experiment records are written.
const OUTPUT_DIR = "results"
