package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics without parent simulations", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(DefaultExploration, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("win rate plus exploration bonus", func(t *testing.T) {
		policy := newUCT(math.Sqrt2, 100)

		got := policy.evaluate(6, 10)

		expected := 0.6 + math.Sqrt2*math.Sqrt(math.Log(100)/10)
		require.InDelta(t, expected, got, 1e-9, "Should compute w/n + C*sqrt(ln(N)/n)")
	})

	t.Run("zero exploration is the win rate", func(t *testing.T) {
		policy := newUCT(0, 50)

		require.Equal(t, 0.25, policy.evaluate(2.5, 10))
	})

	t.Run("single parent simulation has no bonus", func(t *testing.T) {
		// ln(1) = 0
		policy := newUCT(math.Sqrt2, 1)

		require.Equal(t, 1.0, policy.evaluate(1, 1))
	})

	t.Run("panics without child simulations", func(t *testing.T) {
		policy := newUCT(DefaultExploration, 100)

		require.Panics(t, func() {
			policy.evaluate(1, 0)
		}, "Should panic when n is 0")
	})

	t.Run("bonus grows with parent simulations", func(t *testing.T) {
		few := newUCT(DefaultExploration, 100).evaluate(5, 10)
		many := newUCT(DefaultExploration, 1000).evaluate(5, 10)

		require.Greater(t, many, few, "More parent simulations should raise the bonus")
	})

	t.Run("bonus shrinks with child simulations", func(t *testing.T) {
		policy := newUCT(DefaultExploration, 100)

		// Same win rate, more simulations
		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(10, 20),
			"More child simulations should lower the bonus")
	})
}
