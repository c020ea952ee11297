package cubesim

import "math/rand/v2"

// ScramblePolicy selects the move alphabet scrambles are drawn from.
type ScramblePolicy int

const (
	// PolicyQuarterTurns draws from the 12 single quarter turns.
	PolicyQuarterTurns ScramblePolicy = iota
	// PolicyAllTurns draws from all 18 canonical moves.
	PolicyAllTurns
)

func (p ScramblePolicy) String() string {
	switch p {
	case PolicyQuarterTurns:
		return "quarter"
	case PolicyAllTurns:
		return "all"
	default:
		return "unknown"
	}
}

// Alphabet returns the moves a scramble under p is drawn from.
func (p ScramblePolicy) Alphabet() []Move {
	if p == PolicyAllTurns {
		return AllTurns
	}
	return QuarterTurns
}

// Scramble draws length moves uniformly and independently from the policy
// alphabet, applies each to c as it is drawn, and returns them in order.
// The returned slice is the only record of the scramble; keep it to undo it.
func Scramble(c *Cube, length int, rng *rand.Rand, policy ScramblePolicy) []Move {
	if length <= 0 {
		return nil
	}
	alphabet := policy.Alphabet()
	moves := make([]Move, length)
	for i := range moves {
		m := alphabet[rng.IntN(len(alphabet))]
		c.ApplyMove(m)
		moves[i] = m
	}
	return moves
}

// Invert returns the sequence that undoes moves: reversed order, each move
// replaced by its inverse. The input is left untouched.
//
// Applying moves then Invert(moves), or Invert(moves) then moves, leaves any
// cube as it was.
func Invert(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
