package cubesim

import (
	"fmt"
	"strings"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

func (t Turn) String() string {
	switch t {
	case CW:
		return "cw"
	case CCW:
		return "ccw"
	case Double:
		return "double"
	default:
		return "?"
	}
}

// Move represents a single face turn.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return m.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
		// Double is its own inverse
	}
	return inv
}

// IsQuarter reports whether the move is a single quarter turn.
func (m Move) IsQuarter() bool {
	return m.Turn == CW || m.Turn == CCW
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error wrapping ErrInvalidNotation if the token is not canonical.
func ParseMove(s string) (Move, error) {
	token := strings.TrimSpace(s)
	if len(token) == 0 {
		return Move{}, fmt.Errorf("%w: empty token", ErrInvalidNotation)
	}

	// Lowercase letters denote wide turns, which are not supported.
	face, ok := ParseFace(rune(token[0]))
	if !ok || token[0] >= 'a' {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, token)
	}

	turn := CW // Default is clockwise
	switch token[1:] {
	case "":
	case "'":
		turn = CCW
	case "2":
		turn = Double
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, token)
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Unrecognized tokens are skipped and returned so the caller can report them.
func ParseMoves(s string) ([]Move, []string) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	var skipped []string

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			skipped = append(skipped, part)
			continue
		}
		moves = append(moves, move)
	}

	return moves, skipped
}

// MustParseMoves parses a sequence and panics on any unrecognized token.
// Intended for constants and tests.
func MustParseMoves(s string) []Move {
	moves, skipped := ParseMoves(s)
	if len(skipped) > 0 {
		panic(fmt.Sprintf("cubesim: invalid moves %v in %q", skipped, s))
	}
	return moves
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
