package cubesim

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", RMove},
		{"R'", RPrime},
		{"R2", R2},
		{"B2", B2},
		{" D ", DMove},
		{"L'", LPrime},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoveRejectsUnknownTokens(t *testing.T) {
	for _, in := range []string{"", "X", "R3", "R''", "M", "Rw", "x'", "r", "u2", "F`", "B2'"} {
		_, err := ParseMove(in)
		if !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestNotationRoundTrip(t *testing.T) {
	for _, m := range AllTurns {
		got, err := ParseMove(m.Notation())
		if err != nil || got != m {
			t.Errorf("ParseMove(%q) = %v, %v", m.Notation(), got, err)
		}
	}
}

func TestInverse(t *testing.T) {
	if RMove.Inverse() != RPrime {
		t.Error("R inverse should be R'")
	}
	if RPrime.Inverse() != RMove {
		t.Error("R' inverse should be R")
	}
	if R2.Inverse() != R2 {
		t.Error("R2 inverse should be R2")
	}
}

func TestFormatMoves(t *testing.T) {
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q", got)
	}
	if got := FormatMoves(TPerm); got != "R U R' U' R' F R2 U' R' U' R U R' F'" {
		t.Errorf("FormatMoves(TPerm) = %q", got)
	}
}

func TestMustParseMovesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseMoves should panic on an unknown token")
		}
	}()
	MustParseMoves("R Q")
}
