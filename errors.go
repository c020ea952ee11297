package cubesim

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubesim package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("cubesim: invalid move notation")

	// State errors
	ErrInvalidState  = errors.New("cubesim: invalid cube state")
	ErrUnmappedColor = errors.New("cubesim: facelet color matches no center")

	// Solver errors
	ErrSolverUnavailable = errors.New("cubesim: no external solver configured")
	ErrSolverFailed      = errors.New("cubesim: external solver failed")
	ErrTimeout           = errors.New("cubesim: operation timed out")
)

// Rule names the invariant a manually entered state violated.
type Rule int

const (
	RuleFaceSize   Rule = iota + 1 // a face does not have exactly 9 facelets
	RuleColor                      // a facelet color is outside the palette
	RuleColorCount                 // a color does not appear exactly 9 times
)

func (r Rule) String() string {
	switch r {
	case RuleFaceSize:
		return "face_size"
	case RuleColor:
		return "color"
	case RuleColorCount:
		return "color_count"
	default:
		return "unknown"
	}
}

// ValidationError reports the first invariant violation found in a manually
// entered state. Face and Index are set for RuleFaceSize and RuleColor,
// Color for RuleColor and RuleColorCount, Count for RuleFaceSize (facelets on
// the face) and RuleColorCount (occurrences of the color).
type ValidationError struct {
	Rule  Rule
	Face  Face
	Index int
	Color Color
	Count int
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case RuleFaceSize:
		return fmt.Sprintf("face %s has %d facelets, expected 9", e.Face, e.Count)
	case RuleColor:
		return fmt.Sprintf("invalid color %q at face %s index %d", e.Color.String(), e.Face, e.Index)
	case RuleColorCount:
		return fmt.Sprintf("color %s has %d facelets, expected 9", e.Color, e.Count)
	default:
		return ErrInvalidState.Error()
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidState
}

// MappingError reports a facelet whose color is not the center color of any
// face. It can only happen for states that skipped validation.
type MappingError struct {
	Face  Face
	Index int
	Color Color
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("facelet %s%d color %q does not match any center color", e.Face, e.Index, e.Color.String())
}

func (e *MappingError) Unwrap() error {
	return ErrUnmappedColor
}

// SolverError carries the message of an external solver that rejected its
// input, failed, or did not answer in time.
type SolverError struct {
	Facelets string
	Message  string
	Err      error
}

func (e *SolverError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("solver failed for %s: %v", e.Facelets, e.Err)
	}
	return fmt.Sprintf("solver failed for %s: %s", e.Facelets, e.Message)
}

// Is makes every SolverError match ErrSolverFailed.
func (e *SolverError) Is(target error) bool {
	return target == ErrSolverFailed
}

func (e *SolverError) Unwrap() error {
	return e.Err
}
