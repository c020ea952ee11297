package cubesim

import (
	"context"
	"errors"
	"strings"
	"time"
)

// SolvedIdentity is the facelet-identity string of a solved cube.
const SolvedIdentity = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// Solver is an external two-phase solving algorithm. Solve receives a
// 54-character facelet-identity string (faces U, R, F, D, L, B, row-major)
// and returns a solution in canonical move notation.
type Solver interface {
	Solve(ctx context.Context, facelets string) (string, error)
}

// SolverFunc adapts a plain function to the Solver interface.
type SolverFunc func(ctx context.Context, facelets string) (string, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, facelets string) (string, error) {
	return f(ctx, facelets)
}

// IdentityString converts physical colors to face identities: each facelet
// is named after the face whose center carries its color. A *MappingError is
// returned for a color that sits on no center.
func IdentityString(c *Cube) (string, error) {
	centers := make(map[Color]Face, 6)
	for _, face := range Faces {
		centers[c.Facelets[face][4]] = face
	}

	var b strings.Builder
	b.Grow(54)
	for _, face := range Faces {
		for i, color := range c.Facelets[face] {
			id, ok := centers[color]
			if !ok {
				return "", &MappingError{Face: face, Index: i, Color: color}
			}
			b.WriteString(id.String())
		}
	}
	return b.String(), nil
}

// Solution is the outcome of an Adapter.Solve call.
type Solution struct {
	// Facelets is the identity string sent (or not sent) to the solver.
	Facelets string
	// AlreadySolved is set when the cube was solved and the solver was skipped.
	AlreadySolved bool
	// Raw is the solver output, verbatim.
	Raw string
	// Moves is Raw parsed into moves. Tokens that are not canonical are skipped.
	Moves []Move
}

// Adapter bridges a Cube to an external Solver.
type Adapter struct {
	solver Solver
	cfg    *config
}

// NewAdapter creates an adapter for s. A nil solver is allowed; Solve then
// reports ErrSolverUnavailable for any unsolved cube.
func NewAdapter(s Solver, opts ...Option) *Adapter {
	return &Adapter{solver: s, cfg: newConfig(opts)}
}

// Solve maps c to its identity string and asks the external solver for a
// solution. A solved cube short-circuits without calling the solver.
//
// The solver call is bounded by the configured timeout and by ctx. Solve
// returns a *SolverError as soon as either ends, wrapping ErrTimeout when the
// deadline passed, even if the solver itself keeps running.
func (a *Adapter) Solve(ctx context.Context, c *Cube) (Solution, error) {
	facelets, err := IdentityString(c)
	if err != nil {
		return Solution{}, err
	}
	if facelets == SolvedIdentity {
		a.cfg.logger.Debug("cube already solved, skipping solver")
		return Solution{Facelets: facelets, AlreadySolved: true}, nil
	}
	if a.solver == nil {
		return Solution{Facelets: facelets}, ErrSolverUnavailable
	}

	raw, err := a.call(ctx, facelets)
	if err != nil {
		return Solution{Facelets: facelets}, err
	}

	moves, skipped := ParseMoves(raw)
	if len(skipped) > 0 {
		a.cfg.logger.Warn("solver returned unrecognized tokens", "tokens", skipped)
	}
	return Solution{Facelets: facelets, Raw: raw, Moves: moves}, nil
}

type solveResult struct {
	raw string
	err error
}

func (a *Adapter) call(ctx context.Context, facelets string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.solveTimeout)
	defer cancel()

	start := time.Now()
	a.cfg.logger.Debug("calling external solver", "facelets", facelets, "timeout", a.cfg.solveTimeout)

	done := make(chan solveResult, 1)
	go func() {
		raw, err := a.solver.Solve(ctx, facelets)
		done <- solveResult{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &SolverError{Facelets: facelets, Message: "no answer within " + a.cfg.solveTimeout.String(), Err: ErrTimeout}
		}
		return "", &SolverError{Facelets: facelets, Message: ctx.Err().Error(), Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			var se *SolverError
			if errors.As(res.err, &se) {
				return "", se
			}
			if errors.Is(res.err, ErrSolverUnavailable) {
				return "", res.err
			}
			if errors.Is(res.err, context.DeadlineExceeded) {
				return "", &SolverError{Facelets: facelets, Message: res.err.Error(), Err: ErrTimeout}
			}
			return "", &SolverError{Facelets: facelets, Message: res.err.Error(), Err: res.err}
		}
		a.cfg.logger.Debug("external solver answered", "elapsed", time.Since(start))
		return res.raw, nil
	}
}
