package cubesim

// Session owns one cube and the history of moves applied to it since it was
// last solved or reset. A Session is not safe for concurrent use.
type Session struct {
	cube    *Cube
	history []Move
	cfg     *config
	onMove  func(m Move)
}

// NewSession creates a session holding a solved cube.
func NewSession(opts ...Option) *Session {
	return &Session{
		cube: NewCube(),
		cfg:  newConfig(opts),
	}
}

// ResumeSession creates a session by replaying history on a solved cube.
// The replayed moves become the session history.
func ResumeSession(history []Move, opts ...Option) *Session {
	s := NewSession(opts...)
	for _, m := range history {
		s.Apply(m)
	}
	return s
}

// SetMoveCallback sets a callback that fires after every applied move,
// including the moves of scrambles and solutions.
func (s *Session) SetMoveCallback(cb func(m Move)) {
	s.onMove = cb
}

// Cube returns the cube owned by the session for inspection. Mutating it
// directly bypasses the history.
func (s *Session) Cube() *Cube {
	return s.cube
}

// History returns a copy of the recorded moves.
func (s *Session) History() []Move {
	out := make([]Move, len(s.history))
	copy(out, s.history)
	return out
}

// Apply applies a move and records it.
func (s *Session) Apply(m Move) {
	s.cube.ApplyMove(m)
	if s.cfg.moveHistory {
		s.history = append(s.history, m)
	}
	if s.onMove != nil {
		s.onMove(m)
	}
}

// ApplyNotation applies every recognized move of a space-separated string.
// Unrecognized tokens are skipped, logged, and returned.
func (s *Session) ApplyNotation(notation string) ([]Move, []string) {
	moves, skipped := ParseMoves(notation)
	for _, token := range skipped {
		s.cfg.logger.Warn("skipping unrecognized move", "token", token)
	}
	for _, m := range moves {
		s.Apply(m)
	}
	return moves, skipped
}

// Scramble applies length random moves drawn under the configured policy and
// returns them. The moves join the history so Solve can undo them.
func (s *Session) Scramble(length int) []Move {
	moves := Scramble(s.cube, length, s.cfg.rng, s.cfg.policy)
	if s.cfg.moveHistory {
		s.history = append(s.history, moves...)
	}
	if s.onMove != nil {
		for _, m := range moves {
			s.onMove(m)
		}
	}
	s.cfg.logger.Debug("scrambled", "length", length, "policy", s.cfg.policy, "moves", FormatMoves(moves))
	return moves
}

// SolutionPath returns the inverse of the history without applying it.
func (s *Session) SolutionPath() []Move {
	return Invert(s.history)
}

// Solve applies the inverse of the history, clears the history, and returns
// the moves applied. It returns nil when there is nothing to undo.
func (s *Session) Solve() []Move {
	if len(s.history) == 0 {
		return nil
	}
	path := s.SolutionPath()
	for _, m := range path {
		s.cube.ApplyMove(m)
		if s.onMove != nil {
			s.onMove(m)
		}
	}
	s.history = nil
	s.cfg.logger.Debug("solved by inversion", "moves", len(path))
	return path
}

// Undo reverts the most recent recorded move by applying its inverse, and
// drops it from the history. It reports false when the history is empty.
// Undoing until the history is empty is the same as Solve.
func (s *Session) Undo() (Move, bool) {
	if len(s.history) == 0 {
		return Move{}, false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	inv := last.Inverse()
	s.cube.ApplyMove(inv)
	if s.onMove != nil {
		s.onMove(inv)
	}
	return inv, true
}

// Reset restores a solved cube and clears the history.
func (s *Session) Reset() {
	s.cube.Reset()
	s.history = nil
}

// IsSolved returns true if the cube is solved.
func (s *Session) IsSolved() bool {
	return s.cube.IsSolved()
}

// CubeString returns a string representation of the cube.
func (s *Session) CubeString() string {
	return s.cube.String()
}
