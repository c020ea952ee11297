package recorder

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// ErrNoActiveSession is returned by operations that need a started session.
var ErrNoActiveSession = errors.New("no active session")

// SessionState represents the current state of a recorder.
type SessionState int

const (
	StateIdle SessionState = iota
	StateActive
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Recorder drives a cubesim.Session and writes every move it applies to the
// session's move log, so a later process can rebuild the same cube and
// history. A Recorder is not safe for concurrent use.
type Recorder struct {
	db        *storage.DB
	stateFile *StateFile
	logger    *log.Logger
	opts      []cubesim.Option

	state     SessionState
	sessionID string
	startTime time.Time
	moveIndex int
	session   *cubesim.Session

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
}

// New creates a recorder. opts configure every cubesim.Session it creates.
// stateFile and logger may be nil.
func New(db *storage.DB, stateFile *StateFile, logger *log.Logger, opts ...cubesim.Option) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		db:          db,
		stateFile:   stateFile,
		logger:      logger,
		opts:        opts,
		state:       StateIdle,
		session:     cubesim.NewSession(opts...),
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
	}
}

// State returns the current recorder state.
func (r *Recorder) State() SessionState {
	return r.state
}

// SessionID returns the current session ID.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Session returns the in-memory session. Moves applied to it directly are
// not recorded.
func (r *Recorder) Session() *cubesim.Session {
	return r.session
}

// Cube returns the current cube.
func (r *Recorder) Cube() *cubesim.Cube {
	return r.session.Cube()
}

// MoveCount returns the number of moves logged in the current session.
func (r *Recorder) MoveCount() int {
	return r.moveIndex
}

// ElapsedMs returns the time since the session started in milliseconds.
func (r *Recorder) ElapsedMs() int64 {
	if r.state != StateActive {
		return 0
	}
	return time.Since(r.startTime).Milliseconds()
}

// Start begins a new session on a solved cube and makes it the active one.
func (r *Recorder) Start(notes string) (string, error) {
	if r.state == StateActive {
		return "", fmt.Errorf("session %s already in progress", r.sessionID)
	}

	sessionID, err := r.sessionRepo.Create(notes)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	r.sessionID = sessionID
	r.startTime = time.Now()
	r.moveIndex = 0
	r.session = cubesim.NewSession(r.opts...)
	r.state = StateActive

	if r.stateFile != nil {
		if err := r.stateFile.SetActiveSession(sessionID); err != nil {
			r.logger.Warn("failed to save active session", "err", err)
		}
	}

	r.logger.Debug("session started", "session", sessionID)
	return sessionID, nil
}

// Resume rebuilds an open session from its move log.
func (r *Recorder) Resume(sessionID string) error {
	s, err := r.sessionRepo.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if s == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if !s.Open() {
		return fmt.Errorf("session %s already ended", sessionID)
	}

	records, err := r.moveRepo.GetBySession(sessionID)
	if err != nil {
		return err
	}

	r.session = r.rebuild(records)
	r.sessionID = sessionID
	r.startTime = s.StartedAt
	r.moveIndex = len(records)
	if len(records) > 0 {
		r.moveIndex = records[len(records)-1].MoveIndex + 1
	}
	r.state = StateActive

	r.logger.Debug("session resumed", "session", sessionID, "moves", len(records))
	return nil
}

// rebuild replays a move log on a solved cube. Solve and undo moves pop the
// history entry they revert, so the rebuilt history is exactly the moves
// still waiting to be undone.
func (r *Recorder) rebuild(records []storage.MoveRecord) *cubesim.Session {
	s := cubesim.NewSession(r.opts...)
	for _, rec := range records {
		m, err := rec.Move()
		if err != nil {
			r.logger.Warn("skipping unreadable move", "index", rec.MoveIndex, "notation", rec.Notation)
			continue
		}

		if rec.Kind.Reverts() {
			history := s.History()
			if n := len(history); n > 0 && history[n-1].Inverse() == m {
				s.Undo()
				continue
			}
			r.logger.Warn("revert does not match history, replaying as a move", "index", rec.MoveIndex, "move", m)
		}
		s.Apply(m)
	}
	return s
}

// Open resumes the active session named in the state file, or starts a new
// one when there is none or it can no longer be resumed. It reports whether
// an existing session was resumed.
func (r *Recorder) Open() (bool, error) {
	if r.state == StateActive {
		return true, nil
	}
	if r.stateFile != nil && r.stateFile.HasActiveSession() {
		id := r.stateFile.ActiveSessionID()
		err := r.Resume(id)
		if err == nil {
			return true, nil
		}
		r.logger.Warn("cannot resume active session, starting a new one", "session", id, "err", err)
	}
	_, err := r.Start("")
	return false, err
}

// Apply applies moves and logs them as manual moves.
func (r *Recorder) Apply(moves ...cubesim.Move) error {
	if r.state != StateActive {
		return ErrNoActiveSession
	}
	for _, m := range moves {
		r.session.Apply(m)
	}
	return r.persist(moves, storage.KindManual)
}

// ApplyNotation applies every recognized move of a notation string and
// returns the applied moves and skipped tokens.
func (r *Recorder) ApplyNotation(notation string) ([]cubesim.Move, []string, error) {
	if r.state != StateActive {
		return nil, nil, ErrNoActiveSession
	}
	moves, skipped := r.session.ApplyNotation(notation)
	return moves, skipped, r.persist(moves, storage.KindManual)
}

// Scramble applies length random moves and logs them as a scramble.
func (r *Recorder) Scramble(length int) ([]cubesim.Move, error) {
	if r.state != StateActive {
		return nil, ErrNoActiveSession
	}
	moves := r.session.Scramble(length)
	if err := r.persist(moves, storage.KindScramble); err != nil {
		return moves, err
	}
	if err := r.sessionRepo.SetScramble(r.sessionID, cubesim.FormatMoves(moves)); err != nil {
		return moves, err
	}
	return moves, nil
}

// Undo reverts the most recent move still in the history.
func (r *Recorder) Undo() (cubesim.Move, bool, error) {
	return r.revert(storage.KindUndo)
}

// SolveStep applies the next move of the solution path. The session stays
// open; call End once the cube is solved.
func (r *Recorder) SolveStep() (cubesim.Move, bool, error) {
	return r.revert(storage.KindSolve)
}

func (r *Recorder) revert(kind storage.MoveKind) (cubesim.Move, bool, error) {
	if r.state != StateActive {
		return cubesim.Move{}, false, ErrNoActiveSession
	}
	m, ok := r.session.Undo()
	if !ok {
		return m, false, nil
	}
	return m, true, r.persist([]cubesim.Move{m}, kind)
}

// SolutionPath returns the moves Solve would apply.
func (r *Recorder) SolutionPath() []cubesim.Move {
	return r.session.SolutionPath()
}

// Solve applies the inverse of the history, logs it, and ends the session.
func (r *Recorder) Solve() ([]cubesim.Move, error) {
	if r.state != StateActive {
		return nil, ErrNoActiveSession
	}
	path := r.session.Solve()
	if err := r.persist(path, storage.KindSolve); err != nil {
		return path, err
	}
	return path, r.End()
}

// End ends the current session, recording whether the cube was solved.
func (r *Recorder) End() error {
	if r.state != StateActive {
		return ErrNoActiveSession
	}

	solved := r.session.IsSolved()
	if err := r.sessionRepo.End(r.sessionID, solved); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	r.state = StateEnded

	if r.stateFile != nil && r.stateFile.ActiveSessionID() == r.sessionID {
		if err := r.stateFile.ClearActiveSession(); err != nil {
			r.logger.Warn("failed to clear active session", "err", err)
		}
	}

	r.logger.Debug("session ended", "session", r.sessionID, "solved", solved, "moves", r.moveIndex)
	return nil
}

func (r *Recorder) persist(moves []cubesim.Move, kind storage.MoveKind) error {
	if len(moves) == 0 {
		return nil
	}
	tsMs := time.Since(r.startTime).Milliseconds()
	if err := r.moveRepo.CreateBatch(r.sessionID, moves, r.moveIndex, tsMs, kind); err != nil {
		return fmt.Errorf("failed to record moves: %w", err)
	}
	r.moveIndex += len(moves)
	return nil
}
