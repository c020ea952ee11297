package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesim"
)

// MoveKind records why a move was applied.
type MoveKind string

const (
	KindManual   MoveKind = "manual"
	KindScramble MoveKind = "scramble"
	KindSolve    MoveKind = "solve"
	KindUndo     MoveKind = "undo"
)

// Reverts reports whether moves of this kind undo earlier history.
func (k MoveKind) Reverts() bool {
	return k == KindSolve || k == KindUndo
}

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Face      string
	Turn      int
	Notation  string
	Kind      MoveKind
}

// Move converts the record back to a cube move.
func (m MoveRecord) Move() (cubesim.Move, error) {
	return cubesim.ParseMove(m.Notation)
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, move_index, ts_ms, face, turn, notation, kind)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Create creates a new move and returns its ID.
func (r *MoveRepository) Create(sessionID string, moveIndex int, tsMs int64, move cubesim.Move, kind MoveKind) (int64, error) {
	result, err := r.db.Exec(insertMove,
		sessionID, moveIndex, tsMs, move.Face.String(), int(move.Turn), move.Notation(), string(kind))
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch creates multiple moves of one kind in a single transaction,
// numbered from startIndex.
func (r *MoveRepository) CreateBatch(sessionID string, moves []cubesim.Move, startIndex int, tsMs int64, kind MoveKind) error {
	if len(moves) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(insertMove)
		if err != nil {
			return fmt.Errorf("failed to prepare move insert: %w", err)
		}
		defer stmt.Close()

		for i, move := range moves {
			_, err := stmt.Exec(sessionID, startIndex+i, tsMs, move.Face.String(), int(move.Turn), move.Notation(), string(kind))
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, face, turn, notation, kind
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		var kind string
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Face, &m.Turn, &m.Notation, &kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		m.Kind = MoveKind(kind)
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// GetNextIndex returns the next move index for a session.
func (r *MoveRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts MoveRecords to cube moves. Records whose notation no
// longer parses are skipped.
func ToMoves(records []MoveRecord) []cubesim.Move {
	moves := make([]cubesim.Move, 0, len(records))
	for _, r := range records {
		m, err := r.Move()
		if err != nil {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}
