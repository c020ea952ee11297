package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrations(t *testing.T) {
	t.Run("Should apply every migration once", func(t *testing.T) {
		db := openTestDB(t)

		version, err := db.CurrentVersion()
		require.NoError(t, err)
		assert.Equal(t, len(migrations), version)

		require.NoError(t, db.MigrateUp())
		version, err = db.CurrentVersion()
		require.NoError(t, err)
		assert.Equal(t, len(migrations), version)
	})
}

func TestSessionRepository(t *testing.T) {
	t.Run("Should create, end and fetch sessions", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewSessionRepository(db)

		id, err := repo.Create("first")
		require.NoError(t, err)
		require.NoError(t, repo.SetScramble(id, "R U F'"))

		s, err := repo.Get(id)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.True(t, s.Open())
		require.NotNil(t, s.Notes)
		assert.Equal(t, "first", *s.Notes)
		require.NotNil(t, s.ScrambleText)
		assert.Equal(t, "R U F'", *s.ScrambleText)

		require.NoError(t, repo.End(id, true))
		s, err = repo.Get(id)
		require.NoError(t, err)
		assert.False(t, s.Open())
		assert.True(t, s.Solved)

		assert.Error(t, repo.End(id, true), "ending twice should fail")
	})

	t.Run("Should return nil for an unknown session", func(t *testing.T) {
		repo := NewSessionRepository(openTestDB(t))

		s, err := repo.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, s)

		last, err := repo.GetLast()
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("Should list newest first", func(t *testing.T) {
		repo := NewSessionRepository(openTestDB(t))
		first, err := repo.Create("")
		require.NoError(t, err)
		second, err := repo.Create("")
		require.NoError(t, err)

		sessions, err := repo.List(10)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, second, sessions[0].SessionID)
		assert.Equal(t, first, sessions[1].SessionID)

		last, err := repo.GetLast()
		require.NoError(t, err)
		assert.Equal(t, second, last.SessionID)

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestMoveRepository(t *testing.T) {
	t.Run("Should store moves in order with their kind", func(t *testing.T) {
		db := openTestDB(t)
		sessionID, err := NewSessionRepository(db).Create("")
		require.NoError(t, err)
		repo := NewMoveRepository(db)

		scramble := cubesim.MustParseMoves("R U2 F'")
		require.NoError(t, repo.CreateBatch(sessionID, scramble, 0, 0, KindScramble))
		_, err = repo.Create(sessionID, 3, 120, cubesim.DMove, KindManual)
		require.NoError(t, err)

		next, err := repo.GetNextIndex(sessionID)
		require.NoError(t, err)
		assert.Equal(t, 4, next)

		records, err := repo.GetBySession(sessionID)
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, KindScramble, records[0].Kind)
		assert.Equal(t, KindManual, records[3].Kind)
		assert.Equal(t, "U", records[1].Face)
		assert.Equal(t, 2, records[1].Turn)
		assert.Equal(t, "R U2 F' D", cubesim.FormatMoves(ToMoves(records)))
	})

	t.Run("Should reject a duplicate index and roll back the batch", func(t *testing.T) {
		db := openTestDB(t)
		sessionID, err := NewSessionRepository(db).Create("")
		require.NoError(t, err)
		repo := NewMoveRepository(db)

		require.NoError(t, repo.CreateBatch(sessionID, []cubesim.Move{cubesim.RMove}, 0, 0, KindManual))
		err = repo.CreateBatch(sessionID, cubesim.MustParseMoves("U F"), 1, 0, KindManual)
		require.NoError(t, err)
		err = repo.CreateBatch(sessionID, cubesim.MustParseMoves("L B"), 2, 0, KindManual)
		require.Error(t, err)

		count, err := repo.Count(sessionID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("Should delete moves with their session", func(t *testing.T) {
		db := openTestDB(t)
		sessions := NewSessionRepository(db)
		sessionID, err := sessions.Create("")
		require.NoError(t, err)
		repo := NewMoveRepository(db)
		require.NoError(t, repo.CreateBatch(sessionID, cubesim.SexyMove, 0, 0, KindManual))

		require.NoError(t, sessions.Delete(sessionID))
		count, err := repo.Count(sessionID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestSolutionRepository(t *testing.T) {
	const facelets = "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"

	t.Run("Should cache answers and count hits", func(t *testing.T) {
		repo := NewSolutionRepository(openTestDB(t))

		miss, err := repo.Get(facelets)
		require.NoError(t, err)
		assert.Nil(t, miss)

		require.NoError(t, repo.Put(facelets, "R'", "http"))
		hit, err := repo.Get(facelets)
		require.NoError(t, err)
		require.NotNil(t, hit)
		assert.Equal(t, "R'", hit.Solution)
		assert.Equal(t, "http", hit.Source)
		assert.Equal(t, 1, hit.Hits)

		hit, err = repo.Get(facelets)
		require.NoError(t, err)
		assert.Equal(t, 2, hit.Hits)
	})

	t.Run("Should replace an existing answer", func(t *testing.T) {
		repo := NewSolutionRepository(openTestDB(t))
		require.NoError(t, repo.Put(facelets, "R R R", "command"))
		require.NoError(t, repo.Put(facelets, "R'", "http"))

		hit, err := repo.Get(facelets)
		require.NoError(t, err)
		assert.Equal(t, "R'", hit.Solution)

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Should reject a malformed key", func(t *testing.T) {
		repo := NewSolutionRepository(openTestDB(t))
		assert.Error(t, repo.Put("UUU", "R", "http"))
	})
}
