package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// execute runs the root command with a temporary home directory and database.
func execute(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db=" + filepath.Join(home, "cubesim.db")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default. Flag variables are package
// level, so values from an earlier Execute would otherwise leak.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRecorder(t *testing.T) *recorder.Recorder {
	t.Helper()
	rec := recorder.New(openTestDB(t), nil, nil)
	_, err := rec.Start("")
	require.NoError(t, err)
	return rec
}

// oneMoveR is the identity string of a cube turned once with R.
const oneMoveR = "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderNet(t *testing.T) {
	t.Run("Should draw every facelet of a solved cube", func(t *testing.T) {
		net := renderNet(cubesim.NewCube())
		lines := strings.Split(strings.TrimRight(net, "\n"), "\n")
		require.Len(t, lines, 9)
		for _, color := range cubesim.Palette {
			assert.Equal(t, 9, strings.Count(net, color.String()), "color %s", color)
		}
		assert.True(t, strings.HasPrefix(lines[0], strings.Repeat(" ", 9)))
	})
}

func TestRenderMoves(t *testing.T) {
	t.Run("Should wrap long sequences", func(t *testing.T) {
		moves := cubesim.MustParseMoves(strings.Repeat("R U R' U' ", 10))
		out := renderMoves(moves, 20)
		assert.Greater(t, strings.Count(out, "\n"), 1)
	})

	t.Run("Should render nothing for no moves", func(t *testing.T) {
		assert.Empty(t, strings.TrimSpace(renderMoves(nil, 60)))
	})
}

func TestPlayModel(t *testing.T) {
	t.Run("Should turn faces with lowercase and uppercase keys", func(t *testing.T) {
		rec := newTestRecorder(t)
		m := newPlayModel(rec, 10, time.Millisecond)

		m.Update(runes("r"))
		assert.Equal(t, "R", cubesim.FormatMoves(rec.Session().History()))
		m.Update(runes("R"))
		assert.Equal(t, "R R'", cubesim.FormatMoves(rec.Session().History()))
		assert.True(t, rec.Cube().IsSolved())
		assert.Equal(t, 2, rec.MoveCount())

		view := m.View()
		assert.Contains(t, view, "Moves: 2")
		assert.Contains(t, view, "Time: ")
	})

	t.Run("Should undo the last move", func(t *testing.T) {
		rec := newTestRecorder(t)
		m := newPlayModel(rec, 10, time.Millisecond)

		m.Update(runes("f"))
		m.Update(runes("u"))
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		assert.Equal(t, "F", cubesim.FormatMoves(rec.Session().History()))
		m.Update(runes("z"))
		assert.True(t, rec.Cube().IsSolved())
		assert.Empty(t, rec.Session().History())

		m.Update(runes("z"))
		assert.Equal(t, "Nothing to undo", m.status)
	})

	t.Run("Should replay the solution step by step", func(t *testing.T) {
		rec := newTestRecorder(t)
		first := rec.SessionID()
		m := newPlayModel(rec, 10, time.Millisecond)

		m.Update(runes("s"))
		require.Len(t, rec.Session().History(), 10)
		require.Equal(t, 10, rec.MoveCount())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		require.True(t, m.replaying)

		steps := 0
		for m.replaying {
			m.Update(replayStepMsg{gen: m.gen})
			steps++
			require.LessOrEqual(t, steps, 10)
		}
		assert.Equal(t, 10, steps)
		assert.True(t, rec.Cube().IsSolved())
		assert.NotEqual(t, first, rec.SessionID(), "a finished replay should start a new session")
		assert.Contains(t, m.status, "Solved")
	})

	t.Run("Should drop steps from a paused replay", func(t *testing.T) {
		rec := newTestRecorder(t)
		m := newPlayModel(rec, 10, time.Millisecond)

		m.Update(runes("s"))
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		stale := m.gen
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.False(t, m.replaying)

		m.Update(replayStepMsg{gen: stale})
		assert.Len(t, rec.Session().History(), 10)
	})

	t.Run("Should restart the session", func(t *testing.T) {
		rec := newTestRecorder(t)
		first := rec.SessionID()
		m := newPlayModel(rec, 10, time.Millisecond)

		m.Update(runes("b"))
		m.Update(runes("x"))
		assert.NotEqual(t, first, rec.SessionID())
		assert.True(t, rec.Cube().IsSolved())
		assert.Zero(t, rec.MoveCount())
	})

	t.Run("Should quit", func(t *testing.T) {
		m := newPlayModel(newTestRecorder(t), 10, time.Millisecond)
		_, cmd := m.Update(runes("q"))
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.Contains(t, m.View(), "Session saved")
	})
}

func TestCachedSolver(t *testing.T) {
	t.Run("Should cache the inner solver's answer", func(t *testing.T) {
		db := openTestDB(t)
		var calls int
		s := &cachedSolver{
			inner: cubesim.SolverFunc(func(ctx context.Context, facelets string) (string, error) {
				calls++
				return "R'", nil
			}),
			source: "test",
			repo:   storage.NewSolutionRepository(db),
		}

		answer, err := s.Solve(context.Background(), oneMoveR)
		require.NoError(t, err)
		assert.Equal(t, "R'", answer)
		assert.False(t, s.lastHit)

		answer, err = s.Solve(context.Background(), oneMoveR)
		require.NoError(t, err)
		assert.Equal(t, "R'", answer)
		assert.True(t, s.lastHit)
		assert.Equal(t, 1, calls)
	})

	t.Run("Should report a missing solver on a cache miss", func(t *testing.T) {
		s := &cachedSolver{repo: storage.NewSolutionRepository(openTestDB(t))}
		_, err := s.Solve(context.Background(), oneMoveR)
		assert.ErrorIs(t, err, cubesim.ErrSolverUnavailable)
	})

	t.Run("Should not cache an answer that arrives after the deadline", func(t *testing.T) {
		repo := storage.NewSolutionRepository(openTestDB(t))
		ctx, cancel := context.WithCancel(context.Background())
		s := &cachedSolver{
			inner: cubesim.SolverFunc(func(context.Context, string) (string, error) {
				cancel()
				return "R'", nil
			}),
			repo: repo,
		}

		_, err := s.Solve(ctx, oneMoveR)
		assert.ErrorIs(t, err, context.Canceled)
		n, err := repo.Count()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestBuildSolver(t *testing.T) {
	t.Run("Should prefer the URL", func(t *testing.T) {
		s, source := buildSolver("http://localhost:8080", "solver", time.Second, 0)
		assert.NotNil(t, s)
		assert.Equal(t, "http://localhost:8080", source)
	})

	t.Run("Should split the command", func(t *testing.T) {
		s, source := buildSolver("", "python3 solve.py", time.Second, 0)
		assert.NotNil(t, s)
		assert.Equal(t, "python3", source)
	})

	t.Run("Should return nil when nothing is configured", func(t *testing.T) {
		s, _ := buildSolver("", "  ", time.Second, 0)
		assert.Nil(t, s)
	})
}

func TestCommands(t *testing.T) {
	t.Run("Should move, show, and solve the active session", func(t *testing.T) {
		home := t.TempDir()

		out, err := execute(t, home, "new", "--notes", "first")
		require.NoError(t, err)
		assert.Contains(t, out, "Started session")

		out, err = execute(t, home, "move", "R", "U", "nope", "r")
		require.NoError(t, err)
		assert.Contains(t, out, "Skipped: nope r")
		assert.Contains(t, out, "Applied 2 moves")
		assert.Contains(t, out, "2 moves to undo")

		out, err = execute(t, home, "show")
		require.NoError(t, err)
		assert.Contains(t, out, "2 moves to undo")

		out, err = execute(t, home, "solve")
		require.NoError(t, err)
		assert.Contains(t, out, "Solution (2 moves)")
		assert.Contains(t, out, "SOLVED")

		out, err = execute(t, home, "history")
		require.NoError(t, err)
		assert.Contains(t, out, "solved")
		assert.Contains(t, out, "first")

		out, err = execute(t, home, "history", "show", "--last")
		require.NoError(t, err)
		assert.Contains(t, out, "Manual (2 moves")
		assert.Contains(t, out, "Solve (2 moves")

		out, err = execute(t, home, "export", "moves", "--last", "--kind", "manual")
		require.NoError(t, err)
		assert.Equal(t, "R U\n", out)

		out, err = execute(t, home, "export", "moves", "--last", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"kind": "solve"`)
	})

	t.Run("Should validate entered faces", func(t *testing.T) {
		home := t.TempDir()
		faces := []string{"validate",
			"--up", "WWWWWWWWW", "--right", "RRRRRRRRR", "--front", "GGGGGGGGG",
			"--down", "YYYYYYYYY", "--left", "OOOOOOOOO", "--back", "BBBBBBBBW",
		}

		_, err := execute(t, home, faces...)
		require.Error(t, err)
		assert.ErrorIs(t, err, cubesim.ErrInvalidState)

		faces[len(faces)-1] = "BBBBBBBBB"
		out, err := execute(t, home, faces...)
		require.NoError(t, err)
		assert.Contains(t, out, "Valid")
	})

	t.Run("Should ask the solver service and cache its answer", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte("R' "))
		}))
		defer srv.Close()

		// The cube after a single R turn.
		args := []string{"kociemba", "--solver-url", srv.URL,
			"--up", "WWGWWGWWG", "--right", "RRRRRRRRR", "--front", "GGYGGYGGY",
			"--down", "YYBYYBYYB", "--left", "OOOOOOOOO", "--back", "WBBWBBWBB",
		}

		home := t.TempDir()
		out, err := execute(t, home, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "Facelets: "+oneMoveR)
		assert.Contains(t, out, "Solution (1 moves):")

		out, err = execute(t, home, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "(cached)")
		assert.Equal(t, int32(1), calls.Load())
	})
}
