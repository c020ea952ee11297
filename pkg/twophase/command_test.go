package twophase

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommand_Solve(t *testing.T) {
	t.Run("Should pass the identity string as the last argument", func(t *testing.T) {
		requireShell(t)
		// $1 is the identity string; sh -c takes $0 from the next argument.
		cmd := NewCommand("sh", "-c", `test "$1" = "`+oneMoveR+`" && echo "R'"`, "solver")

		out, err := cmd.Solve(t.Context(), oneMoveR)
		require.NoError(t, err)
		assert.Equal(t, "R'", out)
	})

	t.Run("Should report stderr of a failing solver", func(t *testing.T) {
		requireShell(t)
		cmd := NewCommand("sh", "-c", `echo "bad facelets" >&2; exit 2`, "solver")

		_, err := cmd.Solve(t.Context(), oneMoveR)
		var se *cubesim.SolverError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "bad facelets", se.Message)
		assert.ErrorIs(t, err, cubesim.ErrSolverFailed)
	})

	t.Run("Should turn an error answer on stdout into a SolverError", func(t *testing.T) {
		requireShell(t)
		cmd := NewCommand("sh", "-c", `echo "Error 1: There is not exactly one facelet of each colour"`, "solver")

		_, err := cmd.Solve(t.Context(), oneMoveR)
		assert.ErrorIs(t, err, cubesim.ErrSolverFailed)
	})

	t.Run("Should report a missing executable as unavailable", func(t *testing.T) {
		_, err := NewCommand("cubesim-no-such-solver").Solve(t.Context(), oneMoveR)
		assert.ErrorIs(t, err, cubesim.ErrSolverUnavailable)
	})

	t.Run("Should time out through the adapter", func(t *testing.T) {
		requireShell(t)
		cmd := NewCommand("sh", "-c", "sleep 5", "solver")
		c := cubesim.NewCube()
		c.ApplyMove(cubesim.RMove)

		adapter := cubesim.NewAdapter(cmd, cubesim.WithSolveTimeout(100*time.Millisecond))
		_, err := adapter.Solve(context.Background(), c)
		assert.ErrorIs(t, err, cubesim.ErrTimeout)
	})
}
