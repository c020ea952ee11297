package twophase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"

	"github.com/SeamusWaldron/cubesim"
)

// Command runs a local solver executable. The facelet-identity string is
// passed as the last argument and the solution is read from stdout.
type Command struct {
	path string
	args []string
}

// NewCommand creates a client running path with args followed by the
// identity string.
func NewCommand(path string, args ...string) *Command {
	return &Command{path: path, args: args}
}

// Solve implements cubesim.Solver. The process is killed when ctx ends.
func (c *Command) Solve(ctx context.Context, facelets string) (string, error) {
	args := make([]string, 0, len(c.args)+1)
	args = append(args, c.args...)
	args = append(args, facelets)

	cmd := exec.CommandContext(ctx, c.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %v", cubesim.ErrSolverUnavailable, c.path, err)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := string(bytes.TrimSpace(stderr.Bytes()))
		if msg == "" {
			msg = string(bytes.TrimSpace(stdout.Bytes()))
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", &cubesim.SolverError{Facelets: facelets, Message: msg, Err: err}
	}

	return answer(facelets, stdout.String())
}
