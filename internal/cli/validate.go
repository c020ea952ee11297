package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	faceFlags = map[cubesim.Face]*string{}

	solverURL     string
	solverCommand string
	solverTimeout time.Duration
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a manually entered cube state",
	Long: `Check that a cube state entered face by face is physically plausible:
every face has 9 facelets, every facelet is one of W R G Y O B, and every
color appears exactly 9 times.

Each face is read left to right, top to bottom, as seen when looking at it.

Example:
  cubesim validate --up WWWWWWWWW --right RRRRRRRRR --front GGGGGGGGG \
    --down YYYYYYYYY --left OOOOOOOOO --back BBBBBBBBB`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var kociembaCmd = &cobra.Command{
	Use:   "kociemba",
	Short: "Ask an external two-phase solver for a solution",
	Long: `Map a cube to its facelet-identity string and ask an external two-phase
solver for a solution.

The cube is taken from the face flags when given, otherwise from the active
session. The solver is either a solver service (--solver-url) or a local
executable (--solver-cmd). Answers are cached in the database.`,
	Args: cobra.NoArgs,
	RunE: runKociemba,
}

func addFaceFlags(cmd *cobra.Command) {
	for _, face := range cubesim.Faces {
		name := face.Name()
		cmd.Flags().StringVar(faceFlags[face], name, "", fmt.Sprintf("Colors of the %s face (9 letters)", name))
	}
}

func init() {
	for _, face := range cubesim.Faces {
		faceFlags[face] = new(string)
	}

	rootCmd.AddCommand(validateCmd)
	addFaceFlags(validateCmd)

	rootCmd.AddCommand(kociembaCmd)
	addFaceFlags(kociembaCmd)
	kociembaCmd.Flags().StringVar(&solverURL, "solver-url", "", "Base URL of a two-phase solver service")
	kociembaCmd.Flags().StringVar(&solverCommand, "solver-cmd", "", "Two-phase solver executable and arguments")
	kociembaCmd.Flags().DurationVar(&solverTimeout, "timeout", 0, "Solver timeout (default from config, 10s)")
}

// faceInput returns the face flags that were set.
func faceInput(cmd *cobra.Command) map[cubesim.Face]string {
	in := make(map[cubesim.Face]string)
	for _, face := range cubesim.Faces {
		if cmd.Flags().Changed(face.Name()) {
			in[face] = *faceFlags[face]
		}
	}
	return in
}

func runValidate(cmd *cobra.Command, args []string) error {
	in := faceInput(cmd)
	if len(in) == 0 {
		return fmt.Errorf("no faces given, see 'cubesim validate --help'")
	}

	c, err := cubesim.NewCubeFromFaces(cubesim.ParseFaces(in))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, solvedStyle.Render("Valid"))
	fmt.Fprintln(out)
	fmt.Fprint(out, renderNet(c))
	return nil
}

func runKociemba(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := kociembaCube(cmd, db)
	if err != nil {
		return err
	}

	url, command, timeout := cfg.Solver.URL, cfg.Solver.Command, cfg.Solver.Timeout
	if cmd.Flags().Changed("solver-url") {
		url = solverURL
	}
	if cmd.Flags().Changed("solver-cmd") {
		command = solverCommand
	}
	if solverTimeout > 0 {
		timeout = solverTimeout
	}

	inner, source := buildSolver(url, command, timeout, cfg.Solver.Retries)
	solver := &cachedSolver{
		inner:  inner,
		source: source,
		repo:   storage.NewSolutionRepository(db),
	}
	adapter := cubesim.NewAdapter(solver, cubesim.WithLogger(log), cubesim.WithSolveTimeout(timeout))

	sol, err := adapter.Solve(context.Background(), c)
	out := cmd.OutOrStdout()
	if sol.Facelets != "" {
		fmt.Fprintf(out, "Facelets: %s\n", sol.Facelets)
	}
	if err != nil {
		if errors.Is(err, cubesim.ErrSolverUnavailable) {
			return fmt.Errorf("%w (set --solver-url, --solver-cmd, or CUBESIM_SOLVER_URL)", err)
		}
		return err
	}

	if sol.AlreadySolved {
		fmt.Fprintln(out, "Cube is already solved")
		return nil
	}

	cached := ""
	if solver.lastHit {
		cached = " (cached)"
	}
	fmt.Fprintf(out, "Solution (%d moves)%s:\n%s\n", len(sol.Moves), cached, renderMoves(sol.Moves, 60))
	return nil
}

// kociembaCube builds the cube from the face flags, or from the active
// session when none are set.
func kociembaCube(cmd *cobra.Command, db *storage.DB) (*cubesim.Cube, error) {
	if in := faceInput(cmd); len(in) > 0 {
		return cubesim.NewCubeFromFaces(cubesim.ParseFaces(in))
	}

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	if !stateFile.HasActiveSession() {
		return nil, fmt.Errorf("no faces given and no active session")
	}

	rec, err := newRecorder(db)
	if err != nil {
		return nil, err
	}
	if err := rec.Resume(stateFile.ActiveSessionID()); err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}
	return rec.Cube(), nil
}
