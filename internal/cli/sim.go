package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
)

var (
	newNotes          string
	scrambleLength    int
	scrambleHalfTurns bool
	scrambleSeed      uint64
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new session with a solved cube",
	Long:  `Abandon the active session, if any, and start a new one with a solved cube.`,
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

var moveCmd = &cobra.Command{
	Use:   "move <moves>",
	Short: "Apply moves in standard notation",
	Long: `Apply face turns to the active session's cube.

Moves use standard notation: U D L R F B for clockwise quarter turns, a
trailing ' for counter-clockwise, and a trailing 2 for half turns.
Unrecognized tokens are reported and skipped.

Example:
  cubesim move "R U R' U'"
  cubesim move R U2 F'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMove,
}

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Scramble the cube with random moves",
	Long: `Apply random moves to the active session's cube and print them.

Moves are drawn from the 12 quarter turns unless --half-turns is given.
Use --seed for a reproducible scramble.`,
	Args: cobra.NoArgs,
	RunE: runScramble,
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the cube by inverting the move history",
	Long: `Apply the inverse of every move recorded in the active session, in
reverse order, and end the session. This undoes scrambles and manual moves;
it does not search for a short solution (see 'cubesim kociemba').`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Draw the current cube",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newNotes, "notes", "", "Notes for this session")

	rootCmd.AddCommand(moveCmd)

	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "n", 0, "Number of moves (default from config, 10)")
	scrambleCmd.Flags().BoolVar(&scrambleHalfTurns, "half-turns", false, "Draw half turns as well as quarter turns")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed for a reproducible scramble")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(showCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := newRecorder(db)
	if err != nil {
		return err
	}

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if stateFile.HasActiveSession() {
		id := stateFile.ActiveSessionID()
		if err := rec.Resume(id); err != nil {
			log.Warn("cannot resume active session", "session", id, "err", err)
		} else if err := rec.End(); err != nil {
			return err
		} else {
			log.Info("abandoned session", "session", id, "moves", rec.MoveCount())
		}
	}

	if _, err := rec.Start(newNotes); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Started session: %s\n\n", rec.SessionID())
	fmt.Fprint(out, renderNet(rec.Cube()))
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := openRecorder(db)
	if err != nil {
		return err
	}

	moves, skipped, err := rec.ApplyNotation(strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(skipped) > 0 {
		fmt.Fprintf(out, "Skipped: %s\n", strings.Join(skipped, " "))
	}
	fmt.Fprintf(out, "Applied %d moves: %s\n\n", len(moves), cubesim.FormatMoves(moves))
	printCube(out, rec)
	return nil
}

func runScramble(cmd *cobra.Command, args []string) error {
	length := scrambleLength
	if length == 0 {
		length = cfg.Scramble.Length
	}
	if length < 0 {
		return fmt.Errorf("scramble length must be positive, got %d", length)
	}

	var extra []cubesim.Option
	if scrambleHalfTurns {
		extra = append(extra, cubesim.WithScramblePolicy(cubesim.PolicyAllTurns))
	}
	if cmd.Flags().Changed("seed") {
		extra = append(extra, cubesim.WithRand(rand.New(rand.NewPCG(scrambleSeed, scrambleSeed))))
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := openRecorder(db, extra...)
	if err != nil {
		return err
	}

	moves, err := rec.Scramble(length)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scramble (%d moves):\n%s\n\n", len(moves), renderMoves(moves, 60))
	printCube(out, rec)
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := openRecorder(db)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rec.Session().History()) == 0 {
		if rec.Cube().IsSolved() {
			fmt.Fprintln(out, "Cube is already solved")
			return nil
		}
		return fmt.Errorf("no recorded moves to undo")
	}

	sessionID := rec.SessionID()
	path, err := rec.Solve()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Solution (%d moves):\n%s\n\n", len(path), renderMoves(path, 60))
	fmt.Fprint(out, renderNet(rec.Cube()))
	fmt.Fprintf(out, "\n%s Session %s ended.\n", solvedStyle.Render("SOLVED!"), sessionID)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := newRecorder(db)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if !stateFile.HasActiveSession() {
		fmt.Fprintln(out, "No active session")
		fmt.Fprintln(out)
		fmt.Fprint(out, renderNet(cubesim.NewCube()))
		return nil
	}
	if err := rec.Resume(stateFile.ActiveSessionID()); err != nil {
		return fmt.Errorf("failed to resume session: %w", err)
	}

	fmt.Fprintf(out, "Session: %s\n\n", rec.SessionID())
	printCube(out, rec)
	return nil
}

// printCube draws the net followed by the session summary.
func printCube(out io.Writer, rec *recorder.Recorder) {
	fmt.Fprint(out, renderNet(rec.Cube()))
	fmt.Fprintln(out)
	if rec.Cube().IsSolved() {
		fmt.Fprintf(out, "State: %s\n", solvedStyle.Render("SOLVED"))
	} else {
		fmt.Fprintf(out, "State: scrambled, %d moves to undo\n", len(rec.Session().History()))
	}
}
