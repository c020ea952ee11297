package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database, session, and solver information",
	Long:  `Display the database location and contents, the active session, and the configured external solver.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "cubesim Status")
	fmt.Fprintln(out, "==============")
	fmt.Fprintln(out)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(out, "Database: %s\n", db.Path())
	if version, err := db.CurrentVersion(); err == nil {
		fmt.Fprintf(out, "Schema version: %d\n", version)
	}

	sessionRepo := storage.NewSessionRepository(db)
	if n, err := sessionRepo.Count(); err == nil {
		fmt.Fprintf(out, "Sessions: %d\n", n)
	}
	if last, err := sessionRepo.GetLast(); err == nil && last != nil {
		fmt.Fprintf(out, "Last session: %s\n", last.StartedAt.Local().Format(time.RFC3339))
	}
	if n, err := storage.NewSolutionRepository(db).Count(); err == nil {
		fmt.Fprintf(out, "Cached solutions: %d\n", n)
	}
	fmt.Fprintln(out)

	if stateFile.HasActiveSession() {
		id := stateFile.ActiveSessionID()
		moves, _ := storage.NewMoveRepository(db).Count(id)
		fmt.Fprintf(out, "Active session: %s (%d moves)\n", id, moves)
		fmt.Fprintln(out, "  (Use 'cubesim show' to draw it or 'cubesim solve' to undo it)")
	} else {
		fmt.Fprintln(out, "No active session")
	}
	fmt.Fprintln(out)

	switch {
	case cfg.Solver.URL != "":
		fmt.Fprintf(out, "Solver: %s (timeout %s, %d retries)\n", cfg.Solver.URL, cfg.Solver.Timeout, cfg.Solver.Retries)
	case cfg.Solver.Command != "":
		fmt.Fprintf(out, "Solver: %s (timeout %s)\n", cfg.Solver.Command, cfg.Solver.Timeout)
	default:
		fmt.Fprintln(out, "No external solver configured")
	}

	return nil
}
