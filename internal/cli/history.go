package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	listLimit int
	showLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	Long:  `Display a list of recent sessions with their move counts and outcome.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the move log of a session",
	Long: `Display a session's metadata and its moves, grouped into runs of
scramble, manual, undo, and solve moves.

Use --last to show the most recent session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of sessions to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent session")
}

func sessionStatus(s *storage.Session) string {
	switch {
	case s.Open():
		return "active"
	case s.Solved:
		return "solved"
	default:
		return "abandoned"
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	moveRepo := storage.NewMoveRepository(db)

	sessions, err := sessionRepo.List(listLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet")
		fmt.Fprintln(out, "Start one with: cubesim new")
		return nil
	}

	fmt.Fprintf(out, "Recent sessions (showing %d):\n\n", len(sessions))
	fmt.Fprintf(out, "%-36s  %-19s  %-9s  %-6s  %s\n", "ID", "Started", "Status", "Moves", "Notes")
	fmt.Fprintln(out, "------------------------------------  -------------------  ---------  ------  -----")

	for i := range sessions {
		s := &sessions[i]
		moves, _ := moveRepo.Count(s.SessionID)

		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-9s  %-6d  %s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			sessionStatus(s),
			moves,
			notes,
		)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	moveRepo := storage.NewMoveRepository(db)

	var session *storage.Session
	switch {
	case showLast:
		session, err = sessionRepo.GetLast()
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("no sessions found")
		}
	case len(args) > 0:
		session, err = sessionRepo.Get(args[0])
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
	default:
		return fmt.Errorf("please provide a session ID or use --last")
	}

	records, err := moveRepo.GetBySession(session.SessionID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Session Details")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "ID:      %s\n", session.SessionID)
	fmt.Fprintf(out, "Started: %s\n", session.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if session.EndedAt != nil {
		fmt.Fprintf(out, "Ended:   %s (%s)\n", session.EndedAt.Local().Format("2006-01-02 15:04:05"),
			formatDuration(session.EndedAt.Sub(session.StartedAt)))
	}
	fmt.Fprintf(out, "Status:  %s\n", sessionStatus(session))
	if session.Notes != nil && *session.Notes != "" {
		fmt.Fprintf(out, "Notes:   %s\n", *session.Notes)
	}
	fmt.Fprintf(out, "Moves:   %d\n", len(records))
	fmt.Fprintln(out)

	printMoveRuns(out, records)
	return nil
}

// printMoveRuns prints consecutive moves of the same kind as one block.
func printMoveRuns(out io.Writer, records []storage.MoveRecord) {
	for start := 0; start < len(records); {
		kind := records[start].Kind
		end := start
		for end < len(records) && records[end].Kind == kind {
			end++
		}

		run := storage.ToMoves(records[start:end])
		fmt.Fprintf(out, "%s (%d moves, +%s)\n", strings.ToUpper(string(kind[:1]))+string(kind[1:]),
			len(run), formatDuration(time.Duration(records[start].TsMs)*time.Millisecond))
		for _, line := range strings.Split(renderMoves(run, 60), "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
		fmt.Fprintln(out)

		start = end
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
