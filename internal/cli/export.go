package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	exportSessionID string
	exportFormat    string
	exportOutput    string
	exportLast      bool
	exportKind      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session data",
	Long:  `Export session data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export the move log of a session",
	Long: `Export the move log of a session in text or JSON format.

Examples:
  cubesim export moves --last
  cubesim export moves --last --kind scramble
  cubesim export moves --id <session_id> --format json -o moves.json`,
	Args: cobra.NoArgs,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportMovesCmd.Flags().StringVar(&exportKind, "kind", "", "Only export moves of this kind (manual, scramble, undo, solve)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

type moveJSON struct {
	MoveIndex int    `json:"move_index"`
	TsMs      int64  `json:"ts_ms"`
	Face      string `json:"face"`
	Turn      int    `json:"turn"`
	Notation  string `json:"notation"`
	Kind      string `json:"kind"`
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionID := exportSessionID
	if exportLast {
		session, err := storage.NewSessionRepository(db).GetLast()
		if err != nil {
			return fmt.Errorf("failed to get last session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("no sessions found")
		}
		sessionID = session.SessionID
	}

	records, err := storage.NewMoveRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if exportKind != "" {
		records = filterKind(records, storage.MoveKind(strings.ToLower(exportKind)))
	}
	if len(records) == 0 {
		return fmt.Errorf("no moves found for session %s", sessionID)
	}

	var output string
	switch strings.ToLower(exportFormat) {
	case "txt":
		notations := make([]string, len(records))
		for i, m := range records {
			notations[i] = m.Notation
		}
		output = strings.Join(notations, " ")

	case "json":
		moves := make([]moveJSON, len(records))
		for i, m := range records {
			moves[i] = moveJSON{
				MoveIndex: m.MoveIndex,
				TsMs:      m.TsMs,
				Face:      m.Face,
				Turn:      m.Turn,
				Notation:  m.Notation,
				Kind:      string(m.Kind),
			}
		}
		data, err := json.MarshalIndent(moves, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = string(data)

	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	out := cmd.OutOrStdout()
	if exportOutput == "" {
		fmt.Fprintln(out, output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(out, "Exported %d moves to %s\n", len(records), exportOutput)
	return nil
}

func filterKind(records []storage.MoveRecord, kind storage.MoveKind) []storage.MoveRecord {
	var kept []storage.MoveRecord
	for _, r := range records {
		if r.Kind == kind {
			kept = append(kept, r)
		}
	}
	return kept
}
