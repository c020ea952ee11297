// Package cli implements the command-line interface for cubesim.
package cli

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/logger"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath string

	// Set by the root pre-run hook.
	cfg = config.Default()
	log = charmlog.Default()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "Rubik's cube simulator",
	Long: `cubesim - A 3x3 Rubik's cube simulator.

Turn faces in standard notation, scramble, undo a scramble by inverting the
move history, check manually entered cube states, and ask an external
two-phase solver for a solution. The active session is kept between
invocations in ~/.cubesim.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesim/cubesim.db)")
	logger.AddFlags(rootCmd)
}

// setup loads the configuration and installs the logger. Flags win over
// CUBESIM_* environment variables.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	level, asJSON, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	if level == "" {
		level = loaded.Log.Level
	}
	if !cmd.Flags().Changed(logger.FlagJSON) {
		asJSON = loaded.Log.JSON
	}
	logger.SetupLogger(level, asJSON)

	cfg = loaded
	log = logger.Default()
	return nil
}

// getDBPath returns the database path from flag, config, state file, or
// default, in that order.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path, nil
	}
	if sf, err := recorder.NewDefaultStateFile(); err == nil && sf.DBPath() != "" {
		return sf.DBPath(), nil
	}
	return storage.DefaultDBPath()
}

func openDB() (*storage.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// sessionOptions returns the cubesim options derived from the configuration.
func sessionOptions(extra ...cubesim.Option) []cubesim.Option {
	opts := []cubesim.Option{
		cubesim.WithLogger(log),
		cubesim.WithScramblePolicy(cfg.Scramble.Policy()),
		cubesim.WithSolveTimeout(cfg.Solver.Timeout),
	}
	return append(opts, extra...)
}

// newRecorder creates a recorder bound to the default state file.
func newRecorder(db *storage.DB, extra ...cubesim.Option) (*recorder.Recorder, error) {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return recorder.New(db, stateFile, log, sessionOptions(extra...)...), nil
}

// openRecorder resumes the active session or starts a new one.
func openRecorder(db *storage.DB, extra ...cubesim.Option) (*recorder.Recorder, error) {
	rec, err := newRecorder(db, extra...)
	if err != nil {
		return nil, err
	}
	resumed, err := rec.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	if !resumed {
		log.Info("started new session", "session", rec.SessionID())
	}
	return rec, nil
}
