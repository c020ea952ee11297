package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the cube interactively",
	Long: `Open an interactive view of the active session's cube.

Keys:
  u d l r f b    turn a face clockwise
  U D L R F B    turn a face counter-clockwise
  s              scramble
  z, backspace   undo the last move
  enter          play the solution back one move at a time (again to pause)
  x              abandon the session and start over
  q, esc         quit

Every move is recorded, so the session can be continued with the other
commands afterwards.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := openRecorder(db)
	if err != nil {
		return err
	}

	model := newPlayModel(rec, cfg.Scramble.Length, cfg.Play.ReplayInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("play error: %w", err)
	}
	return nil
}

type playModel struct {
	rec            *recorder.Recorder
	scrambleLength int
	interval       time.Duration

	moves     []cubesim.Move
	replaying bool
	gen       int
	status    string
	err       error
	quitting  bool
}

func newPlayModel(rec *recorder.Recorder, scrambleLength int, interval time.Duration) *playModel {
	return &playModel{
		rec:            rec,
		scrambleLength: scrambleLength,
		interval:       interval,
	}
}

// replayStepMsg advances a solution replay. Steps from an earlier replay
// carry a stale gen and are dropped.
type replayStepMsg struct{ gen int }

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) scheduleStep() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return replayStepMsg{gen: gen}
	})
}

func (m *playModel) stopReplay() {
	m.replaying = false
	m.gen++
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case replayStepMsg:
		if !m.replaying || msg.gen != m.gen {
			return m, nil
		}
		return m, m.step()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.replaying {
			m.stopReplay()
			m.status = "Replay paused"
			return m, nil
		}
		if len(m.rec.Session().History()) == 0 {
			m.status = "Nothing to solve"
			return m, nil
		}
		m.replaying = true
		m.gen++
		m.status = "Solving..."
		return m, m.scheduleStep()

	case "z", "backspace":
		m.stopReplay()
		mv, ok, err := m.rec.Undo()
		if m.setErr(err) {
			return m, nil
		}
		if !ok {
			m.status = "Nothing to undo"
			return m, nil
		}
		m.moves = append(m.moves, mv)
		m.status = "Undid " + mv.Inverse().Notation()
		return m, nil

	case "s":
		m.stopReplay()
		moves, err := m.rec.Scramble(m.scrambleLength)
		if m.setErr(err) {
			return m, nil
		}
		m.moves = append(m.moves, moves...)
		m.status = fmt.Sprintf("Scrambled with %d moves", len(moves))
		return m, nil

	case "x":
		m.stopReplay()
		if err := m.rec.End(); m.setErr(err) {
			return m, nil
		}
		_, err := m.rec.Start("")
		if m.setErr(err) {
			return m, nil
		}
		m.moves = nil
		m.status = "New session"
		return m, nil
	}

	if r := []rune(key); len(r) == 1 {
		if face, ok := cubesim.ParseFace(r[0]); ok {
			m.stopReplay()
			turn := cubesim.CW
			if unicode.IsUpper(r[0]) {
				turn = cubesim.CCW
			}
			mv := cubesim.Move{Face: face, Turn: turn}
			if m.setErr(m.rec.Apply(mv)) {
				return m, nil
			}
			m.moves = append(m.moves, mv)
			m.status = ""
		}
	}
	return m, nil
}

// step applies the next solution move and ends the session once the
// history is empty.
func (m *playModel) step() tea.Cmd {
	mv, ok, err := m.rec.SolveStep()
	if m.setErr(err) {
		m.stopReplay()
		return nil
	}
	if ok {
		m.moves = append(m.moves, mv)
	}
	if len(m.rec.Session().History()) > 0 {
		return m.scheduleStep()
	}

	m.stopReplay()
	solved := m.rec.Cube().IsSolved()
	if err := m.rec.End(); m.setErr(err) {
		return nil
	}
	if _, err := m.rec.Start(""); m.setErr(err) {
		return nil
	}
	m.moves = nil
	if solved {
		m.status = "Solved! Started a new session"
	}
	return nil
}

// setErr records err for display and reports whether it was non-nil.
func (m *playModel) setErr(err error) bool {
	m.err = err
	return err != nil
}

func (m *playModel) View() string {
	if m.quitting {
		return "Session saved.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubesim"))
	b.WriteString("\n\n")

	b.WriteString(statusStyle.Render(fmt.Sprintf("Session %s", m.rec.SessionID())))
	b.WriteString(fmt.Sprintf("  Moves: %d  Time: %s\n\n", m.rec.MoveCount(),
		formatDuration(time.Duration(m.rec.ElapsedMs())*time.Millisecond)))

	b.WriteString(renderNet(m.rec.Cube()))
	b.WriteString("\n")

	if len(m.moves) > 0 {
		b.WriteString("Moves: ")
		start := 0
		if len(m.moves) > 20 {
			start = len(m.moves) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(cubesim.FormatMoves(m.moves[start:])))
		b.WriteString("\n")
	}

	if m.rec.Cube().IsSolved() {
		b.WriteString(solvedStyle.Render("SOLVED"))
	} else {
		b.WriteString(fmt.Sprintf("%d moves to undo", len(m.rec.Session().History())))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("udlrfb=turn  UDLRFB=turn'  s=scramble  z=undo  enter=solve  x=restart  q=quit"))
	b.WriteString("\n")

	return b.String()
}
