package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesim"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var faceletStyles = map[cubesim.Color]lipgloss.Style{
	cubesim.White:  faceletStyle("#FFFFFF"),
	cubesim.Red:    faceletStyle("#C41E3A"),
	cubesim.Green:  faceletStyle("#009E60"),
	cubesim.Yellow: faceletStyle("#FFD500"),
	cubesim.Orange: faceletStyle("#FF5800"),
	cubesim.Blue:   faceletStyle("#0051BA"),
}

var unknownFacelet = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Background(lipgloss.Color("236"))

func faceletStyle(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(bg))
}

func renderFacelet(c cubesim.Color) string {
	style, ok := faceletStyles[c]
	if !ok {
		style = unknownFacelet
	}
	return style.Render(" " + c.String() + " ")
}

func renderRow(c *cubesim.Cube, face cubesim.Face, row int) string {
	var b strings.Builder
	for col := 0; col < 3; col++ {
		b.WriteString(renderFacelet(c.Facelets[face][row*3+col]))
	}
	return b.String()
}

// renderNet draws the cube unfolded with U on top, L F R B across the
// middle, and D below. Each facelet shows its color letter.
func renderNet(c *cubesim.Cube) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 9)

	for row := 0; row < 3; row++ {
		b.WriteString(pad + renderRow(c, cubesim.U, row) + "\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []cubesim.Face{cubesim.L, cubesim.F, cubesim.R, cubesim.B} {
			b.WriteString(renderRow(c, face, row))
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(pad + renderRow(c, cubesim.D, row) + "\n")
	}

	return b.String()
}

// renderMoves formats moves in lines of about width characters.
func renderMoves(moves []cubesim.Move, width int) string {
	var lines []string
	var line string
	for _, m := range moves {
		n := m.Notation()
		switch {
		case line == "":
			line = n
		case len(line)+len(n)+1 > width:
			lines = append(lines, line)
			line = n
		default:
			line += " " + n
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return moveStyle.Render(strings.Join(lines, "\n"))
}
