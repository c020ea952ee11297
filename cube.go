package cubesim

import (
	"strings"
	"unicode"
)

// Color represents a facelet color. The value is the palette letter, so a
// manually entered letter outside the palette is preserved until validation.
type Color byte

const (
	White  Color = 'W' // Up face when solved
	Red    Color = 'R' // Right face when solved
	Green  Color = 'G' // Front face when solved
	Yellow Color = 'Y' // Down face when solved
	Orange Color = 'O' // Left face when solved
	Blue   Color = 'B' // Back face when solved
)

// Palette lists the six legal colors in face order (U, R, F, D, L, B).
var Palette = [6]Color{White, Red, Green, Yellow, Orange, Blue}

func (c Color) String() string {
	if c < ' ' || c > '~' {
		return "?"
	}
	return string(rune(c))
}

// Valid reports whether c belongs to the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Name returns the full color name used by the renderer.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// ParseColor parses a palette letter (case-insensitive).
func ParseColor(r rune) (Color, bool) {
	if r > unicode.MaxASCII {
		return 0, false
	}
	c := Color(unicode.ToUpper(r))
	return c, c.Valid()
}

// Face identifies a cube face. The numeric order U, R, F, D, L, B is the
// order of the facelet-identity string expected by two-phase solvers.
type Face int

const (
	U Face = iota // Up
	R             // Right
	F             // Front
	D             // Down
	L             // Left
	B             // Back
)

// Faces lists all faces in protocol order.
var Faces = [6]Face{U, R, F, D, L, B}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case R:
		return "R"
	case F:
		return "F"
	case D:
		return "D"
	case L:
		return "L"
	case B:
		return "B"
	default:
		return "?"
	}
}

// Name returns the long face name.
func (f Face) Name() string {
	switch f {
	case U:
		return "up"
	case R:
		return "right"
	case F:
		return "front"
	case D:
		return "down"
	case L:
		return "left"
	case B:
		return "back"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= U && f <= B
}

// ParseFace parses a face letter (case-insensitive).
func ParseFace(r rune) (Face, bool) {
	switch r {
	case 'U', 'u':
		return U, true
	case 'R', 'r':
		return R, true
	case 'F', 'f':
		return F, true
	case 'D', 'd':
		return D, true
	case 'L', 'l':
		return L, true
	case 'B', 'b':
		return B, true
	}
	return 0, false
}

// SolvedColor returns the color of a face when solved.
func SolvedColor(f Face) Color {
	if !f.Valid() {
		return 0
	}
	return Palette[f]
}

// Cube represents a 3x3 Rubik's cube.
// Each face has 9 facelets indexed as seen from outside the face:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The net is oriented with U above F, R, B and L, and D below F:
//
//	      U
//	   L  F  R  B
//	      D
//
// Cube does not check its own invariants. The move engine passes through
// intermediate states while rewriting several faces, and manually entered
// states are checked by Validate before they become a Cube.
type Cube struct {
	// Facelets[face][position] = color
	Facelets [6][9]Color
}

// NewCube creates a solved cube: White up, Green front.
func NewCube() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// Reset restores the solved configuration.
func (c *Cube) Reset() {
	for _, face := range Faces {
		color := SolvedColor(face)
		for i := 0; i < 9; i++ {
			c.Facelets[face][i] = color
		}
	}
}

// Face returns a copy of the nine facelets of f.
func (c *Cube) Face(f Face) [9]Color {
	return c.Facelets[f]
}

// SetFace overwrites the nine facelets of f.
func (c *Cube) SetFace(f Face, data [9]Color) {
	c.Facelets[f] = data
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes carry the same facelets.
func (c *Cube) Equal(other *Cube) bool {
	return c.Facelets == other.Facelets
}

// IsSolved returns true if every face is a single color matching its center.
// A solved cube held in a different whole-cube orientation still counts.
func (c *Cube) IsSolved() bool {
	for _, face := range Faces {
		center := c.Facelets[face][4]
		for i := 0; i < 9; i++ {
			if c.Facelets[face][i] != center {
				return false
			}
		}
	}
	return true
}

// ColorCounts returns how many facelets carry each color.
func (c *Cube) ColorCounts() map[Color]int {
	counts := make(map[Color]int, 6)
	for _, face := range Faces {
		for _, color := range c.Facelets[face] {
			counts[color]++
		}
	}
	return counts
}

// String returns a text representation of the cube.
func (c *Cube) String() string {
	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[U][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				b.WriteString(c.Facelets[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[D][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
