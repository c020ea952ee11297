package cubesim

import "unicode"

// Validate checks manually entered facelet data against the cube invariants
// and returns the first violation as a *ValidationError:
//
//  1. every face has exactly 9 facelets (a missing face has 0),
//  2. every facelet color is in the palette,
//  3. every palette color appears exactly 9 times.
//
// Faces are checked in protocol order, colors in palette order. States
// produced by the move engine are correct by construction and need no
// validation.
func Validate(faces map[Face][]Color) error {
	counts := make(map[Color]int, 6)

	for _, face := range Faces {
		data := faces[face]
		if len(data) != 9 {
			return &ValidationError{Rule: RuleFaceSize, Face: face, Count: len(data)}
		}
		for i, color := range data {
			if !color.Valid() {
				return &ValidationError{Rule: RuleColor, Face: face, Index: i, Color: color}
			}
			counts[color]++
		}
	}

	for _, color := range Palette {
		if counts[color] != 9 {
			return &ValidationError{Rule: RuleColorCount, Color: color, Count: counts[color]}
		}
	}

	return nil
}

// NewCubeFromFaces validates faces and builds a Cube from them.
func NewCubeFromFaces(faces map[Face][]Color) (*Cube, error) {
	if err := Validate(faces); err != nil {
		return nil, err
	}
	c := &Cube{}
	for _, face := range Faces {
		copy(c.Facelets[face][:], faces[face])
	}
	return c, nil
}

// ParseFaces converts per-face color strings (e.g. "WWWGWWWWW") into
// validator input. Letters outside the palette are kept as-is so Validate
// can name them; non-ASCII characters become an unprintable color.
func ParseFaces(in map[Face]string) map[Face][]Color {
	faces := make(map[Face][]Color, len(in))
	for face, s := range in {
		colors := make([]Color, 0, len(s))
		for _, r := range s {
			if unicode.IsSpace(r) {
				continue
			}
			if c, ok := ParseColor(r); ok {
				colors = append(colors, c)
			} else if r <= unicode.MaxASCII {
				colors = append(colors, Color(r))
			} else {
				colors = append(colors, 0)
			}
		}
		faces[face] = colors
	}
	return faces
}

// FaceMap returns the cube facelets in validator input form.
func (c *Cube) FaceMap() map[Face][]Color {
	faces := make(map[Face][]Color, 6)
	for _, face := range Faces {
		data := c.Facelets[face]
		faces[face] = data[:]
	}
	return faces
}
