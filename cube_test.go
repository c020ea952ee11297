package cubesim

import (
	"math/rand/v2"
	"testing"
)

// labeledCube returns a cube whose 54 facelets all carry distinct values, so
// that any misplaced facelet is visible.
func labeledCube() *Cube {
	c := &Cube{}
	for _, face := range Faces {
		for i := 0; i < 9; i++ {
			c.Facelets[face][i] = Color(int(face)*9 + i + 1)
		}
	}
	return c
}

func scrambledCube(seed uint64, n int) *Cube {
	c := NewCube()
	Scramble(c, n, rand.New(rand.NewPCG(seed, seed)), PolicyAllTurns)
	return c
}

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	for _, face := range Faces {
		if got := c.Face(face)[4]; got != SolvedColor(face) {
			t.Errorf("face %v center = %v, want %v", face, got, SolvedColor(face))
		}
	}
}

func TestResetRestoresSolved(t *testing.T) {
	c := scrambledCube(1, 30)
	if c.IsSolved() {
		t.Fatal("scramble should leave the cube unsolved")
	}
	c.Reset()
	if !c.Equal(NewCube()) {
		t.Error("Reset should restore the solved configuration")
		t.Log(c.String())
	}
}

func TestFaceReturnsCopy(t *testing.T) {
	c := NewCube()
	face := c.Face(U)
	face[0] = Blue
	if c.Facelets[U][0] != White {
		t.Error("mutating the returned face should not touch the cube")
	}
}

func TestSetFace(t *testing.T) {
	c := NewCube()
	data := [9]Color{Red, Red, Red, White, White, White, Blue, Blue, Blue}
	c.SetFace(U, data)
	if c.Face(U) != data {
		t.Errorf("SetFace did not store data: got %v", c.Face(U))
	}
	if c.IsSolved() {
		t.Error("cube with a striped face should not be solved")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCube()
	clone := c.Clone()
	clone.ApplyMove(RMove)
	if !c.IsSolved() {
		t.Error("moving the clone should not affect the original")
	}
	if clone.Equal(c) {
		t.Error("clone should differ after a move")
	}
}

func TestColorCountsSolved(t *testing.T) {
	counts := NewCube().ColorCounts()
	for _, color := range Palette {
		if counts[color] != 9 {
			t.Errorf("color %v count = %d, want 9", color, counts[color])
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, color := range Palette {
		got, ok := ParseColor(rune(color))
		if !ok || got != color {
			t.Errorf("ParseColor(%q) = %v, %v", rune(color), got, ok)
		}
	}
	if got, ok := ParseColor('g'); !ok || got != Green {
		t.Errorf("ParseColor should be case-insensitive, got %v, %v", got, ok)
	}
	for _, r := range []rune{'X', '1', 'é'} {
		if _, ok := ParseColor(r); ok {
			t.Errorf("ParseColor(%q) should fail", r)
		}
	}
}

func TestStringLayout(t *testing.T) {
	c := NewCube()
	want := "" +
		"      W W W \n" +
		"      W W W \n" +
		"      W W W \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
