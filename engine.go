package cubesim

// edge names a row or column of a face in natural reading order
// (left to right, top to bottom).
type edge int

const (
	edgeTop edge = iota
	edgeRight
	edgeBottom
	edgeLeft
)

var edgeIndices = [4][3]int{
	edgeTop:    {0, 1, 2},
	edgeRight:  {2, 5, 8},
	edgeBottom: {6, 7, 8},
	edgeLeft:   {0, 3, 6},
}

// strip is the 3-facelet band of a neighbor face that touches the turning face.
// reversed means the band is met in reverse natural order when walking
// clockwise around the turning face.
type strip struct {
	face     Face
	edge     edge
	reversed bool
}

// indices returns the strip positions in clockwise ring order.
func (s strip) indices() [3]int {
	idx := edgeIndices[s.edge]
	if s.reversed {
		idx[0], idx[2] = idx[2], idx[0]
	}
	return idx
}

// adjacency lists, for each face, its four neighbor strips in clockwise order
// as seen from outside that face. A clockwise turn moves each strip's content
// into the next strip of the ring.
var adjacency = [6][4]strip{
	U: {{B, edgeTop, true}, {R, edgeTop, true}, {F, edgeTop, true}, {L, edgeTop, true}},
	R: {{U, edgeRight, true}, {B, edgeLeft, false}, {D, edgeRight, true}, {F, edgeRight, true}},
	F: {{U, edgeBottom, false}, {R, edgeLeft, false}, {D, edgeTop, true}, {L, edgeRight, true}},
	D: {{F, edgeBottom, false}, {R, edgeBottom, false}, {B, edgeBottom, false}, {L, edgeBottom, false}},
	L: {{U, edgeLeft, false}, {F, edgeLeft, false}, {D, edgeLeft, false}, {B, edgeRight, true}},
	B: {{U, edgeTop, true}, {L, edgeLeft, false}, {D, edgeBottom, false}, {R, edgeRight, true}},
}

// clockwiseSource gives, for each position of a face turned 90 degrees
// clockwise, the position its new color comes from. The center stays put.
var clockwiseSource = [9]int{6, 3, 0, 7, 4, 1, 8, 5, 2}

// Turn applies a face turn to the cube.
// turn: CW = 1, CCW = -1, Double = 2. Other values and invalid faces are
// ignored; the notation parser never produces them.
//
// Counter-clockwise and half turns are the clockwise turn repeated three and
// two times.
func (c *Cube) Turn(face Face, turn Turn) {
	if !face.Valid() {
		return
	}
	var n int
	switch turn {
	case CW:
		n = 1
	case Double:
		n = 2
	case CCW:
		n = 3
	default:
		return
	}
	for i := 0; i < n; i++ {
		c.turnCW(face)
	}
}

// turnCW applies a clockwise quarter turn of face.
func (c *Cube) turnCW(face Face) {
	c.rotateFaceCW(face)
	c.cycleStrips(face)
}

// rotateFaceCW rotates the facelets of face 90 degrees clockwise.
func (c *Cube) rotateFaceCW(face Face) {
	old := c.Facelets[face]
	for i, src := range clockwiseSource {
		c.Facelets[face][i] = old[src]
	}
}

// cycleStrips hands each neighbor strip of face to the next one clockwise.
// All four strips are read before any is written; copying strip by strip in
// place would feed an already overwritten strip into the next one.
func (c *Cube) cycleStrips(face Face) {
	ring := adjacency[face]

	var snapshot [4][3]Color
	for k, s := range ring {
		for j, idx := range s.indices() {
			snapshot[k][j] = c.Facelets[s.face][idx]
		}
	}

	for k, s := range ring {
		from := snapshot[(k+3)%4]
		for j, idx := range s.indices() {
			c.Facelets[s.face][idx] = from[j]
		}
	}
}

// ApplyMove applies a Move to the cube.
func (c *Cube) ApplyMove(m Move) {
	c.Turn(m.Face, m.Turn)
}

// ApplyMoves applies a sequence of moves to the cube.
func (c *Cube) ApplyMoves(moves []Move) {
	for _, m := range moves {
		c.ApplyMove(m)
	}
}

// ApplyNotation parses a space-separated move string and applies every
// recognized move. It returns the moves applied and the tokens skipped.
func (c *Cube) ApplyNotation(s string) ([]Move, []string) {
	moves, skipped := ParseMoves(s)
	c.ApplyMoves(moves)
	return moves, skipped
}
