package cubesim

// Predefined moves for convenience.
//
// Example:
//
//	cube.ApplyMoves([]cubesim.Move{cubesim.RMove, cubesim.UMove, cubesim.RPrime, cubesim.UPrime})
var (
	// Up face moves
	UMove  = Move{Face: U, Turn: CW}     // Up clockwise
	UPrime = Move{Face: U, Turn: CCW}    // Up counter-clockwise
	U2     = Move{Face: U, Turn: Double} // Up 180

	// Down face moves
	DMove  = Move{Face: D, Turn: CW}
	DPrime = Move{Face: D, Turn: CCW}
	D2     = Move{Face: D, Turn: Double}

	// Left face moves
	LMove  = Move{Face: L, Turn: CW}
	LPrime = Move{Face: L, Turn: CCW}
	L2     = Move{Face: L, Turn: Double}

	// Right face moves
	RMove  = Move{Face: R, Turn: CW}
	RPrime = Move{Face: R, Turn: CCW}
	R2     = Move{Face: R, Turn: Double}

	// Front face moves
	FMove  = Move{Face: F, Turn: CW}
	FPrime = Move{Face: F, Turn: CCW}
	F2     = Move{Face: F, Turn: Double}

	// Back face moves
	BMove  = Move{Face: B, Turn: CW}
	BPrime = Move{Face: B, Turn: CCW}
	B2     = Move{Face: B, Turn: Double}
)

// QuarterTurns is the 12-move alphabet of single quarter turns, in the
// order the manual move buttons are laid out.
var QuarterTurns = []Move{
	UMove, UPrime, DMove, DPrime, LMove, LPrime,
	RMove, RPrime, FMove, FPrime, BMove, BPrime,
}

// AllTurns is the 18-move alphabet including half turns.
var AllTurns = []Move{
	UMove, UPrime, U2, DMove, DPrime, D2, LMove, LPrime, L2,
	RMove, RPrime, R2, FMove, FPrime, F2, BMove, BPrime, B2,
}

// SexyMove is R U R' U'; six repetitions return to the starting state.
var SexyMove = []Move{RMove, UMove, RPrime, UPrime}

// TPerm swaps two edges and two corners of the U layer; applying it twice
// restores the cube.
var TPerm = []Move{RMove, UMove, RPrime, UPrime, RPrime, FMove, R2, UPrime, RPrime, UPrime, RMove, UMove, RPrime, FPrime}
