// Package cubesim provides a 3x3 Rubik's cube simulator: a facelet model,
// face turns, move notation, scramble generation, history inversion, manual
// state validation, and a bridge to external two-phase solvers.
//
// # Quick Start
//
//	cube := cubesim.NewCube()
//
//	// Apply moves using predefined constants
//	cube.ApplyMoves([]cubesim.Move{cubesim.RMove, cubesim.UMove, cubesim.RPrime, cubesim.UPrime})
//
//	// Or from notation
//	cube.ApplyNotation("F B2 L' D")
//
//	fmt.Println("Solved:", cube.IsSolved())
//
// # Undoing a Scramble
//
// A Session keeps the move history of the cube it owns. Solving a cube that
// was scrambled through the session is done by replaying the inverse history:
//
//	s := cubesim.NewSession()
//	s.Scramble(20)
//	path := s.Solve() // inverse of the scramble, already applied
//
// # Manually Entered States
//
// States typed in by a user go through Validate before anything else:
//
//	faces := cubesim.ParseFaces(map[cubesim.Face]string{cubesim.U: "WWWWWWWWW", ...})
//	cube, err := cubesim.NewCubeFromFaces(faces)
//
// and can then be handed to an external solver through an Adapter:
//
//	adapter := cubesim.NewAdapter(twophase.NewHTTPClient(url))
//	solution, err := adapter.Solve(ctx, cube)
package cubesim
