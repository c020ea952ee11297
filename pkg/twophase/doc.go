// Package twophase provides clients for external two-phase solvers.
//
// Both clients implement cubesim.Solver: they receive a 54-character
// facelet-identity string and return the solver's answer in canonical move
// notation, verbatim.
//
//	solver := twophase.NewHTTPClient("http://localhost:8080",
//	    twophase.WithTimeout(5*time.Second))
//	adapter := cubesim.NewAdapter(solver)
//
//	solver := twophase.NewCommand("kociemba")
package twophase
