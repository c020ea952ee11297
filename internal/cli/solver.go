package cli

import (
	"context"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
	"github.com/SeamusWaldron/cubesim/pkg/twophase"
)

// cachedSolver answers from the solutions table before asking inner, and
// stores every fresh answer. An answer that arrives after ctx is done is
// dropped: the adapter has already returned and the database may be closed.
type cachedSolver struct {
	inner   cubesim.Solver
	source  string
	repo    *storage.SolutionRepository
	lastHit bool
}

func (s *cachedSolver) Solve(ctx context.Context, facelets string) (string, error) {
	s.lastHit = false

	cached, err := s.repo.Get(facelets)
	if err != nil {
		log.Warn("solution cache lookup failed", "err", err)
	} else if cached != nil {
		log.Debug("solution cache hit", "facelets", facelets, "hits", cached.Hits)
		s.lastHit = true
		return cached.Solution, nil
	}

	if s.inner == nil {
		return "", cubesim.ErrSolverUnavailable
	}

	answer, err := s.inner.Solve(ctx, facelets)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.repo.Put(facelets, answer, s.source); err != nil {
		log.Warn("failed to cache solution", "err", err)
	}
	return answer, nil
}

// buildSolver returns the configured external solver and a short name for
// it. A URL takes precedence over a command. Both empty yields a nil solver.
func buildSolver(url, command string, timeout time.Duration, retries int) (cubesim.Solver, string) {
	switch {
	case url != "":
		return twophase.NewHTTPClient(url,
			twophase.WithTimeout(timeout),
			twophase.WithRetryCount(retries),
			twophase.WithHTTPLogger(log),
		), url
	case strings.TrimSpace(command) != "":
		fields := strings.Fields(command)
		return twophase.NewCommand(fields[0], fields[1:]...), fields[0]
	default:
		return nil, ""
	}
}
