package cubesim

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultSolveTimeout bounds a call to an external solver when no timeout is
// configured.
const DefaultSolveTimeout = 10 * time.Second

// Option configures a Session or an Adapter.
type Option func(*config)

type config struct {
	policy       ScramblePolicy
	rng          *rand.Rand
	logger       *log.Logger
	solveTimeout time.Duration
	moveHistory  bool
}

func defaultConfig() *config {
	return &config{
		policy:       PolicyQuarterTurns,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:       log.New(io.Discard),
		solveTimeout: DefaultSolveTimeout,
		moveHistory:  true,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithScramblePolicy selects the move alphabet used for scrambles.
// The default draws quarter turns only.
func WithScramblePolicy(p ScramblePolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithRand sets the random source for scrambles. Pass a seeded source to get
// reproducible scrambles.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the logger used for debug output. Logging is discarded by
// default.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSolveTimeout bounds each external solver call.
func WithSolveTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.solveTimeout = d
		}
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), every applied move is recorded so the session can
// be solved by inversion. Disabling it makes Solve a no-op.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}
