package integerize

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
)

// Policy selects which cells give back the overshoot created by rounding
// every entry up.
type Policy int

const (
	// PolicyLargestDifference decrements the cells that gained the most from
	// the ceiling. Default.
	PolicyLargestDifference Policy = iota

	// PolicyLargest decrements the cells with the largest rounded values.
	PolicyLargest

	// PolicySmallest decrements the smallest non-zero rounded values.
	PolicySmallest

	// PolicyWeightedRandom draws the cells without replacement with
	// probability proportional to their rounding gain. Requires WithRand.
	PolicyWeightedRandom
)

var policyNames = map[Policy]string{
	PolicyLargestDifference: "largest-difference",
	PolicyLargest:           "largest",
	PolicySmallest:          "smallest",
	PolicyWeightedRandom:    "weighted-random",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names printed by Policy.String; underscores and
// spaces are treated as hyphens.
func ParsePolicy(s string) (Policy, error) {
	norm := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	for p, name := range policyNames {
		if name == norm {
			return p, nil
		}
	}

	return 0, fmt.Errorf("policy %q: %w", s, ErrBadOption)
}

// Mode selects how strictly Biproportional enforces row controls.
// Column controls are always matched exactly.
type Mode int

const (
	// ModeExact requires row sums to equal the row controls.
	ModeExact Mode = iota

	// ModeLessThan requires row sums to be at most the row controls.
	ModeLessThan
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeLessThan:
		return "less-than"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "exact", "less-than", "less than" and "less_than".
func ParseMode(s string) (Mode, error) {
	switch strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s))) {
	case "exact":
		return ModeExact, nil
	case "less-than":
		return ModeLessThan, nil
	default:
		return 0, fmt.Errorf("mode %q: %w", s, ErrBadOption)
	}
}

// Defaults.
const (
	// DefaultPolicy is used by Vector when no policy is given.
	DefaultPolicy = PolicyLargestDifference

	// DefaultMode is used by Biproportional when no mode is given.
	DefaultMode = ModeExact

	// DefaultNeighborhood is the column window of the Neighborhood tier.
	DefaultNeighborhood = 1
)

// Option configures Vector and Biproportional.
type Option func(*config)

type config struct {
	policy       Policy
	rng          *rand.Rand
	mode         Mode
	neighborhood int
	logger       *slog.Logger
}

// WithPolicy selects the overshoot tie-break policy for Vector.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithRand supplies the generator used by PolicyWeightedRandom.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithMode selects exact or less-than row matching for Biproportional.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithNeighborhood sets the column window k of the Neighborhood tier.
// k must be ≥ 0; k == 0 skips the tier entirely. Panics on negative k.
func WithNeighborhood(k int) Option {
	if k < 0 {
		panic("integerize: WithNeighborhood requires k >= 0")
	}

	return func(c *config) { c.neighborhood = k }
}

// WithLogger attaches a logger for per-pass debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func gatherOptions(opts []Option) config {
	c := config{
		policy:       DefaultPolicy,
		mode:         DefaultMode,
		neighborhood: DefaultNeighborhood,
	}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}
