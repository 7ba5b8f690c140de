package integerize

import "fmt"

// Tier is a relaxation level of the Biproportional reallocation pass. It
// decides which cells may receive a unit moved through the ledger.
type Tier int

const (
	// TierStrict admits only cells that are currently non-zero.
	TierStrict Tier = iota

	// TierNeighborhood also admits a zero cell when a non-zero cell lies
	// within the configured column window of the same row.
	TierNeighborhood

	// TierUnrestricted admits any cell.
	TierUnrestricted

	// TierInfeasible is terminal: no tier could make progress.
	TierInfeasible
)

func (t Tier) String() string {
	switch t {
	case TierStrict:
		return "strict"
	case TierNeighborhood:
		return "neighborhood"
	case TierUnrestricted:
		return "unrestricted"
	case TierInfeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Relaxation is the tier state machine of one Biproportional call:
//
//	Strict → Neighborhood(k) → Unrestricted → Infeasible
//
// It only moves forward and is advanced on a pass that changed nothing.
// With a zero window the Neighborhood tier equals Strict and is skipped.
type Relaxation struct {
	tier   Tier
	window int
}

// NewRelaxation starts in TierStrict with the given neighborhood window.
// Negative windows are treated as zero.
func NewRelaxation(window int) *Relaxation {
	if window < 0 {
		window = 0
	}

	return &Relaxation{tier: TierStrict, window: window}
}

// Tier reports the current tier.
func (r *Relaxation) Tier() Tier { return r.tier }

// Window reports the neighborhood column window.
func (r *Relaxation) Window() int { return r.window }

// Advance moves to the next tier and returns it. TierInfeasible is absorbing.
func (r *Relaxation) Advance() Tier {
	switch r.tier {
	case TierStrict:
		r.tier = TierNeighborhood
		if r.window == 0 {
			r.tier = TierUnrestricted
		}
	case TierNeighborhood:
		r.tier = TierUnrestricted
	default:
		r.tier = TierInfeasible
	}

	return r.tier
}

// Eligible reports whether row[j] may receive a unit under the current tier.
func (r *Relaxation) Eligible(row []int, j int) bool {
	switch r.tier {
	case TierStrict:
		return row[j] > 0
	case TierNeighborhood:
		if row[j] > 0 {
			return true
		}
		lo, hi := max(j-r.window, 0), min(j+r.window, len(row)-1)
		for c := lo; c <= hi; c++ {
			if c != j && row[c] > 0 {
				return true
			}
		}

		return false
	case TierUnrestricted:
		return true
	default:
		return false
	}
}
