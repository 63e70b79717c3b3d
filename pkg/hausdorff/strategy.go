package hausdorff

import "math"

// Strategy selection thresholds. They are empirical: re-benchmark before
// changing them, index build and query costs shift the break-even point.
const (
	// MinIndexCandidateSize is the smallest set size, on either side, for
	// which building a spatial index is considered.
	MinIndexCandidateSize = 32
	// MaxNaiveCrossProduct is the largest |A|·|B| evaluated by brute force.
	MaxNaiveCrossProduct = 4000
)

// Strategy is the evaluation method used for one directed pass.
type Strategy uint8

const (
	Naive Strategy = iota
	Indexed
)

func (s Strategy) String() string {
	switch s {
	case Naive:
		return "naive"
	case Indexed:
		return "indexed"
	default:
		return "unknown"
	}
}

// ChooseStrategy returns the strategy a directed pass over sets of the given
// sizes uses: brute force when either side is smaller than
// MinIndexCandidateSize or the cross product is at most MaxNaiveCrossProduct,
// an index over the candidates otherwise.
func ChooseStrategy(originCount, candidateCount int) Strategy {
	if min(originCount, candidateCount) < MinIndexCandidateSize {
		return Naive
	}
	if saturatingMul(originCount, candidateCount) <= MaxNaiveCrossProduct {
		return Naive
	}
	return Indexed
}

func saturatingMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
