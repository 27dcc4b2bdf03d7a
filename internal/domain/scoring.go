package domain

// Score deltas per outcome. A timeout carries no delta of its own.
const (
	DeltaWin       = 1
	DeltaIncorrect = -1
	DeltaHint      = -1
	DeltaReveal    = -1
)

// ApplyDelta adds delta to score, clamping the result at zero
func ApplyDelta(score, delta int) int {
	return max(0, score+delta)
}
