package garden

// healthStep scales a sentiment score into a garden health delta.
const healthStep = 0.1

// FoldHealth folds one check-in's sentiment into the running garden health.
// The result is always in [0,1].
func FoldHealth(current, sentiment float64) float64 {
	return clamp01(current + HealthDelta(sentiment))
}

// HealthDelta is the change FoldHealth applies before clamping.
func HealthDelta(sentiment float64) float64 {
	return sentiment * healthStep
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
