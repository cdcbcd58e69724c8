package calculator

// CountBelow returns how many values are strictly below limit.
func CountBelow(values []float64, limit float64) int {
	n := 0
	for _, v := range values {
		if v < limit {
			n++
		}
	}
	return n
}

// CountAtMost returns how many values are less than or equal to limit.
func CountAtMost(values []float64, limit float64) int {
	n := 0
	for _, v := range values {
		if v <= limit {
			n++
		}
	}
	return n
}

// AllWithin reports whether every value lies in [low, high]. An empty slice is not within any range.
func AllWithin(values []float64, low, high float64) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v < low || v > high {
			return false
		}
	}
	return true
}
