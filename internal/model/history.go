package model

// History is an ordered run of round multipliers, most recent last.
type History []float64

// Last returns the most recent multiplier, or 0 for an empty history.
func (h History) Last() float64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1]
}

// Tail returns the last n entries. The whole history is returned when it is shorter than n.
func (h History) Tail(n int) History {
	if n >= len(h) {
		return h
	}
	if n <= 0 {
		return History{}
	}
	return h[len(h)-n:]
}
