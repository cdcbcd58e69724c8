package strategy

import (
	"MultiplierSentinel/internal/calculator"
	"MultiplierSentinel/internal/model"
)

const (
	cooldownAbove = 5.0

	breakoutMinLength   = 5
	breakoutLowCeiling  = 2.0 // strictly below
	breakoutMinLow      = 5
	breakoutTinyCeiling = 1.20 // at most
	breakoutMinTiny     = 2

	stableWindow = 3
	stableLow    = 2.0
	stableHigh   = 4.0
)

// isCooldown fires on a single large round at the end of the history.
func isCooldown(h model.History) bool {
	return h.Last() > cooldownAbove
}

// isBreakout looks for a long run of low rounds. Both counts span the whole history.
func isBreakout(h model.History) bool {
	if len(h) < breakoutMinLength {
		return false
	}
	return calculator.CountBelow(h, breakoutLowCeiling) >= breakoutMinLow &&
		calculator.CountAtMost(h, breakoutTinyCeiling) >= breakoutMinTiny
}

// isStable checks only the last three rounds.
func isStable(h model.History) bool {
	if len(h) < stableWindow {
		return false
	}
	return calculator.AllWithin(h.Tail(stableWindow), stableLow, stableHigh)
}
