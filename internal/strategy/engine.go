package strategy

import (
	"errors"

	"MultiplierSentinel/internal/model"
)

// MinHistory is the shortest history the engine accepts.
const MinHistory = 2

// ErrInsufficientHistory is returned when fewer than MinHistory values are supplied.
var ErrInsufficientHistory = errors.New("strategy: history needs at least 2 values")

// rules is the ordered category mapping. The first matching rule wins.
var rules = []struct {
	Category model.Category
	Match    func(h model.History) bool
}{
	{model.CategoryCooldown, isCooldown},
	{model.CategoryBreakout, isBreakout},
	{model.CategoryStable, isStable},
}

// DefaultCategory is returned when no rule matches.
const DefaultCategory = model.CategoryLow

// mapCategory walks rules in priority order.
func mapCategory(h model.History) model.Category {
	for _, r := range rules {
		if r.Match(h) {
			return r.Category
		}
	}
	return DefaultCategory
}

// Classify assigns a category to the history and attaches its profile.
// It never returns CategoryNone.
func Classify(h model.History) (*model.PredictionResult, error) {
	if len(h) < MinHistory {
		return nil, ErrInsufficientHistory
	}
	category := mapCategory(h)
	history := make(model.History, len(h))
	copy(history, h)
	return &model.PredictionResult{
		Category: category,
		Profile:  Profile(category),
		History:  history,
	}, nil
}
