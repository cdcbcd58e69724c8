package recorder

import (
	"time"

	"MultiplierSentinel/internal/model"
)

// PredictionEvent records one successful classification.
type PredictionEvent struct {
	ID       string // generated when empty
	Source   string // "web", "api", "telegram", "cli"
	Length   int
	Values   model.History
	Category model.Category
	At       time.Time // defaults to now
}

// RejectionEvent records an input refused before classification.
type RejectionEvent struct {
	ID     string
	Source string
	Length int
	Kind   string // validation kind or "LENGTH_NOT_ALLOWED"
	Input  string
	At     time.Time
}

// Summary aggregates recorded events since a point in time.
type Summary struct {
	Since       time.Time
	Predictions map[model.Category]int
	Rejections  map[string]int
}

// TotalPredictions sums predictions over all categories.
func (s *Summary) TotalPredictions() int {
	n := 0
	for _, c := range s.Predictions {
		n += c
	}
	return n
}

// TotalRejections sums rejections over all kinds.
func (s *Summary) TotalRejections() int {
	n := 0
	for _, c := range s.Rejections {
		n += c
	}
	return n
}

func newSummary(since time.Time) *Summary {
	return &Summary{
		Since:       since,
		Predictions: make(map[model.Category]int),
		Rejections:  make(map[string]int),
	}
}

// Recorder persists classification outcomes for later analysis.
type Recorder interface {
	RecordPrediction(evt *PredictionEvent) error
	RecordRejection(evt *RejectionEvent) error
	Summary(since time.Time) (*Summary, error)
	Prune(before time.Time) (int64, error)
	Close() error
}
