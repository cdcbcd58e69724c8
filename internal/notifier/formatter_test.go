package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/strategy"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"/predict 3 2.5, 3.0, 3.5", Command{Name: "predict", Args: "3 2.5, 3.0, 3.5"}},
		{"  /Summary  ", Command{Name: "summary"}},
		{"/profiles@SentinelBot", Command{Name: "profiles"}},
		{"hello", Command{Args: "hello"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCommand(tt.text), tt.text)
	}
}

func TestFormatPrediction(t *testing.T) {
	res := &model.PredictionResult{
		Category: model.CategoryStable,
		Profile:  strategy.Profile(model.CategoryStable),
		History:  model.History{2.5, 3, 3.5},
	}
	msg := FormatPrediction(res)
	assert.Contains(t, msg, "<b>Stable range</b> (STABLE)")
	assert.Contains(t, msg, "2.00x – 3.50x")
	assert.Contains(t, msg, "2.50x, 3.00x, 3.50x")
}

func TestFormatValidationError_Escapes(t *testing.T) {
	assert.Equal(t, "❌ &#34;&lt;b&gt;&#34; is bad", FormatValidationError(`"<b>" is bad`))
}

func TestFormatProfiles_SkipsNone(t *testing.T) {
	msg := FormatProfiles([]int{2, 3, 6})
	assert.Contains(t, msg, "Breakout likely")
	assert.NotContains(t, msg, "Awaiting input")
	assert.Contains(t, msg, "[2 3 6]")
}

func TestFormatSummary(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := &recorder.Summary{
		Since:       now.Add(-24 * time.Hour),
		Predictions: map[model.Category]int{model.CategoryLow: 4, model.CategoryBreakout: 1},
		Rejections:  map[string]int{"ZERO_VALUE": 2},
	}
	msg := FormatSummary(s, now)
	assert.Contains(t, msg, "2026-03-02")
	assert.Contains(t, msg, "Predictions: 5")
	assert.Contains(t, msg, "LOW: 4")
	assert.Contains(t, msg, "BREAKOUT: 1")
	assert.NotContains(t, msg, "STABLE")
	assert.Contains(t, msg, "Rejected inputs: 2")
}
