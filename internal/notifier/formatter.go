package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/strategy"
)

// HelpText lists the chat commands.
const HelpText = "Available commands:\n" +
	"• /predict &lt;length&gt; &lt;values&gt; — e.g. /predict 3 2.5, 3.0, 3.5\n" +
	"• /profiles — category ranges\n" +
	"• /summary — last 24h activity"

// FormatPrediction formats a classification result as a Telegram message.
func FormatPrediction(res *model.PredictionResult) string {
	var b strings.Builder
	p := res.Profile
	b.WriteString(fmt.Sprintf("%s <b>%s</b> (%s)\n", p.Icon, html.EscapeString(p.Label), res.Category))
	b.WriteString(fmt.Sprintf("Expected range: %s\n", p.Range))

	values := make([]string, len(res.History))
	for i, v := range res.History {
		values[i] = fmt.Sprintf("%.2fx", v)
	}
	b.WriteString(fmt.Sprintf("History: %s", strings.Join(values, ", ")))
	return b.String()
}

// FormatValidationError formats a rejected input.
func FormatValidationError(msg string) string {
	return "❌ " + html.EscapeString(msg)
}

// FormatProfiles lists every category with its range.
func FormatProfiles(allowedLengths []int) string {
	var b strings.Builder
	b.WriteString("📋 <b>Categories</b>\n\n")
	for _, c := range strategy.Categories() {
		if c == model.CategoryNone {
			continue
		}
		p := strategy.Profile(c)
		b.WriteString(fmt.Sprintf("%s %s: %s\n", p.Icon, p.Label, p.Range))
	}
	b.WriteString(fmt.Sprintf("\nAllowed lengths: %v", allowedLengths))
	return b.String()
}

// FormatSummary formats recorder activity since s.Since.
func FormatSummary(s *recorder.Summary, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>MultiplierSentinel summary</b> | %s\n\n", now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Since: %s\n", s.Since.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Predictions: %d\n", s.TotalPredictions()))
	for _, c := range strategy.Categories() {
		if n := s.Predictions[c]; n > 0 {
			b.WriteString(fmt.Sprintf("  %s %s: %d\n", strategy.Profile(c).Icon, c, n))
		}
	}
	b.WriteString(fmt.Sprintf("Rejected inputs: %d", s.TotalRejections()))
	return b.String()
}
