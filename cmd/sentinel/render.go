package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/strategy"
)

var (
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	bold  = lipgloss.NewStyle().Bold(true)
	errSt = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")).Bold(true)
	card  = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#334155")).
		Padding(0, 2)
)

func categoryStyle(p model.CategoryProfile) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Bold(true)
}

func renderResult(res *model.PredictionResult) string {
	p := res.Profile
	values := make([]string, len(res.History))
	for i, v := range res.History {
		values[i] = fmt.Sprintf("%.2fx", v)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		categoryStyle(p).Render(fmt.Sprintf("%s %s (%s)", p.Icon, p.Label, res.Category)),
		"Expected range: "+bold.Render(p.Range),
		dim.Render("History: "+strings.Join(values, ", ")),
	)
	return card.BorderForeground(lipgloss.Color(p.Color)).Render(body)
}

func renderError(msg string) string {
	return errSt.Render("✗ " + msg)
}

func renderProfiles(allowed []int) string {
	var lines []string
	for _, c := range strategy.Categories() {
		p := strategy.Profile(c)
		lines = append(lines, fmt.Sprintf("%s %-9s %s  %s",
			p.Icon, categoryStyle(p).Render(string(c)), p.Range, dim.Render(p.Label)))
	}
	if len(allowed) > 0 {
		lines = append(lines, "", dim.Render(fmt.Sprintf("Allowed lengths: %v", allowed)))
	}
	return strings.Join(lines, "\n")
}

func renderSummary(s *recorder.Summary) string {
	lines := []string{
		bold.Render("Since " + s.Since.Format("2006-01-02 15:04")),
		fmt.Sprintf("Predictions: %d", s.TotalPredictions()),
	}
	for _, c := range strategy.Categories() {
		if n := s.Predictions[c]; n > 0 {
			lines = append(lines, fmt.Sprintf("  %s %d", categoryStyle(strategy.Profile(c)).Render(string(c)), n))
		}
	}
	lines = append(lines, fmt.Sprintf("Rejected inputs: %d", s.TotalRejections()))
	for kind, n := range s.Rejections {
		lines = append(lines, dim.Render(fmt.Sprintf("  %s %d", kind, n)))
	}
	return card.Render(strings.Join(lines, "\n"))
}
