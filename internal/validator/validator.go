// Package validator turns raw comma-separated text into a history the
// classifier can consume.
package validator

import (
	"math"
	"strconv"
	"strings"

	"MultiplierSentinel/internal/model"
)

// Split breaks raw input on commas, trims every piece and drops empty ones.
func Split(raw string) []string {
	parts := strings.Split(raw, ",")
	pieces := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Validate parses raw into a history of exactly requiredLength positive values.
// Rules run in order (count, parse, negative, zero) and only the first failure is reported.
func Validate(raw string, requiredLength int) (model.History, error) {
	pieces := Split(raw)
	if len(pieces) != requiredLength {
		return nil, &ValidationError{Kind: KindWrongCount, Want: requiredLength, Got: len(pieces)}
	}

	history := make(model.History, len(pieces))
	for i, p := range pieces {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(v) {
			return nil, &ValidationError{Kind: KindNotANumber, Token: p}
		}
		history[i] = v
	}

	for i, v := range history {
		if v < 0 {
			return nil, &ValidationError{Kind: KindNegativeValue, Token: pieces[i]}
		}
	}
	for i, v := range history {
		if v == 0 {
			return nil, &ValidationError{Kind: KindZeroValue, Token: pieces[i]}
		}
	}
	return history, nil
}
