package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	ratioPattern   = regexp.MustCompile(`1\s*:\s*([\d.]+)`)
	numberStripper = regexp.MustCompile(`[^\d.\-]`)
)

// parseNumber parses a numeric value out of free text, tolerating currency
// symbols, commas, and markdown leftovers ("₹ 2,750.50" -> 2750.50).
func parseNumber(val string) *float64 {
	cleaned := numberStripper.ReplaceAllString(stripMD(val), "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseRiskReward parses a risk-reward value. "1 : 2.5" yields 2.5; any
// other form is stripped of non-numeric characters and parsed as a decimal.
func parseRiskReward(val string) *float64 {
	if m := ratioPattern.FindStringSubmatch(val); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &f
		}
		return nil
	}
	return parseNumber(val)
}

// clampConviction normalises a conviction score: values above 1 are treated
// as percentages and divided by 100.
func clampConviction(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// numberAfter extracts and parses the first number following a field label.
func numberAfter(corpus, labelPattern string) *float64 {
	val := fieldValue(corpus, labelPattern)
	if val == "" {
		return nil
	}
	return parseNumber(val)
}

// normaliseKey converts a risk-detail label to lowercase_with_underscores.
func normaliseKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
