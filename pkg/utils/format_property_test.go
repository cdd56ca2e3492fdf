package utils

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: Indian currency grouping keeps all digits and only reorders
// them with separators.
//
// Stripping the rupee sign, commas, and decimal point from the formatted
// value must reproduce the plain digits of the amount.
func TestProperty_IndianCurrencyPreservesDigits(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("digits preserved", prop.ForAll(
		func(amount int64) bool {
			formatted := FormatIndianCurrency(float64(amount))
			stripped := strings.NewReplacer("₹", "", ",", "", ".", "", "-", "").Replace(formatted)
			abs := amount
			if abs < 0 {
				abs = -abs
			}
			want := strings.NewReplacer(".", "").Replace(FormatPrice(float64(abs)))
			return stripped == want
		},
		gen.Int64Range(-99999999, 99999999),
	))

	properties.Property("groups of two after the first three", prop.ForAll(
		func(amount int64) bool {
			formatted := FormatIndianCurrency(float64(amount))
			intPart := strings.TrimPrefix(strings.Split(formatted, ".")[0], "-")
			intPart = strings.TrimPrefix(intPart, "₹")
			groups := strings.Split(intPart, ",")
			if len(groups) == 1 {
				return len(groups[0]) <= 3
			}
			if len(groups[len(groups)-1]) != 3 {
				return false
			}
			for _, g := range groups[1 : len(groups)-1] {
				if len(g) != 2 {
					return false
				}
			}
			return len(groups[0]) >= 1 && len(groups[0]) <= 2
		},
		gen.Int64Range(0, 999999999),
	))

	properties.TestingRun(t)
}

// Property: truncation never exceeds the limit and keeps short strings.
func TestProperty_TruncateStringBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("never exceeds max length", prop.ForAll(
		func(s string, maxLen int) bool {
			out := TruncateString(s, maxLen)
			if len(s) <= maxLen {
				return out == s
			}
			return len(out) <= maxLen
		},
		gen.AlphaString(),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}

func TestFormatIndianCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234567.89, "₹12,34,567.89"},
		{10000000, "₹1,00,00,000.00"},
		{999, "₹999.00"},
		{-4500.5, "-₹4,500.50"},
		{math.NaN(), EmDash},
	}
	for _, tc := range cases {
		if got := FormatIndianCurrency(tc.in); got != tc.want {
			t.Errorf("FormatIndianCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAxisPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{850, "850"},
		{1000, "1.0k"},
		{3520, "3.5k"},
		{math.NaN(), EmDash},
	}
	for _, tc := range cases {
		if got := FormatAxisPrice(tc.in); got != tc.want {
			t.Errorf("FormatAxisPrice(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{500, "500"},
		{2500, "2.50 K"},
		{350000, "3.50 L"},
		{25000000, "2.50 Cr"},
	}
	for _, tc := range cases {
		if got := FormatVolume(tc.in); got != tc.want {
			t.Errorf("FormatVolume(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRiskReward(t *testing.T) {
	rr := 2.5
	if got := FormatRiskReward(&rr); got != "1:2.50" {
		t.Errorf("FormatRiskReward = %q", got)
	}
	if got := FormatRiskReward(nil); got != EmDash {
		t.Errorf("FormatRiskReward(nil) = %q", got)
	}
}

func TestNormalizeTickerNoSuffix(t *testing.T) {
	if got := NormalizeTicker("  reliance "); got != "RELIANCE" {
		t.Errorf("NormalizeTicker = %q", got)
	}
	if got := NormalizeTicker("TCS.NS"); got != "TCS.NS" {
		t.Errorf("NormalizeTicker must not rewrite suffixes, got %q", got)
	}
}

func TestShortDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-08-27", "2026-08-27"},
		{"2026-08-27T10:15:00", "08-27 10:15"},
		{"2026-08-27 10:15:00+05:30", "08-27 10:15"},
		{"bad", "bad"},
	}
	for _, tc := range cases {
		if got := ShortDate(tc.in); got != tc.want {
			t.Errorf("ShortDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
