// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// EmDash is rendered wherever a numeric value is absent or not a number.
const EmDash = "—"

// FormatIndianCurrency formats a number in Indian currency format with
// lakh/crore grouping (1,00,00,000 rather than 10,000,000).
func FormatIndianCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return EmDash
	}
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	formatted := formatIndianNumber(parts[0])

	result := "₹" + formatted + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// formatIndianNumber groups an integer string in the Indian numbering
// system: first group of three from the right, then groups of two.
func formatIndianNumber(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]

	for len(s) > 0 {
		if len(s) >= 2 {
			result = s[len(s)-2:] + "," + result
			s = s[:len(s)-2]
		} else {
			result = s + "," + result
			s = ""
		}
	}

	return result
}

// FormatPrice formats a price to two decimals, or an em-dash for NaN and
// infinities.
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return EmDash
	}
	return fmt.Sprintf("%.2f", price)
}

// FormatOptionalPrice formats a nullable price, rendering absent values as
// an em-dash.
func FormatOptionalPrice(price *float64) string {
	if price == nil {
		return EmDash
	}
	return FormatPrice(*price)
}

// FormatAxisPrice formats a y-axis price label, abbreviating thousands with
// a "k" suffix.
func FormatAxisPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return EmDash
	}
	if math.Abs(price) >= 1000 {
		return fmt.Sprintf("%.1fk", price/1000)
	}
	return fmt.Sprintf("%.0f", price)
}

// FormatVolumeMillions formats a raw volume in millions, two decimals.
func FormatVolumeMillions(volume int64) string {
	return fmt.Sprintf("%.2fM", float64(volume)/1e6)
}

// FormatVolume formats volume in compact Indian units (K / L / Cr).
func FormatVolume(volume int64) string {
	switch {
	case volume >= 10000000:
		return fmt.Sprintf("%.2f Cr", float64(volume)/10000000)
	case volume >= 100000:
		return fmt.Sprintf("%.2f L", float64(volume)/100000)
	case volume >= 1000:
		return fmt.Sprintf("%.2f K", float64(volume)/1000)
	default:
		return fmt.Sprintf("%d", volume)
	}
}

// FormatRiskReward formats a risk-reward ratio as "1:N".
func FormatRiskReward(rr *float64) string {
	if rr == nil {
		return EmDash
	}
	return fmt.Sprintf("1:%.2f", *rr)
}

// FormatConviction formats a [0,1] conviction to one decimal.
func FormatConviction(conviction float64) string {
	return fmt.Sprintf("%.1f", conviction)
}

// FormatPercent formats a percentage with an explicit sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
