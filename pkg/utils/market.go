package utils

import (
	"strings"
	"time"
)

// IndiaLocation is the timezone for Indian markets.
var IndiaLocation *time.Location

func init() {
	var err error
	IndiaLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback to UTC+5:30
		IndiaLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// NormalizeTicker trims and uppercases a user-entered symbol. The NSE
// suffix (".NS") is never appended here; the server owns that mapping.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// FormatISTDate formats a date in IST.
func FormatISTDate(t time.Time) string {
	return t.In(IndiaLocation).Format("02-Jan-2006")
}

// FormatISTDateTime formats a datetime in IST.
func FormatISTDateTime(t time.Time) string {
	return t.In(IndiaLocation).Format("02-Jan-2006 15:04:05")
}

// ShortDate trims an ISO date-or-timestamp string to its date part for
// axis labels; intraday timestamps keep their HH:MM.
func ShortDate(iso string) string {
	if len(iso) >= 16 && (iso[10] == 'T' || iso[10] == ' ') {
		return iso[5:10] + " " + iso[11:16]
	}
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}
