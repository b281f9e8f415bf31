package teams

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)

	// tickerDateRe matches the compressed YYMMMDD form exchanges embed in
	// tickers, e.g. the 25SEP25 of "KXNFLGAME-25SEP25BALGB". Tickers append
	// team abbreviations directly to the day digits, so no trailing boundary.
	tickerDateRe = regexp.MustCompile(`(?i)\b(\d{2})(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)(\d{2})`)

	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)

	monthNameDateRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)
)

var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ExtractDate pulls the first recognizable date out of free text and returns
// it in ISO form, or "" when nothing parses. Formats are tried in a fixed
// order (ISO, ticker, slash, month name); the first match wins.
func ExtractDate(text string) string {
	return extractDateAt(text, time.Now().UTC())
}

func extractDateAt(text string, now time.Time) string {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d
		}
	}

	if m := tickerDateRe.FindStringSubmatch(text); m != nil {
		year := 2000 + mustInt(m[1])
		month := monthNumbers[strings.ToLower(m[2])]
		day := mustInt(m[3])
		if validYMD(year, month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}

	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		month := mustInt(m[1])
		day := mustInt(m[2])
		year := now.Year()
		if m[3] != "" {
			year = mustInt(m[3])
			if year < 100 {
				year += 2000
			}
		}
		if validYMD(year, time.Month(month), day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}

	if m := monthNameDateRe.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[1])[:3]]
		day := mustInt(m[2])
		year := now.Year()
		if m[3] != "" {
			year = mustInt(m[3])
		}
		if validYMD(year, month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}

	return ""
}

func buildDate(y, m, d string) (string, bool) {
	year, month, day := mustInt(y), mustInt(m), mustInt(d)
	if !validYMD(year, time.Month(month), day) {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func validYMD(year int, month time.Month, day int) bool {
	if year < 2000 || year > 2100 || month < time.January || month > time.December || day < 1 {
		return false
	}
	// Normalizing through time.Date catches day overflow (e.g. Feb 30).
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && t.Month() == month
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
