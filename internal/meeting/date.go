package meeting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date/time text on detail pages comes in two conventions:
//
//	2026年2月17日（火曜日）18時00分～20時00分
//	2026/3/1 15:00～17:00
//
// The date is normalized to YYYY-MM-DD; the time range keeps whichever
// glyph convention the source used.
var (
	kanjiDatePattern = regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月\s*(\d{1,2})日`)
	slashDatePattern = regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`)

	kanjiTimePattern = regexp.MustCompile(`\d{1,2}時\d{1,2}分(?:\s*[～〜]\s*\d{1,2}時\d{1,2}分)?`)
	colonTimePattern = regexp.MustCompile(`\d{1,2}:\d{2}(?:\s*[～〜]\s*\d{1,2}:\d{2})?`)
)

// ParseDateTime extracts a canonical date and a display time string
// from detail-page date/time text.
//
// ok is false when no date convention matched; such a record is not
// publishable. When the text matches neither known time convention the
// raw text is retained verbatim as the time field rather than failing.
func ParseDateTime(text string) (date, timeText string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", false
	}

	date = extractDate(text)
	timeText = extractTime(text)
	return date, timeText, date != ""
}

// extractDate captures year/month/day explicitly and zero-pads month
// and day. Returns "" when neither date convention matches or the
// captured values are not a plausible calendar date.
func extractDate(text string) string {
	matches := kanjiDatePattern.FindStringSubmatch(text)
	if matches == nil {
		matches = slashDatePattern.FindStringSubmatch(text)
	}
	if matches == nil {
		return ""
	}

	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// extractTime returns the matched time range, trying the localized
// hour/minute-glyph convention first, then the colon-delimited 24-hour
// convention. Unmatched text is returned as-is.
func extractTime(text string) string {
	if match := kanjiTimePattern.FindString(text); match != "" {
		return match
	}
	if match := colonTimePattern.FindString(text); match != "" {
		return match
	}
	return text
}
