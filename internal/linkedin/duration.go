package linkedin

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Supported date-range grammar, everything else is an absorbed parse failure:
//
//	"Jan 2020 - Mar 2022"
//	"January 2020 – Present" (also "Current", "Now")
//	"2020 - 2022"
//	"3 yrs 4 mos" provider shorthand (also "1 yr", "6 mos")
var (
	rangeSepExpr  = regexp.MustCompile(`\s+[-–—]\s+`)
	shorthandExpr = regexp.MustCompile(`(?i)(?:(\d+)\s*yrs?)?\s*(?:(\d+)\s*mos?)?`)

	monthLayouts = []string{"Jan 2006", "January 2006", "2006"}

	presentWords = map[string]struct{}{
		"present": {}, "current": {}, "now": {},
	}
)

// ParseDurationMonths converts a free-text date range into whole months.
// Open-ended ranges resolve against now. The third return value is false when
// the text does not fit the grammar.
func ParseDurationMonths(text string, now time.Time) (months int, current bool, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false, false
	}

	if parts := rangeSepExpr.Split(text, 2); len(parts) == 2 {
		start, startOK := parseMonthYear(parts[0])
		if !startOK {
			return 0, false, false
		}

		endText := strings.ToLower(strings.TrimSpace(parts[1]))
		// A trailing duration like "Jan 2020 - Present · 3 yrs" keeps
		// only the end date token.
		if idx := strings.IndexAny(endText, "·("); idx > 0 {
			endText = strings.TrimSpace(endText[:idx])
		}

		end := now
		if _, isPresent := presentWords[endText]; isPresent {
			current = true
		} else {
			var endOK bool
			end, endOK = parseMonthYear(endText)
			if !endOK {
				return 0, false, false
			}
		}

		months = monthsBetween(start, end)
		return months, current, true
	}

	if m := shorthandExpr.FindStringSubmatch(text); m != nil && (m[1] != "" || m[2] != "") {
		years, _ := strconv.Atoi(m[1])
		mos, _ := strconv.Atoi(m[2])
		return years*12 + mos, false, true
	}

	return 0, false, false
}

func parseMonthYear(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}
