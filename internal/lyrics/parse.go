package lyrics

import (
	"regexp"
	"strconv"
	"strings"
)

// Line is one timed lyric line. empty Text marks an instrumental beat.
type Line struct {
	Offset float64 `json:"offset"`
	Text   string  `json:"text"`
}

var (
	leadingStamp = regexp.MustCompile(`^\[(\d+):(\d{2})\.(\d{2,3})\]`)
	anyStamp     = regexp.MustCompile(`\[\d+:\d{2}\.\d{2,3}\]`)
)

// ParseTimedLines reads lines of the form "[mm:ss.ff] text" or "[mm:ss.fff] text".
// lines without a leading timestamp are skipped. source order is kept.
func ParseTimedLines(raw string) []Line {
	if raw == "" {
		return []Line{}
	}

	rows := strings.Split(raw, "\n")
	result := make([]Line, 0, len(rows))

	for _, row := range rows {
		row = strings.TrimLeft(strings.TrimRight(row, "\r"), " \t")

		m := leadingStamp.FindStringSubmatchIndex(row)
		if m == nil {
			continue
		}

		offset, ok := stampSeconds(row[m[2]:m[3]], row[m[4]:m[5]], row[m[6]:m[7]])
		if !ok {
			continue
		}

		result = append(result, Line{
			Offset: offset,
			Text:   strings.TrimSpace(row[m[1]:]),
		})
	}

	return result
}

// StripTimestamps removes every timestamp token and joins the non-blank lines
// with a blank line between them.
func StripTimestamps(raw string) string {
	rows := strings.Split(anyStamp.ReplaceAllString(raw, ""), "\n")
	kept := make([]string, 0, len(rows))
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		kept = append(kept, row)
	}
	return strings.Join(kept, "\n\n")
}

func stampSeconds(min, sec, frac string) (float64, bool) {
	minutes, err := strconv.Atoi(min)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(sec)
	if err != nil {
		return 0, false
	}
	// two digit fractions are hundredths
	for len(frac) < 3 {
		frac += "0"
	}
	millis, err := strconv.Atoi(frac)
	if err != nil {
		return 0, false
	}
	return float64(minutes*60+seconds) + float64(millis)/1000, true
}
