// Package dates holds the date handling for notice fields. The feed carries
// dates as strings (date-only or full timestamps, depending on the source
// platform); everything here degrades to a neutral value instead of failing
// when a field is absent or malformed.
package dates

import (
	"strings"
	"time"

	"marches-engine/internal/domain"
)

const week = 7 * 24 * time.Hour

var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse reads an ISO-8601 date or timestamp string. ok is false for empty
// or unparsable input.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDisplay renders a date for the cards (dd/mm/yyyy). Unparsable input
// comes back verbatim so the UI never shows a blank where raw data existed.
func FormatDisplay(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006")
}

// NormalizeTimeOfDay rewrites the "18h00" spelling used by some platforms
// to "18:00". Anything else passes through untouched.
func NormalizeTimeOfDay(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "hH"); i > 0 && i < len(s)-1 {
		return s[:i] + ":" + s[i+1:]
	}
	return s
}

// DeadlinePassed reports whether the response deadline is behind us.
func DeadlinePassed(dateStr, timeStr string) bool {
	return DeadlinePassedAt(dateStr, timeStr, time.Now())
}

// DeadlinePassedAt combines the deadline date with its optional local
// time-of-day and compares against now. A missing time-of-day means the
// deadline runs to the end of that day. Absent or unparsable data never
// flags a deadline as passed.
func DeadlinePassedAt(dateStr, timeStr string, now time.Time) bool {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return false
	}
	if len(dateStr) > 10 {
		dateStr = dateStr[:10]
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
	if err != nil {
		return false
	}

	deadline := day.Add(24*time.Hour - time.Second) // end of day
	if ts := NormalizeTimeOfDay(timeStr); ts != "" {
		tod, err := time.Parse("15:04", ts)
		if err != nil {
			return false
		}
		deadline = day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
	}
	return now.After(deadline)
}

// Recent reports whether the publication date falls within the last week.
func Recent(pubDate string) bool {
	return RecentAt(pubDate, time.Now())
}

// RecentAt is true iff pubDate parses and lies within the last 7x24h of
// now, boundary inclusive.
func RecentAt(pubDate string, now time.Time) bool {
	t, ok := Parse(pubDate)
	if !ok {
		return false
	}
	return now.Sub(t) <= week
}

// LatestPublication returns the lexicographically greatest non-empty
// publication_date in the collection ("" when none). ISO-8601 strings
// order chronologically, so this is the newest one; used only as a
// fallback when the feed envelope has no generated_at.
func LatestPublication(notices []domain.Notice) string {
	latest := ""
	for _, n := range notices {
		if n.PublicationDate != "" && n.PublicationDate > latest {
			latest = n.PublicationDate
		}
	}
	return latest
}
