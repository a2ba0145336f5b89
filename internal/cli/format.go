package cli

import (
	"fmt"
	"time"
)

// DueLabel renders a days-until-run-out value the way the list views show
// it.
func DueLabel(days int) string {
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}

// FormatDate renders a date for list output.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatShortDate renders a date without the year.
func FormatShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// Truncate shortens a string to max runes with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
