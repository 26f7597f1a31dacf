package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatScore formats an aggregate score as "4.5" or "—" if nil.
func FormatScore(score *float64) string {
	if score == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *score)
}

// FormatScoreWithStar formats a score as "4.5 ★" for list rows.
func FormatScoreWithStar(score *float64) string {
	if score == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f ★", *score)
}

// FormatScoreStars renders a 1-5 score as stars (e.g., "★★★★☆").
func FormatScoreStars(score *float64) string {
	if score == nil {
		return "—"
	}
	stars := int(math.Round(*score))
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	result := ""
	for i := 0; i < 5; i++ {
		if i < stars {
			result += "★"
		} else {
			result += "☆"
		}
	}
	return result
}

// FormatReviewCount formats a review tally for display.
// "No ratings yet", "1 review", "12 reviews"
func FormatReviewCount(count int) string {
	switch {
	case count <= 0:
		return "No ratings yet"
	case count == 1:
		return "1 review"
	default:
		return fmt.Sprintf("%d reviews", count)
	}
}

// FormatTableCount formats a table tally, "—" when unknown.
func FormatTableCount(count *int) string {
	if count == nil {
		return "—"
	}
	if *count == 1 {
		return "1 table"
	}
	return fmt.Sprintf("%d tables", *count)
}

// FormatTimeHuman formats a timestamp with humanized relative display.
// "Today", "Yesterday", "3d ago", "Jan 15", "Jan 15 '24"
func FormatTimeHuman(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())

	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatAuthor returns the display name for a review author.
func FormatAuthor(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Anonymous"
	}
	return username
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
