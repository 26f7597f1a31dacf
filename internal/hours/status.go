package hours

import (
	"strings"
	"time"

	// The product is geographically scoped to one city, so a single
	// civil timezone is authoritative no matter where the binary runs.
	// Embed tzdata so LoadLocation cannot depend on the host.
	_ "time/tzdata"
)

// Status is the three-valued open/closed answer. Unknown means the
// schedule was absent or unparsable and must render as no status, never
// as closed.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusClosed
)

// Eastern is the fixed civil timezone for all "now" calculations.
var Eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("failed to load America/New_York: " + err.Error())
	}
	return loc
}

// StatusAt determines open/closed at the given instant. Pure in
// (schedule, at); the instant is converted to the fixed timezone, so the
// result is independent of the host machine's local zone.
func StatusAt(s *Schedule, at time.Time) Status {
	if s == nil || len(s.Periods) == 0 {
		return StatusUnknown
	}

	local := at.In(Eastern)
	day := int(local.Weekday()) // 0=Sunday, matching the provider
	minutes := local.Hour()*60 + local.Minute()

	for _, period := range s.Periods {
		if period.Close == nil {
			// The provider encodes 24/7 as a single Sunday-00:00 open
			// with no close. Any other close-less period counts only
			// from its open point onward.
			if period.Open.Day == 0 && period.Open.Minutes() == 0 {
				return StatusOpen
			}
			if period.Open.Day == day && minutes >= period.Open.Minutes() {
				return StatusOpen
			}
			continue
		}
		openDay := period.Open.Day
		closeDay := period.Close.Day
		switch {
		case openDay == day && closeDay == day:
			if minutes >= period.Open.Minutes() && minutes < period.Close.Minutes() {
				return StatusOpen
			}
		case openDay == day:
			// Closes on a later day; open from open time to end of day.
			if minutes >= period.Open.Minutes() {
				return StatusOpen
			}
		case closeDay == day:
			// Opened yesterday; open from start of day until close.
			if minutes < period.Close.Minutes() {
				return StatusOpen
			}
		}
	}
	return StatusClosed
}

// StatusOf parses a raw cached blob and evaluates it at the instant.
// Used by the open-now filter, which must work from cache alone.
func StatusOf(raw string, at time.Time) Status {
	schedule, err := Parse(raw)
	if err != nil {
		return StatusUnknown
	}
	return StatusAt(schedule, at)
}

// mondayIndex maps a time.Weekday onto the Monday-first description
// index used by the provider's weekdayDescriptions.
func mondayIndex(day time.Weekday) int {
	if day == time.Sunday {
		return 6
	}
	return int(day) - 1
}

// TodayHours returns the human-readable hours text for the current day
// in the fixed timezone, with the leading day-name prefix stripped.
// Empty string when the schedule carries no usable description.
func TodayHours(s *Schedule, at time.Time) string {
	if s == nil || len(s.WeekdayDescriptions) == 0 {
		return ""
	}
	idx := mondayIndex(at.In(Eastern).Weekday())
	if idx >= len(s.WeekdayDescriptions) {
		return ""
	}
	return stripDayPrefix(s.WeekdayDescriptions[idx])
}

// DayHours is one row of the weekly hours table.
type DayHours struct {
	Day     string
	Hours   string
	IsToday bool
}

// WeekHours returns the seven-day hours table in the provider's
// Monday-first order, flagging the current day in the fixed timezone.
// Nil when no descriptions are available.
func WeekHours(s *Schedule, at time.Time) []DayHours {
	if s == nil || len(s.WeekdayDescriptions) == 0 {
		return nil
	}
	todayIdx := mondayIndex(at.In(Eastern).Weekday())

	week := make([]DayHours, 0, len(s.WeekdayDescriptions))
	for i, desc := range s.WeekdayDescriptions {
		day, text := splitDescription(desc)
		week = append(week, DayHours{
			Day:     day,
			Hours:   text,
			IsToday: i == todayIdx,
		})
	}
	return week
}

func stripDayPrefix(desc string) string {
	_, text := splitDescription(desc)
	return text
}

func splitDescription(desc string) (day, text string) {
	parts := strings.SplitN(desc, ": ", 2)
	if len(parts) < 2 {
		return desc, desc
	}
	return parts[0], parts[1]
}
