package hours

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Schedule is the validated provider opening-hours structure. Parsing
// happens once at this boundary; everything downstream works with the
// tagged struct and never re-inspects raw JSON.
type Schedule struct {
	Periods             []Period
	WeekdayDescriptions []string // Monday-first per the provider contract
}

// Period is one weekly open/close span. Close is nil when the venue
// never closes (the provider omits it for 24/7 places).
type Period struct {
	Open  TimePoint
	Close *TimePoint
}

// TimePoint is a weekly civil time: day 0=Sunday through 6=Saturday in
// the provider's convention, plus hour and minute.
type TimePoint struct {
	Day    int
	Hour   int
	Minute int
}

// Minutes is the minute-of-day for the time point.
func (t TimePoint) Minutes() int {
	return t.Hour*60 + t.Minute
}

type wireTimePoint struct {
	Day    *int `json:"day"`
	Hour   int  `json:"hour"`
	Minute int  `json:"minute"`
}

type wirePeriod struct {
	Open  *wireTimePoint `json:"open"`
	Close *wireTimePoint `json:"close"`
}

type wireSchedule struct {
	Periods             []wirePeriod `json:"periods"`
	WeekdayDescriptions []string     `json:"weekdayDescriptions"`
}

// Parse validates a raw provider blob into a Schedule. Any structural
// mismatch is an error; callers translate that to the Unknown status
// rather than propagating it.
func Parse(raw string) (*Schedule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty schedule blob")
	}

	var wire wireSchedule
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	if len(wire.Periods) == 0 && len(wire.WeekdayDescriptions) == 0 {
		return nil, fmt.Errorf("schedule has neither periods nor weekday descriptions")
	}

	schedule := &Schedule{
		WeekdayDescriptions: wire.WeekdayDescriptions,
	}
	for i, p := range wire.Periods {
		if p.Open == nil || p.Open.Day == nil {
			return nil, fmt.Errorf("period %d has no open time", i)
		}
		open, err := toTimePoint(*p.Open)
		if err != nil {
			return nil, fmt.Errorf("period %d open: %w", i, err)
		}
		period := Period{Open: open}
		if p.Close != nil {
			if p.Close.Day == nil {
				return nil, fmt.Errorf("period %d close has no day", i)
			}
			close, err := toTimePoint(*p.Close)
			if err != nil {
				return nil, fmt.Errorf("period %d close: %w", i, err)
			}
			period.Close = &close
		}
		schedule.Periods = append(schedule.Periods, period)
	}
	return schedule, nil
}

func toTimePoint(w wireTimePoint) (TimePoint, error) {
	if *w.Day < 0 || *w.Day > 6 {
		return TimePoint{}, fmt.Errorf("day %d out of range", *w.Day)
	}
	if w.Hour < 0 || w.Hour > 23 {
		return TimePoint{}, fmt.Errorf("hour %d out of range", w.Hour)
	}
	if w.Minute < 0 || w.Minute > 59 {
		return TimePoint{}, fmt.Errorf("minute %d out of range", w.Minute)
	}
	return TimePoint{Day: *w.Day, Hour: w.Hour, Minute: w.Minute}, nil
}
