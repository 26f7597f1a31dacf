package hours

import (
	"context"
	"errors"
	"testing"
	"time"

	"felt/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 was a Monday.
func eastern(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, Eastern)
}

const lateBarSchedule = `{
	"periods": [
		{"open": {"day": 1, "hour": 11, "minute": 0}, "close": {"day": 2, "hour": 2, "minute": 0}},
		{"open": {"day": 5, "hour": 17, "minute": 0}, "close": {"day": 5, "hour": 23, "minute": 30}}
	],
	"weekdayDescriptions": [
		"Monday: 11:00 AM – 2:00 AM",
		"Tuesday: Closed",
		"Wednesday: Closed",
		"Thursday: Closed",
		"Friday: 5:00 PM – 11:30 PM",
		"Saturday: Closed",
		"Sunday: Closed"
	]
}`

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not_json", "hours: whenever"},
		{"no_periods_or_descriptions", `{"openNow": true}`},
		{"period_without_open", `{"periods": [{"close": {"day": 2, "hour": 2, "minute": 0}}]}`},
		{"day_out_of_range", `{"periods": [{"open": {"day": 7, "hour": 11, "minute": 0}}]}`},
		{"minute_out_of_range", `{"periods": [{"open": {"day": 1, "hour": 11, "minute": 61}}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			assert.Error(t, err)
			// Callers must see Unknown, never Closed.
			assert.Equal(t, StatusUnknown, StatusOf(tc.raw, eastern(1, 12, 0)))
		})
	}
}

func TestStatusAt_MidnightSpan(t *testing.T) {
	schedule, err := Parse(lateBarSchedule)
	require.NoError(t, err)

	tests := []struct {
		name     string
		at       time.Time
		expected Status
	}{
		{"monday_before_open", eastern(1, 10, 59), StatusClosed},
		{"monday_just_open", eastern(1, 11, 0), StatusOpen},
		{"monday_midnight_approach", eastern(1, 23, 59), StatusOpen},
		{"tuesday_after_midnight", eastern(2, 0, 30), StatusOpen},
		{"tuesday_one_am", eastern(2, 1, 0), StatusOpen},
		{"tuesday_at_close", eastern(2, 2, 0), StatusClosed},
		{"tuesday_three_am", eastern(2, 3, 0), StatusClosed},
		{"friday_same_day_open", eastern(5, 17, 0), StatusOpen},
		{"friday_close_exclusive", eastern(5, 23, 30), StatusClosed},
		{"saturday_closed_all_day", eastern(6, 12, 0), StatusClosed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusAt(schedule, tc.at))
		})
	}
}

func TestStatusAt_IndependentOfHostZone(t *testing.T) {
	schedule, err := Parse(lateBarSchedule)
	require.NoError(t, err)

	// Tuesday 01:00 Eastern expressed as a UTC instant must still be open.
	utc := eastern(2, 1, 0).UTC()
	assert.Equal(t, StatusOpen, StatusAt(schedule, utc))

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, StatusAt(schedule, eastern(2, 1, 0).In(tokyo)))
}

func TestStatusAt_AlwaysOpen(t *testing.T) {
	schedule, err := Parse(`{"periods": [{"open": {"day": 0, "hour": 0, "minute": 0}}]}`)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, StatusAt(schedule, eastern(4, 4, 44)))
}

func TestStatusAt_CloselessPeriodRespectsOpenPoint(t *testing.T) {
	// A close-less period that is not the Sunday-00:00 24/7 form counts
	// only on its own day, from its open time onward.
	schedule, err := Parse(`{"periods": [{"open": {"day": 3, "hour": 17, "minute": 0}}]}`)
	require.NoError(t, err)

	tests := []struct {
		name     string
		at       time.Time
		expected Status
	}{
		{"monday_small_hours", eastern(1, 3, 0), StatusClosed},
		{"wednesday_before_open", eastern(3, 16, 59), StatusClosed},
		{"wednesday_at_open", eastern(3, 17, 0), StatusOpen},
		{"wednesday_late", eastern(3, 23, 59), StatusOpen},
		{"thursday_morning", eastern(4, 9, 0), StatusClosed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusAt(schedule, tc.at))
		})
	}
}

func TestTodayHours_MondayFirstIndexing(t *testing.T) {
	schedule, err := Parse(lateBarSchedule)
	require.NoError(t, err)

	// Monday maps to index 0 and loses its day-name prefix.
	assert.Equal(t, "11:00 AM – 2:00 AM", TodayHours(schedule, eastern(1, 12, 0)))
	// Sunday maps to index 6, not -1.
	assert.Equal(t, "Closed", TodayHours(schedule, eastern(7, 12, 0)))
}

func TestTodayHours_DefensiveOnShortDescriptions(t *testing.T) {
	schedule, err := Parse(`{"weekdayDescriptions": ["Monday: 11:00 AM – 2:00 AM"]}`)
	require.NoError(t, err)

	assert.Equal(t, "11:00 AM – 2:00 AM", TodayHours(schedule, eastern(1, 12, 0)))
	// Friday has no entry; degrade to empty rather than panicking.
	assert.Equal(t, "", TodayHours(schedule, eastern(5, 12, 0)))
}

func TestWeekHours(t *testing.T) {
	schedule, err := Parse(lateBarSchedule)
	require.NoError(t, err)

	week := WeekHours(schedule, eastern(5, 12, 0)) // a Friday
	require.Len(t, week, 7)

	assert.Equal(t, "Monday", week[0].Day)
	assert.Equal(t, "11:00 AM – 2:00 AM", week[0].Hours)
	assert.False(t, week[0].IsToday)
	assert.Equal(t, "Friday", week[4].Day)
	assert.True(t, week[4].IsToday)
	assert.Equal(t, "Sunday", week[6].Day)

	assert.Nil(t, WeekHours(nil, eastern(5, 12, 0)))
}

// fake fetcher/patcher for the refresh policy

type fakeFetcher struct {
	data  string
	err   error
	calls int
}

func (f *fakeFetcher) FetchHours(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.data, f.err
}

type fakePatcher struct {
	err     error
	venueID string
	data    string
	calls   int
}

func (p *fakePatcher) PatchHours(_ context.Context, venueID, data string, _ time.Time) error {
	p.calls++
	p.venueID = venueID
	p.data = data
	return p.err
}

func venueWithCache(data string, age time.Duration, now time.Time) model.Venue {
	updated := now.Add(-age)
	return model.Venue{
		ID:           "v1",
		PlaceID:      "place-1",
		HoursData:    data,
		HoursUpdated: &updated,
	}
}

func TestRefresh_FreshCacheSkipsFetch(t *testing.T) {
	now := eastern(1, 12, 0)
	fetcher := &fakeFetcher{data: lateBarSchedule}
	patcher := &fakePatcher{}
	r := NewRefresher(fetcher, patcher)
	r.now = func() time.Time { return now }

	v := venueWithCache(lateBarSchedule, time.Hour, now)
	data, updated := r.Refresh(context.Background(), v)

	assert.Equal(t, lateBarSchedule, data)
	assert.Equal(t, v.HoursUpdated, updated)
	assert.Zero(t, fetcher.calls)
	assert.Zero(t, patcher.calls)
}

func TestRefresh_StaleCacheFetchesAndWritesThrough(t *testing.T) {
	now := eastern(1, 12, 0)
	fetcher := &fakeFetcher{data: lateBarSchedule}
	patcher := &fakePatcher{}
	r := NewRefresher(fetcher, patcher)
	r.now = func() time.Time { return now }

	v := venueWithCache(`{"weekdayDescriptions": ["Monday: Closed"]}`, 25*time.Hour, now)
	data, updated := r.Refresh(context.Background(), v)

	assert.Equal(t, lateBarSchedule, data)
	require.NotNil(t, updated)
	assert.Equal(t, now, *updated)
	assert.Equal(t, 1, patcher.calls)
	assert.Equal(t, "v1", patcher.venueID)
	assert.Equal(t, lateBarSchedule, patcher.data)
}

func TestRefresh_FallsBackToCacheOnFailure(t *testing.T) {
	now := eastern(1, 12, 0)
	stale := venueWithCache(lateBarSchedule, 48*time.Hour, now)

	tests := []struct {
		name    string
		venue   model.Venue
		fetcher *fakeFetcher
		patcher *fakePatcher
	}{
		{"fetch_error", stale, &fakeFetcher{err: errors.New("network down")}, &fakePatcher{}},
		{"malformed_response", stale, &fakeFetcher{data: "not json"}, &fakePatcher{}},
		{"patch_error", stale, &fakeFetcher{data: lateBarSchedule}, &fakePatcher{err: errors.New("write failed")}},
		{"missing_place_id", model.Venue{ID: "v2", HoursData: lateBarSchedule}, &fakeFetcher{data: "{}"}, &fakePatcher{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRefresher(tc.fetcher, tc.patcher)
			r.now = func() time.Time { return now }

			data, updated := r.Refresh(context.Background(), tc.venue)

			assert.Equal(t, tc.venue.HoursData, data)
			assert.Equal(t, tc.venue.HoursUpdated, updated)
		})
	}
}

func TestRefresh_AbsentCacheStaysAbsentOnFailure(t *testing.T) {
	r := NewRefresher(&fakeFetcher{err: errors.New("boom")}, &fakePatcher{})
	data, updated := r.Refresh(context.Background(), model.Venue{ID: "v3", PlaceID: "p"})
	assert.Empty(t, data)
	assert.Nil(t, updated)
}
