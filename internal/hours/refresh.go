package hours

import (
	"context"
	"time"

	"felt/internal/model"
)

// FreshFor is the cache-freshness window. A cached blob older than this
// is stale and eligible for a background refetch.
const FreshFor = 24 * time.Hour

// Fresh reports whether a cached blob fetched at updated is still fresh.
func Fresh(updated *time.Time, now time.Time) bool {
	if updated == nil {
		return false
	}
	return now.Sub(*updated) < FreshFor
}

// Fetcher fetches a provider schedule blob by external place identifier.
type Fetcher interface {
	FetchHours(ctx context.Context, placeID string) (string, error)
}

// Patcher persists the hours cache fields for a venue (the only venue
// fields this system ever patches).
type Patcher interface {
	PatchHours(ctx context.Context, venueID, data string, updated time.Time) error
}

// Refresher owns the cache-freshness policy: fresh blobs are returned
// untouched, stale or absent ones trigger a fetch with write-through,
// and every failure degrades to the previous cached value. It never
// returns an error; the UI renders missing hours as no status.
type Refresher struct {
	fetcher Fetcher
	patcher Patcher
	now     func() time.Time
}

// NewRefresher creates a refresher. fetcher may be nil when no provider
// key is configured; refreshes then always fall back to cache.
func NewRefresher(fetcher Fetcher, patcher Patcher) *Refresher {
	return &Refresher{fetcher: fetcher, patcher: patcher, now: time.Now}
}

// Refresh applies the cache policy for one venue and returns the blob to
// use plus its fetch timestamp. The caller owns mutating the in-memory
// venue with the result.
func (r *Refresher) Refresh(ctx context.Context, v model.Venue) (string, *time.Time) {
	if v.HoursData != "" && Fresh(v.HoursUpdated, r.now()) {
		return v.HoursData, v.HoursUpdated
	}
	if v.PlaceID == "" || r.fetcher == nil {
		return v.HoursData, v.HoursUpdated
	}

	data, err := r.fetcher.FetchHours(ctx, v.PlaceID)
	if err != nil || data == "" {
		return v.HoursData, v.HoursUpdated
	}
	// Reject malformed payloads before they poison the cache.
	if _, err := Parse(data); err != nil {
		return v.HoursData, v.HoursUpdated
	}

	fetched := r.now()
	if r.patcher != nil {
		if err := r.patcher.PatchHours(ctx, v.ID, data, fetched); err != nil {
			return v.HoursData, v.HoursUpdated
		}
	}
	return data, &fetched
}
