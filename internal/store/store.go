package store

import (
	"context"
	"time"

	"felt/internal/model"
	"felt/internal/scoring"
)

// Store is the persistence boundary. Venues and reviews are read as full
// snapshots; reviews and suggestions are append-only; the only venue
// mutation is the hours-cache patch.
type Store interface {
	Venues(ctx context.Context) ([]model.Venue, error)
	Reviews(ctx context.Context) ([]model.Review, error)
	InsertReview(ctx context.Context, review model.NewReview) error
	PatchHours(ctx context.Context, venueID, data string, updated time.Time) error
	InsertSuggestion(ctx context.Context, suggestion model.Suggestion) error
	Identity(ctx context.Context) (*model.User, error)
	Close() error
}

// LoadSnapshot reads the full venue and review snapshots, attaches each
// venue's reviews, and recomputes all derived rating fields. Venues are
// always constructed wholesale; there is no partial reload.
func LoadSnapshot(ctx context.Context, s Store) ([]model.Venue, error) {
	venues, err := s.Venues(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Reviews(ctx)
	if err != nil {
		return nil, err
	}

	byVenue := make(map[string][]model.Review, len(venues))
	for _, review := range reviews {
		byVenue[review.VenueID] = append(byVenue[review.VenueID], review)
	}

	for i := range venues {
		venues[i].Reviews = byVenue[venues[i].ID]
		scoring.Apply(&venues[i])
	}
	return venues, nil
}
