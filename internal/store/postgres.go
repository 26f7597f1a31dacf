package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"felt/internal/model"

	_ "github.com/lib/pq"
)

// Postgres is the hosted Store, sharing its schema with the production
// backend the web client writes to.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the hosted database.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close closes the underlying database.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Venues reads the full venue snapshot without reviews.
func (p *Postgres) Venues(ctx context.Context) ([]model.Venue, error) {
	query := `
		SELECT id, name, neighborhood, address, lat, lng,
		       table_count, price, place_id, hours_data, hours_last_updated
		FROM bars
		ORDER BY name
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		var tableCount sql.NullInt64
		var price, placeID, hoursData sql.NullString
		var hoursUpdated sql.NullTime

		if err := rows.Scan(&v.ID, &v.Name, &v.Neighborhood, &v.Address,
			&v.Coord.Lat, &v.Coord.Lng, &tableCount, &price, &placeID,
			&hoursData, &hoursUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}

		if tableCount.Valid {
			n := int(tableCount.Int64)
			v.TableCount = &n
		}
		v.Price = price.String
		v.PlaceID = placeID.String
		v.HoursData = hoursData.String
		if hoursUpdated.Valid {
			t := hoursUpdated.Time
			v.HoursUpdated = &t
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue rows: %w", err)
	}
	return venues, nil
}

// Reviews reads the full review snapshot.
func (p *Postgres) Reviews(ctx context.Context) ([]model.Review, error) {
	query := `
		SELECT id, bar_id, table_quality, competition, atmosphere, elbow_room,
		       wait_time, cue_quality, drink_selection, crowd_vibe,
		       notes, user_id, username, created_at
		FROM reviews
		ORDER BY created_at DESC
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var r model.Review
		ratings := make([]sql.NullInt64, 8)
		var notes, userID, username sql.NullString
		var createdAt time.Time

		if err := rows.Scan(&r.ID, &r.VenueID,
			&ratings[0], &ratings[1], &ratings[2], &ratings[3],
			&ratings[4], &ratings[5], &ratings[6], &ratings[7],
			&notes, &userID, &username, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		r.Ratings = make(map[model.Category]int, len(model.Categories))
		for i, info := range model.Categories {
			if ratings[i].Valid {
				r.Ratings[info.Key] = int(ratings[i].Int64)
			}
		}
		r.Notes = notes.String
		r.UserID = userID.String
		r.Username = username.String
		r.CreatedAt = createdAt
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}

// InsertReview appends a review.
func (p *Postgres) InsertReview(ctx context.Context, review model.NewReview) error {
	query := `
		INSERT INTO reviews (bar_id, table_quality, competition, atmosphere,
		                     elbow_room, wait_time, cue_quality, drink_selection,
		                     crowd_vibe, notes, user_id, username)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	args := []interface{}{review.VenueID}
	for _, info := range model.Categories {
		if value, ok := review.Ratings[info.Key]; ok {
			args = append(args, value)
		} else {
			args = append(args, nil)
		}
	}
	args = append(args, nullableString(review.Notes), nullableString(review.UserID), nullableString(review.Username))

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// PatchHours updates the hours cache for one venue.
func (p *Postgres) PatchHours(ctx context.Context, venueID, data string, updated time.Time) error {
	query := `UPDATE bars SET hours_data = $1, hours_last_updated = $2 WHERE id = $3`
	if _, err := p.db.ExecContext(ctx, query, data, updated.UTC(), venueID); err != nil {
		return fmt.Errorf("failed to patch hours: %w", err)
	}
	return nil
}

// InsertSuggestion appends a user suggestion.
func (p *Postgres) InsertSuggestion(ctx context.Context, suggestion model.Suggestion) error {
	data, err := json.Marshal(suggestion.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion data: %w", err)
	}

	query := `INSERT INTO suggestions (type, bar_id, bar_name, suggested_data) VALUES ($1, $2, $3, $4)`
	if _, err := p.db.ExecContext(ctx, query,
		suggestion.Type, nullableString(suggestion.VenueID), suggestion.VenueName, string(data)); err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return nil
}

// Identity reads the session profile, nil when signed out. Session
// issuance itself lives with the auth collaborator; this client only
// consumes the identity for review attribution.
func (p *Postgres) Identity(ctx context.Context) (*model.User, error) {
	var u model.User
	var email sql.NullString
	err := p.db.QueryRowContext(ctx, `SELECT id, username, email FROM profiles LIMIT 1`).
		Scan(&u.ID, &u.Username, &email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	u.Email = email.String
	return &u, nil
}
