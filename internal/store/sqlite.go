package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"felt/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS venues (
    id                 TEXT PRIMARY KEY,
    name               TEXT NOT NULL,
    neighborhood       TEXT NOT NULL,
    address            TEXT NOT NULL,
    lat                REAL NOT NULL,
    lng                REAL NOT NULL,
    table_count        INTEGER,
    price              TEXT,
    place_id           TEXT,
    hours_data         TEXT,
    hours_last_updated TEXT
);

CREATE TABLE IF NOT EXISTS reviews (
    id              INTEGER PRIMARY KEY,
    venue_id        TEXT NOT NULL REFERENCES venues(id),
    table_quality   INTEGER CHECK(table_quality BETWEEN 1 AND 5),
    competition     INTEGER CHECK(competition BETWEEN 1 AND 5),
    atmosphere      INTEGER CHECK(atmosphere BETWEEN 1 AND 5),
    elbow_room      INTEGER CHECK(elbow_room BETWEEN 1 AND 5),
    wait_time       INTEGER CHECK(wait_time BETWEEN 1 AND 5),
    cue_quality     INTEGER CHECK(cue_quality BETWEEN 1 AND 5),
    drink_selection INTEGER CHECK(drink_selection BETWEEN 1 AND 5 OR drink_selection IS NULL),
    crowd_vibe      INTEGER CHECK(crowd_vibe BETWEEN 1 AND 5 OR crowd_vibe IS NULL),
    notes           TEXT,
    user_id         TEXT,
    username        TEXT,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS suggestions (
    id             INTEGER PRIMARY KEY,
    type           TEXT NOT NULL,
    venue_id       TEXT,
    venue_name     TEXT,
    suggested_data TEXT,
    created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS profile (
    id       TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    email    TEXT
);

CREATE INDEX IF NOT EXISTS idx_reviews_venue_id ON reviews(venue_id);
`

// SQLite is the local Store backed by a single database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database and initializes the
// schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Venues reads the full venue snapshot without reviews.
func (s *SQLite) Venues(ctx context.Context) ([]model.Venue, error) {
	query := `
		SELECT id, name, neighborhood, address, lat, lng,
		       table_count, price, place_id, hours_data, hours_last_updated
		FROM venues
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		var tableCount sql.NullInt64
		var price, placeID, hoursData, hoursUpdated sql.NullString

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
			if t, err := time.Parse(time.RFC3339, hoursUpdated.String); err == nil {
				v.HoursUpdated = &t
			}
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue rows: %w", err)
	}
	return venues, nil
}

// Reviews reads the full review snapshot.
func (s *SQLite) Reviews(ctx context.Context) ([]model.Review, error) {
	query := `
		SELECT id, venue_id, table_quality, competition, atmosphere, elbow_room,
		       wait_time, cue_quality, drink_selection, crowd_vibe,
		       notes, user_id, username, created_at
		FROM reviews
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}

func scanReview(rows *sql.Rows) (model.Review, error) {
	var r model.Review
	ratings := make([]sql.NullInt64, 8)
	var notes, userID, username sql.NullString
	var createdAt string

	if err := rows.Scan(&r.ID, &r.VenueID,
		&ratings[0], &ratings[1], &ratings[2], &ratings[3],
		&ratings[4], &ratings[5], &ratings[6], &ratings[7],
		&notes, &userID, &username, &createdAt); err != nil {
		return model.Review{}, fmt.Errorf("failed to scan review: %w", err)
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
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}
	return r, nil
}

// InsertReview appends a review. Reviews are never edited or deleted.
func (s *SQLite) InsertReview(ctx context.Context, review model.NewReview) error {
	query := `
		INSERT INTO reviews (venue_id, table_quality, competition, atmosphere,
		                     elbow_room, wait_time, cue_quality, drink_selection,
		                     crowd_vibe, notes, user_id, username)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// PatchHours updates the hours cache for one venue. This is the only
// venue field the system ever writes.
func (s *SQLite) PatchHours(ctx context.Context, venueID, data string, updated time.Time) error {
	query := `UPDATE venues SET hours_data = ?, hours_last_updated = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, data, updated.UTC().Format(time.RFC3339), venueID); err != nil {
		return fmt.Errorf("failed to patch hours: %w", err)
	}
	return nil
}

// InsertSuggestion appends a user suggestion.
func (s *SQLite) InsertSuggestion(ctx context.Context, suggestion model.Suggestion) error {
	data, err := json.Marshal(suggestion.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion data: %w", err)
	}

	query := `INSERT INTO suggestions (type, venue_id, venue_name, suggested_data) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		suggestion.Type, nullableString(suggestion.VenueID), suggestion.VenueName, string(data)); err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return nil
}

// Identity reads the stored profile, nil when none exists.
func (s *SQLite) Identity(ctx context.Context) (*model.User, error) {
	var u model.User
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT id, username, email FROM profile LIMIT 1`).
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

// InsertVenue seeds a venue. Used by imports, not by the UI.
// Existing rows win, so re-running a seed is a no-op.
func (s *SQLite) InsertVenue(ctx context.Context, v model.Venue) error {
	query := `
		INSERT OR IGNORE INTO venues (id, name, neighborhood, address, lat, lng, table_count, price, place_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var tableCount interface{}
	if v.TableCount != nil {
		tableCount = *v.TableCount
	}
	if _, err := s.db.ExecContext(ctx, query, v.ID, v.Name, v.Neighborhood, v.Address,
		v.Coord.Lat, v.Coord.Lng, tableCount, nullableString(v.Price), nullableString(v.PlaceID)); err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
